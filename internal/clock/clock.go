// Copyright (c) 2026 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package clock abstracts time so that timers in the governance decorators
// can be driven deterministically in tests.
package clock

import "time"

// Clock is the subset of the time package used by this module.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Timer returns a timer that delivers the time on its channel after d.
	Timer(d time.Duration) Timer

	// AfterFunc calls f once d has elapsed. The returned Timer can be used to
	// cancel the call.
	AfterFunc(d time.Duration, f func()) Timer

	// After returns a channel that receives the time after d.
	After(d time.Duration) <-chan time.Time
}

// Timer is a single scheduled event.
type Timer interface {
	// C returns the channel on which the timer fires. Timers created by
	// AfterFunc never send on it.
	C() <-chan time.Time

	// Stop prevents the timer from firing. It returns false if the timer
	// already fired or was stopped.
	Stop() bool

	// Reset reschedules the timer d from now. It returns true if the timer
	// had been active.
	Reset(d time.Duration) bool
}
