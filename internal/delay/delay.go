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

// Package delay provides a one-shot timer that can be polled without
// blocking.
package delay

import (
	"time"

	"go.uber.org/atomic"
	"go.uber.org/governor/api/service"
	"go.uber.org/governor/internal/clock"
	"go.uber.org/governor/internal/wake"
)

// Delay fires once its deadline passes. Poll registers the caller's Waker,
// which is woken when the Delay fires.
type Delay struct {
	deadline time.Time
	fired    atomic.Bool
	waiter   wake.Slot
	timer    clock.Timer
}

// Until returns a Delay that fires at deadline according to c. A deadline in
// the past fires immediately.
func Until(c clock.Clock, deadline time.Time) *Delay {
	d := &Delay{deadline: deadline}
	d.timer = c.AfterFunc(deadline.Sub(c.Now()), d.fire)
	return d
}

// After returns a Delay that fires once timeout has elapsed according to c.
func After(c clock.Clock, timeout time.Duration) *Delay {
	return Until(c, c.Now().Add(timeout))
}

func (d *Delay) fire() {
	d.fired.Store(true)
	d.waiter.Wake()
}

// Deadline returns the time at which the Delay fires.
func (d *Delay) Deadline() time.Time {
	return d.deadline
}

// Poll reports whether the Delay fired. If it has not, w is woken once it
// does.
func (d *Delay) Poll(w service.Waker) bool {
	if d.fired.Load() {
		return true
	}
	d.waiter.Register(w)
	// The timer may have fired between the check and the registration.
	return d.fired.Load()
}

// Fired reports whether the Delay fired without registering a Waker.
func (d *Delay) Fired() bool {
	return d.fired.Load()
}

// Stop cancels the Delay if it has not fired yet. A stopped Delay never
// fires and never wakes its Waker.
func (d *Delay) Stop() {
	d.timer.Stop()
	d.waiter.Register(nil)
}
