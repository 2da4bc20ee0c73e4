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

// Package wake provides a single-slot wake-up registration shared between
// the goroutine that suspends and the goroutines that make progress possible.
package wake

import (
	"go.uber.org/atomic"
	"go.uber.org/governor/api/service"
)

// Slot retains at most one Waker. Registering a new Waker replaces the
// previous one, which will then not be woken: a Slot serves a single active
// consumer and is not a fair queue of waiters.
//
// The zero value is an empty Slot ready for use.
type Slot struct {
	reg atomic.Pointer[registration]
}

type registration struct {
	w service.Waker
}

// Register stores w as the Waker to notify on the next Wake. A nil Waker
// clears the slot.
func (s *Slot) Register(w service.Waker) {
	if w == nil {
		s.reg.Store(nil)
		return
	}
	s.reg.Store(&registration{w: w})
}

// Wake notifies and removes the registered Waker, if any. It reports whether
// a Waker was notified.
func (s *Slot) Wake() bool {
	r := s.reg.Swap(nil)
	if r == nil {
		return false
	}
	r.w.Wake()
	return true
}
