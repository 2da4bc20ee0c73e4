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

package clock

// Forked from github.com/andres-erbsen/clock to isolate a missing nap.

import (
	"container/heap"
	"runtime"
	"sync"
	"time"
)

// FakeClock represents a fake clock that only moves forward programmically.
// It can be preferable to a real-time clock when testing time-based functionality.
//
// Functions scheduled with AfterFunc run synchronously on the goroutine that
// advances the clock, so once Add returns every callback that was due has
// completed.
type FakeClock struct {
	sync.Mutex

	now    time.Time
	timers timers
}

var _ Clock = (*FakeClock)(nil)

// NewFake returns an instance of a fake clock.
// The current time of the fake clock on initialization is the Unix epoch.
func NewFake() *FakeClock {
	return &FakeClock{now: time.Unix(0, 0)}
}

// Add moves the current time of the fake clock forward by the duration.
// This should only be called from a single goroutine at a time.
func (fc *FakeClock) Add(d time.Duration) {
	fc.Lock()
	end := fc.now.Add(d)
	fc.flush(end)

	if fc.now.Before(end) {
		fc.now = end
	}
	fc.Unlock()
	nap()
}

// Set advances the current time of the fake clock to the given absolute time.
func (fc *FakeClock) Set(end time.Time) {
	fc.Lock()
	fc.flush(end)

	if fc.now.Before(end) {
		fc.now = end
	}
	fc.Unlock()
	nap()
}

// Pending reports the number of timers that have not fired yet.
func (fc *FakeClock) Pending() int {
	fc.Lock()
	defer fc.Unlock()
	return len(fc.timers)
}

// flush runs all timers before the given end time and is used to run newly
// added timers as well as expired timers in Add().
//
// The lock must be held on entry; it is released while each timer fires.
func (fc *FakeClock) flush(end time.Time) {
	for len(fc.timers) > 0 && !fc.timers[0].time.After(end) {
		t := fc.timers[0]
		heap.Pop(&fc.timers)
		if fc.now.Before(t.time) {
			fc.now = t.time
		}
		fc.Unlock()
		t.tick()
		fc.Lock()
	}
}

// FakeTimer produces a timer that will emit a time some duration after now,
// exposing the fake timer internals and type.
func (fc *FakeClock) FakeTimer(d time.Duration) *FakeTimer {
	return fc.schedule(d, nil)
}

// Timer produces a timer that will emit a time some duration after now.
func (fc *FakeClock) Timer(d time.Duration) Timer {
	return fc.FakeTimer(d)
}

// After produces a channel that will emit the time after a duration passes.
func (fc *FakeClock) After(d time.Duration) <-chan time.Time {
	return fc.Timer(d).C()
}

// FakeAfterFunc schedules f to run once the clock has advanced by d.
func (fc *FakeClock) FakeAfterFunc(d time.Duration, f func()) *FakeTimer {
	return fc.schedule(d, f)
}

// AfterFunc waits for the duration to elapse and then executes a function.
// A Timer is returned that can be stopped.
func (fc *FakeClock) AfterFunc(d time.Duration, f func()) Timer {
	return fc.FakeAfterFunc(d, f)
}

// Now returns the current time on the fake clock.
func (fc *FakeClock) Now() time.Time {
	fc.Lock()
	defer fc.Unlock()
	return fc.now
}

func (fc *FakeClock) schedule(d time.Duration, f func()) *FakeTimer {
	fc.Lock()
	defer fc.Unlock()

	t := &FakeTimer{
		c:     make(chan time.Time, 1),
		clock: fc,
		time:  fc.now.Add(d),
		fn:    f,
		index: -1,
	}
	heap.Push(&fc.timers, t)
	fc.flush(fc.now)
	return t
}

// FakeTimer represents a single event.
type FakeTimer struct {
	c     chan time.Time
	time  time.Time
	clock *FakeClock
	fn    func()
	index int
}

// C returns a channel that will send the time when it fires.
func (t *FakeTimer) C() <-chan time.Time {
	return t.c
}

// tick fires the timer.
func (t *FakeTimer) tick() {
	if t.fn != nil {
		t.fn()
		return
	}
	select {
	case t.c <- t.time:
	default:
	}
}

// Reset adjusts the timer's scheduled time forward from now, unless it has
// already fired.
func (t *FakeTimer) Reset(d time.Duration) bool {
	fc := t.clock
	fc.Lock()
	defer fc.Unlock()

	t.time = fc.now.Add(d)

	// Empty the channel if already filled.
	select {
	case <-t.c:
	default:
	}

	if t.index >= 0 {
		heap.Fix(&fc.timers, t.index)
		return true
	}
	heap.Push(&fc.timers, t)
	fc.flush(fc.now)
	return false
}

// Stop removes a timer from the scheduled timers.
func (t *FakeTimer) Stop() bool {
	fc := t.clock
	fc.Lock()
	defer fc.Unlock()

	if t.index < 0 {
		return false
	}

	// Empty the channel if already filled.
	select {
	case <-t.c:
	default:
	}

	heap.Remove(&fc.timers, t.index)
	return true
}

func nap() {
	runtime.Gosched()
}
