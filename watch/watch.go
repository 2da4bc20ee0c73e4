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

// Package watch broadcasts the latest version of a value to any number of
// subscribers.
//
// A Publisher replaces the value with Store. Each Subscriber independently
// tracks the last version it observed and can poll, without blocking, for a
// newer one. Intermediate versions are skipped: a subscriber only ever sees
// the latest value. Once the Publisher is closed the value never changes
// again; subscribers keep reading the final value.
package watch

import (
	"errors"
	"sync"

	"go.uber.org/governor/api/service"
)

// ErrClosed is returned by Store after the Publisher was closed.
var ErrClosed = errors.New("watch: publisher is closed")

type state[T any] struct {
	mu      sync.RWMutex
	value   T
	version uint64
	closed  bool
	waiters map[*Subscriber[T]]service.Waker
}

// Publisher stores new versions of a value.
type Publisher[T any] struct {
	st *state[T]
}

// Subscriber observes the versions stored by a Publisher.
//
// A Subscriber is used by a single caller at a time; use Clone to observe
// the same Publisher from elsewhere.
type Subscriber[T any] struct {
	st   *state[T]
	seen uint64
}

// New returns a Publisher holding initial and a Subscriber that has observed
// it.
func New[T any](initial T) (*Publisher[T], *Subscriber[T]) {
	st := &state[T]{
		value:   initial,
		waiters: make(map[*Subscriber[T]]service.Waker),
	}
	return &Publisher[T]{st: st}, &Subscriber[T]{st: st}
}

// Store replaces the value and wakes every subscriber waiting for a change.
func (p *Publisher[T]) Store(v T) error {
	p.st.mu.Lock()
	if p.st.closed {
		p.st.mu.Unlock()
		return ErrClosed
	}
	p.st.value = v
	p.st.version++
	waiters := p.st.takeWaiters()
	p.st.mu.Unlock()

	wakeAll(waiters)
	return nil
}

// Close marks the value final. Subscribers waiting for a change are woken
// and learn that none will come. Close is idempotent.
func (p *Publisher[T]) Close() {
	p.st.mu.Lock()
	if p.st.closed {
		p.st.mu.Unlock()
		return
	}
	p.st.closed = true
	waiters := p.st.takeWaiters()
	p.st.mu.Unlock()

	wakeAll(waiters)
}

// Subscribe returns a Subscriber that has observed the current version.
func (p *Publisher[T]) Subscribe() *Subscriber[T] {
	p.st.mu.RLock()
	defer p.st.mu.RUnlock()
	return &Subscriber[T]{st: p.st, seen: p.st.version}
}

// Borrow returns the current value.
func (p *Publisher[T]) Borrow() T {
	p.st.mu.RLock()
	defer p.st.mu.RUnlock()
	return p.st.value
}

// Borrow returns the latest value. It does not mark the value as observed.
func (s *Subscriber[T]) Borrow() T {
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()
	return s.st.value
}

// Version returns the last version observed by this Subscriber. The initial
// value is version zero.
func (s *Subscriber[T]) Version() uint64 {
	return s.seen
}

// Clone returns an independent Subscriber that has observed the same
// version as s.
func (s *Subscriber[T]) Clone() *Subscriber[T] {
	return &Subscriber[T]{st: s.st, seen: s.seen}
}

// Poll checks for a version newer than the last one observed.
//
//	changed    a newer value is available through Borrow and is now observed
//	closed     no newer value will ever be stored
//
// If neither is true, w is woken on the next Store or Close. A value stored
// right before Close is reported as changed before closed is reported.
func (s *Subscriber[T]) Poll(w service.Waker) (changed bool, closed bool) {
	_, changed, closed = s.PollValue(w)
	return changed, closed
}

// PollValue is Poll that also returns the value of the version it observed.
// Unlike a later Borrow, the value cannot belong to a newer version.
func (s *Subscriber[T]) PollValue(w service.Waker) (v T, changed bool, closed bool) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	if s.st.version != s.seen {
		s.seen = s.st.version
		return s.st.value, true, false
	}
	if s.st.closed {
		return v, false, true
	}
	if w != nil {
		s.st.waiters[s] = w
	}
	return v, false, false
}

func (st *state[T]) takeWaiters() []service.Waker {
	if len(st.waiters) == 0 {
		return nil
	}
	waiters := make([]service.Waker, 0, len(st.waiters))
	for sub, w := range st.waiters {
		waiters = append(waiters, w)
		delete(st.waiters, sub)
	}
	return waiters
}

func wakeAll(waiters []service.Waker) {
	for _, w := range waiters {
		w.Wake()
	}
}
