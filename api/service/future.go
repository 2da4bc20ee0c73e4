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

package service

import "sync"

// Ready returns a Future that is already resolved to res.
func Ready[Res any](res Res) Future[Res] {
	return &resolved[Res]{res: res}
}

// Failed returns a Future that is already resolved to err.
func Failed[Res any](err error) Future[Res] {
	return &resolved[Res]{err: err}
}

type resolved[Res any] struct {
	res Res
	err error
}

func (r *resolved[Res]) Poll(Waker) (Res, bool, error) {
	return r.res, true, r.err
}

func (r *resolved[Res]) Abandon() {}

// Promise is a Future completed by a producer through Resolve.
//
// It is the natural way to expose work performed on another goroutine:
//
//	p := service.NewPromise[string]()
//	go func() { p.Resolve(doWork()) }()
//	return p
type Promise[Res any] struct {
	mu        sync.Mutex
	done      bool
	res       Res
	err       error
	waker     Waker
	abandoned chan struct{}
}

// NewPromise returns an unresolved Promise.
func NewPromise[Res any]() *Promise[Res] {
	return &Promise[Res]{abandoned: make(chan struct{})}
}

// Resolve completes the Promise. Only the first call has an effect; it
// reports whether it was the one that completed the Promise.
func (p *Promise[Res]) Resolve(res Res, err error) bool {
	p.mu.Lock()
	if p.done {
		p.mu.Unlock()
		return false
	}
	p.res, p.err, p.done = res, err, true
	w := p.waker
	p.waker = nil
	p.mu.Unlock()

	if w != nil {
		w.Wake()
	}
	return true
}

// Abandoned returns a channel that is closed once the consumer abandoned the
// Promise. Producers may use it to stop work early.
func (p *Promise[Res]) Abandoned() <-chan struct{} {
	return p.abandoned
}

// Poll implements Future.
func (p *Promise[Res]) Poll(w Waker) (Res, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done {
		return p.res, true, p.err
	}
	p.waker = w

	var zero Res
	return zero, false, nil
}

// Abandon implements Future.
func (p *Promise[Res]) Abandon() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.waker = nil
	select {
	case <-p.abandoned:
	default:
		close(p.abandoned)
	}
}
