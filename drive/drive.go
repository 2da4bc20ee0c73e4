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

// Package drive runs services from ordinary blocking code.
//
// Services in this module never block: they report readiness, hand out
// futures, and ask to be woken when progress is possible. Call bridges that
// model to a goroutine that wants a result, parking the goroutine between
// wake-ups and giving up when its context is done.
//
// Several services may share a single wake-up slot, as the gates produced by
// one admission.Layer do. Only the last of them to suspend is woken, so a
// goroutine waiting for readiness also polls again on a bounded backoff.
package drive

import (
	"context"
	"time"

	"go.uber.org/governor/api/service"
)

// Waker parks a goroutine until it is woken. Wake-ups that happen while
// nobody waits are coalesced into one.
type Waker struct {
	ch chan struct{}
}

var _ service.Waker = (*Waker)(nil)

// NewWaker returns a Waker that has not been woken.
func NewWaker() *Waker {
	return &Waker{ch: make(chan struct{}, 1)}
}

// Wake never blocks.
func (w *Waker) Wake() {
	select {
	case w.ch <- struct{}{}:
	default:
	}
}

// C is signaled after Wake.
func (w *Waker) C() <-chan struct{} {
	return w.ch
}

// Wait blocks until the Waker is woken or ctx is done.
func (w *Waker) Wait(ctx context.Context) error {
	select {
	case <-w.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// waitAtMost blocks until the Waker is woken, d elapses on the clock, or
// ctx is done.
func (w *Waker) waitAtMost(ctx context.Context, o options, d time.Duration) error {
	t := o.clock.Timer(d)
	defer t.Stop()

	select {
	case <-w.ch:
		return nil
	case <-t.C():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Ready blocks until svc is ready to accept a request. Any reservation made
// by svc while becoming ready is kept for the next Call.
func Ready[Req, Res any](ctx context.Context, svc service.Service[Req, Res], opts ...Option) error {
	return ready(ctx, svc, NewWaker(), newOptions(opts))
}

func ready[Req, Res any](ctx context.Context, svc service.Service[Req, Res], w *Waker, o options) error {
	backoff := o.minRepoll
	for {
		ok, err := svc.PollReady(w)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if err := w.waitAtMost(ctx, o, backoff); err != nil {
			return err
		}
		if backoff *= 2; backoff > o.maxRepoll {
			backoff = o.maxRepoll
		}
	}
}

// Await blocks until f resolves. If ctx is done first, f is abandoned and
// the context's error is returned.
func Await[Res any](ctx context.Context, f service.Future[Res]) (Res, error) {
	return await(ctx, f, NewWaker())
}

func await[Res any](ctx context.Context, f service.Future[Res], w *Waker) (Res, error) {
	for {
		res, done, err := f.Poll(w)
		if done {
			return res, err
		}
		if err := w.Wait(ctx); err != nil {
			f.Abandon()
			var zero Res
			return zero, err
		}
	}
}

// Call waits for svc to be ready, sends req, and waits for the response.
func Call[Req, Res any](ctx context.Context, svc service.Service[Req, Res], req Req, opts ...Option) (Res, error) {
	w := NewWaker()
	if err := ready(ctx, svc, w, newOptions(opts)); err != nil {
		var zero Res
		return zero, err
	}
	return await(ctx, svc.Call(req), w)
}
