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

// Package rebind provides a service that rebuilds its inner service whenever
// a watched value changes.
//
// The watched value is typically configuration: when a new version is
// published, the next readiness check binds a fresh inner service from it
// and drops the previous one. Requests already dispatched to the previous
// service are unaffected.
package rebind

import (
	"github.com/uber-go/tally"
	"go.uber.org/governor/api/service"
	"go.uber.org/governor/watch"
	"go.uber.org/zap"
)

// Bind builds an inner service from a watched value.
type Bind[T, Req, Res any] func(T) service.Service[Req, Res]

// Rebinder is a service delegating to the service bound from the latest
// watched value.
type Rebinder[T, Req, Res any] struct {
	sub   *watch.Subscriber[T]
	bind  Bind[T, Req, Res]
	inner service.Service[Req, Res]

	logger  *zap.Logger
	rebinds tally.Counter
}

var _ service.Service[any, any] = (*Rebinder[struct{}, any, any])(nil)

// New binds the current value of sub and returns a Rebinder that rebinds
// whenever sub observes a newer one.
func New[T, Req, Res any](sub *watch.Subscriber[T], bind Bind[T, Req, Res], opts ...Option) *Rebinder[T, Req, Res] {
	options := defaultOptions
	for _, opt := range opts {
		opt.apply(&options)
	}
	return &Rebinder[T, Req, Res]{
		sub:     sub,
		bind:    bind,
		inner:   bind(sub.Borrow()),
		logger:  options.logger,
		rebinds: options.scope.SubScope("rebind").Counter("rebinds"),
	}
}

// Inner returns the currently bound service.
func (r *Rebinder[T, Req, Res]) Inner() service.Service[Req, Res] {
	return r.inner
}

// PollReady binds a new inner service if the watched value changed, then
// delegates to the bound service. A closed publisher leaves the current
// binding in place for good.
func (r *Rebinder[T, Req, Res]) PollReady(w service.Waker) (bool, error) {
	if v, changed, _ := r.sub.PollValue(w); changed {
		r.inner = r.bind(v)
		r.rebinds.Inc(1)
		r.logger.Info("rebound inner service", zap.Uint64("version", r.sub.Version()))
	}
	return r.inner.PollReady(w)
}

// Call delegates to the bound service. It never rebinds.
func (r *Rebinder[T, Req, Res]) Call(req Req) service.Future[Res] {
	return r.inner.Call(req)
}
