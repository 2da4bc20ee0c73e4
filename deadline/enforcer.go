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

package deadline

import (
	"fmt"
	"time"

	"github.com/uber-go/tally"
	"go.uber.org/governor/api/middleware"
	"go.uber.org/governor/api/service"
	"go.uber.org/governor/internal/clock"
	"go.uber.org/governor/internal/delay"
	"go.uber.org/zap"
)

// Enforcer is a service failing requests that outlive a timeout.
type Enforcer[Req, Res any] struct {
	inner   service.Service[Req, Res]
	timeout time.Duration
	obs     *observer
}

var _ service.Service[any, any] = (*Enforcer[any, any])(nil)

type observer struct {
	clock     clock.Clock
	logger    *zap.Logger
	elapsed   tally.Counter
	completed tally.Counter
}

func newObserver(opts ...Option) *observer {
	options := defaultOptions
	for _, opt := range opts {
		opt.apply(&options)
	}
	scope := options.scope.SubScope("deadline")
	return &observer{
		clock:     options.clock,
		logger:    options.logger,
		elapsed:   scope.Counter("elapsed"),
		completed: scope.Counter("completed"),
	}
}

func checkTimeout(timeout time.Duration) {
	if timeout <= 0 {
		panic(fmt.Sprintf("deadline: timeout must be positive, got %v", timeout))
	}
}

// New returns an Enforcer failing requests to inner that take longer than
// timeout. It panics if timeout is not positive.
func New[Req, Res any](inner service.Service[Req, Res], timeout time.Duration, opts ...Option) *Enforcer[Req, Res] {
	checkTimeout(timeout)
	return &Enforcer[Req, Res]{inner: inner, timeout: timeout, obs: newObserver(opts...)}
}

// NewLayer returns a Layer enforcing timeout on every service it is applied
// to. It panics if timeout is not positive.
func NewLayer[Req, Res any](timeout time.Duration, opts ...Option) middleware.Layer[Req, Res] {
	checkTimeout(timeout)
	obs := newObserver(opts...)
	return middleware.LayerFunc[Req, Res](func(inner service.Service[Req, Res]) service.Service[Req, Res] {
		return &Enforcer[Req, Res]{inner: inner, timeout: timeout, obs: obs}
	})
}

// Timeout returns the timeout applied to every request.
func (e *Enforcer[Req, Res]) Timeout() time.Duration {
	return e.timeout
}

// PollReady delegates to the inner service. The timeout does not apply to
// waiting for readiness.
func (e *Enforcer[Req, Res]) PollReady(w service.Waker) (bool, error) {
	return e.inner.PollReady(w)
}

// Call forwards req to the inner service and arms the request's timer.
func (e *Enforcer[Req, Res]) Call(req Req) service.Future[Res] {
	return &future[Res]{
		inner:   e.inner.Call(req),
		timer:   delay.After(e.obs.clock, e.timeout),
		timeout: e.timeout,
		obs:     e.obs,
	}
}

type future[Res any] struct {
	inner   service.Future[Res]
	timer   *delay.Delay
	timeout time.Duration
	obs     *observer
}

func (f *future[Res]) Poll(w service.Waker) (Res, bool, error) {
	if res, done, err := f.inner.Poll(w); done {
		f.timer.Stop()
		f.obs.completed.Inc(1)
		return res, true, err
	}

	var zero Res
	if !f.timer.Poll(w) {
		return zero, false, nil
	}

	f.inner.Abandon()
	f.obs.elapsed.Inc(1)
	f.obs.logger.Debug("request timed out", zap.Duration("timeout", f.timeout))
	return zero, true, ErrElapsed
}

func (f *future[Res]) Abandon() {
	f.timer.Stop()
	f.inner.Abandon()
}
