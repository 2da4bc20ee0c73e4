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

package ratelimit

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

// state is either ready or limited.
type state interface {
	rateState()
}

// ready accepts remaining more requests until the window ends.
type ready struct {
	until     time.Time
	remaining int
}

// limited waits for the window to end.
type limited struct {
	cooldown *delay.Delay
}

func (ready) rateState()   {}
func (limited) rateState() {}

// Limiter is a service accepting at most Rate.Quota requests per window.
//
// A Limiter is driven by a single caller at a time.
type Limiter[Req, Res any] struct {
	inner service.Service[Req, Res]
	rate  Rate
	state state

	clock   clock.Clock
	logger  *zap.Logger
	passes  tally.Counter
	drops   tally.Counter
	limited tally.Counter
}

var _ service.Service[any, any] = (*Limiter[any, any])(nil)

func checkRate(rate Rate) {
	if rate.quota <= 0 || rate.window <= 0 {
		panic(fmt.Sprintf("ratelimit: rate must be built with NewRate, got %v", rate))
	}
}

// New returns a Limiter around inner. It panics if rate was not built with
// NewRate.
func New[Req, Res any](inner service.Service[Req, Res], rate Rate, opts ...Option) *Limiter[Req, Res] {
	checkRate(rate)
	options := defaultOptions
	for _, opt := range opts {
		opt.apply(&options)
	}
	return newLimiter(inner, rate, options)
}

func newLimiter[Req, Res any](inner service.Service[Req, Res], rate Rate, options options) *Limiter[Req, Res] {
	scope := options.scope.SubScope("ratelimit")
	return &Limiter[Req, Res]{
		inner: inner,
		rate:  rate,
		// The first request starts the first window.
		state:   ready{until: options.clock.Now(), remaining: rate.quota},
		clock:   options.clock,
		logger:  options.logger,
		passes:  scope.Counter("passes"),
		drops:   scope.Counter("drops"),
		limited: scope.Counter("limited"),
	}
}

// NewLayer returns a Layer giving every service it is applied to its own
// Limiter with the given rate. It panics if rate was not built with NewRate.
func NewLayer[Req, Res any](rate Rate, opts ...Option) middleware.Layer[Req, Res] {
	checkRate(rate)
	options := defaultOptions
	for _, opt := range opts {
		opt.apply(&options)
	}
	return middleware.LayerFunc[Req, Res](func(inner service.Service[Req, Res]) service.Service[Req, Res] {
		return newLimiter(inner, rate, options)
	})
}

// Rate returns the Rate enforced by the Limiter.
func (l *Limiter[Req, Res]) Rate() Rate {
	return l.rate
}

// PollReady reports whether the current window has quota left. When it
// does not, w is woken once the window ends and a fresh window starts on the
// next poll. Otherwise readiness is delegated to the inner service.
func (l *Limiter[Req, Res]) PollReady(w service.Waker) (bool, error) {
	if s, ok := l.state.(limited); ok {
		if !s.cooldown.Poll(w) {
			return false, nil
		}
		l.state = ready{
			until:     l.clock.Now().Add(l.rate.window),
			remaining: l.rate.quota,
		}
	}
	return l.inner.PollReady(w)
}

// Call forwards req to the inner service and spends a unit of the window's
// quota. If the quota was already spent the returned Future fails with
// ErrRateLimited and the inner service is not called.
func (l *Limiter[Req, Res]) Call(req Req) service.Future[Res] {
	switch s := l.state.(type) {
	case ready:
		now := l.clock.Now()
		if !now.Before(s.until) {
			s = ready{until: now.Add(l.rate.window), remaining: l.rate.quota}
		}

		if s.remaining > 1 {
			s.remaining--
			l.state = s
		} else {
			l.limited.Inc(1)
			l.logger.Debug("rate limit window exhausted",
				zap.Stringer("rate", l.rate),
				zap.Time("until", s.until))
			l.state = limited{cooldown: delay.Until(l.clock, s.until)}
		}

		l.passes.Inc(1)
		return l.inner.Call(req)

	default:
		l.drops.Inc(1)
		return service.Failed[Res](ErrRateLimited)
	}
}
