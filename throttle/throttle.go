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

package throttle

import (
	"time"

	"go.uber.org/governor/api/middleware"
	"go.uber.org/governor/api/service"
	"go.uber.org/governor/internal/clock"
	"go.uber.org/governor/internal/delay"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type bucket struct {
	limiter *rate.Limiter
	clock   clock.Clock
	logger  *zap.Logger
	metrics metrics
}

func newBucket(opts ...Option) (*bucket, error) {
	options := defaultOptions
	for _, opt := range opts {
		opt.apply(&options)
	}
	if err := options.validate(); err != nil {
		return nil, err
	}
	return &bucket{
		limiter: rate.NewLimiter(rate.Limit(options.rate), options.burst),
		clock:   options.clock,
		logger:  options.logger,
		metrics: newMetrics(options.scope),
	}, nil
}

// Throttle is a service letting requests through at a steady rate.
type Throttle[Req, Res any] struct {
	inner  service.Service[Req, Res]
	bucket *bucket

	// held is set once a token has been secured for the next Call.
	held bool

	// pending is the wait for a reserved token that is not due yet.
	pending   *delay.Delay
	waitStart time.Time
}

var _ service.Service[any, any] = (*Throttle[any, any])(nil)

// New returns a Throttle in front of inner. WithRate is required.
func New[Req, Res any](inner service.Service[Req, Res], opts ...Option) (*Throttle[Req, Res], error) {
	b, err := newBucket(opts...)
	if err != nil {
		return nil, err
	}
	return &Throttle[Req, Res]{inner: inner, bucket: b}, nil
}

// NewLayer returns a Layer throttling every service it is applied to. All of
// them draw from the same token bucket.
func NewLayer[Req, Res any](opts ...Option) (middleware.Layer[Req, Res], error) {
	b, err := newBucket(opts...)
	if err != nil {
		return nil, err
	}
	return middleware.LayerFunc[Req, Res](func(inner service.Service[Req, Res]) service.Service[Req, Res] {
		return &Throttle[Req, Res]{inner: inner, bucket: b}
	}), nil
}

// PollReady secures a token for the next Call, suspending until the token
// is due, then delegates to the inner service. It fails with ErrThrottled if
// the bucket can never hand out a token.
func (t *Throttle[Req, Res]) PollReady(w service.Waker) (bool, error) {
	if !t.held {
		if ready, err := t.pollToken(w); !ready {
			return false, err
		}
	}
	return t.inner.PollReady(w)
}

func (t *Throttle[Req, Res]) pollToken(w service.Waker) (bool, error) {
	if t.pending == nil {
		now := t.bucket.clock.Now()
		r := t.bucket.limiter.ReserveN(now, 1)
		if !r.OK() {
			t.bucket.metrics.drops.Inc(1)
			return false, ErrThrottled
		}
		wait := r.DelayFrom(now)
		if wait <= 0 {
			t.held = true
			return true, nil
		}
		t.pending = delay.After(t.bucket.clock, wait)
		t.waitStart = now
	}

	if !t.pending.Poll(w) {
		return false, nil
	}
	t.bucket.metrics.overhead.RecordDuration(t.bucket.clock.Now().Sub(t.waitStart))
	t.pending = nil
	t.held = true
	return true, nil
}

// Call forwards req to the inner service using the token secured by
// PollReady, or takes one inline. Without a token the request is refused.
func (t *Throttle[Req, Res]) Call(req Req) service.Future[Res] {
	if t.held {
		t.held = false
	} else if !t.bucket.limiter.AllowN(t.bucket.clock.Now(), 1) {
		t.bucket.metrics.drops.Inc(1)
		t.bucket.logger.Debug("request throttled")
		return service.Failed[Res](ErrThrottled)
	}
	t.bucket.metrics.passes.Inc(1)
	return t.inner.Call(req)
}
