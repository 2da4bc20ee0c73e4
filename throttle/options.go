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
	"fmt"

	"github.com/uber-go/tally"
	"go.uber.org/governor/internal/clock"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Option customizes the behavior of a Throttle.
type Option interface {
	apply(*options)
}

type optionFunc func(*options)

func (f optionFunc) apply(opts *options) { f(opts) }

type options struct {
	clock  clock.Clock
	scope  tally.Scope
	logger *zap.Logger

	// rate is the rate in requests per second
	rate int

	// burst is the maximum number of allowed instantaneous requests
	burst int
}

var defaultOptions = options{
	clock:  clock.NewReal(),
	scope:  tally.NoopScope,
	logger: zap.NewNop(),
	rate:   -1,
	burst:  10,
}

func (o options) validate() error {
	var err error
	if o.rate <= 0 {
		err = multierr.Append(err, fmt.Errorf("throttle rate must be positive, got %d", o.rate))
	}
	if o.burst < 0 {
		err = multierr.Append(err, fmt.Errorf("throttle burst limit must not be negative, got %d", o.burst))
	}
	return err
}

// WithRate sets the number of requests per second the throttle lets
// through. It is required.
func WithRate(rate int) Option {
	return optionFunc(func(opts *options) {
		opts.rate = rate
	})
}

// WithBurstLimit sets the maximum number of requests let through at once.
// Defaults to 10. A burst limit of zero throttles every request.
func WithBurstLimit(burst int) Option {
	return optionFunc(func(opts *options) {
		opts.burst = burst
	})
}

// WithClock sets the clock used to schedule tokens.
func WithClock(c clock.Clock) Option {
	return optionFunc(func(opts *options) {
		opts.clock = c
	})
}

// WithTally sets a Tally scope that will be used to record throttle metrics.
func WithTally(scope tally.Scope) Option {
	return optionFunc(func(opts *options) {
		opts.scope = scope
	})
}

// WithLogger sets a zap Logger that will be used to record throttle logs.
func WithLogger(logger *zap.Logger) Option {
	return optionFunc(func(opts *options) {
		opts.logger = logger
	})
}
