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

package drive

import (
	"time"

	"go.uber.org/governor/internal/clock"
)

const (
	_defaultMinRepoll = time.Millisecond
	_defaultMaxRepoll = 50 * time.Millisecond
)

// Option customizes how a service is driven.
type Option interface {
	apply(*options)
}

type optionFunc func(*options)

func (f optionFunc) apply(opts *options) { f(opts) }

type options struct {
	clock     clock.Clock
	minRepoll time.Duration
	maxRepoll time.Duration
}

var defaultOptions = options{
	clock:     clock.NewReal(),
	minRepoll: _defaultMinRepoll,
	maxRepoll: _defaultMaxRepoll,
}

func newOptions(opts []Option) options {
	options := defaultOptions
	for _, opt := range opts {
		opt.apply(&options)
	}
	if options.minRepoll <= 0 {
		options.minRepoll = _defaultMinRepoll
	}
	if options.maxRepoll < options.minRepoll {
		options.maxRepoll = options.minRepoll
	}
	return options
}

// WithClock sets the clock used to schedule repeated readiness checks.
func WithClock(c clock.Clock) Option {
	return optionFunc(func(opts *options) {
		opts.clock = c
	})
}

// WithRepoll bounds the backoff between readiness checks made while no
// wake-up arrives. The first check waits initial, and the wait doubles up
// to limit. Defaults to 1ms and 50ms.
func WithRepoll(initial, limit time.Duration) Option {
	return optionFunc(func(opts *options) {
		opts.minRepoll = initial
		opts.maxRepoll = limit
	})
}
