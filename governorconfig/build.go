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

package governorconfig

import (
	"go.uber.org/governor/admission"
	"go.uber.org/governor/api/middleware"
	"go.uber.org/governor/deadline"
	"go.uber.org/governor/internal/chain"
	"go.uber.org/governor/ratelimit"
	"go.uber.org/governor/throttle"
)

// Build returns a layer applying every configured section. From outermost
// to innermost the layers are: timeout, rate limit, throttle, in-flight
// limit. An empty Config builds a layer that changes nothing.
func Build[Req, Res any](cfg Config, opts ...Option) (middleware.Layer[Req, Res], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := newOptions(opts)

	var layers []middleware.Layer[Req, Res]
	if cfg.Timeout > 0 {
		layers = append(layers, deadline.NewLayer[Req, Res](cfg.Timeout,
			deadline.WithClock(o.clock),
			deadline.WithTally(o.scope),
			deadline.WithLogger(o.logger),
		))
	}
	if rl := cfg.RateLimit; rl != nil {
		rate, err := ratelimit.NewRate(rl.Quota, rl.Window)
		if err != nil {
			return nil, err
		}
		layers = append(layers, ratelimit.NewLayer[Req, Res](rate,
			ratelimit.WithClock(o.clock),
			ratelimit.WithTally(o.scope),
			ratelimit.WithLogger(o.logger),
		))
	}
	if th := cfg.Throttle; th != nil {
		topts := []throttle.Option{
			throttle.WithRate(th.Rate),
			throttle.WithClock(o.clock),
			throttle.WithTally(o.scope),
			throttle.WithLogger(o.logger),
		}
		if th.Burst != nil {
			topts = append(topts, throttle.WithBurstLimit(*th.Burst))
		}
		layer, err := throttle.NewLayer[Req, Res](topts...)
		if err != nil {
			return nil, err
		}
		layers = append(layers, layer)
	}
	if in := cfg.InFlight; in != nil {
		layers = append(layers, admission.NewLayer[Req, Res](in.Max,
			admission.WithTally(o.scope),
			admission.WithLogger(o.logger),
		))
	}
	return chain.New(layers...), nil
}
