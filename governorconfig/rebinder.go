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
	"go.uber.org/governor/api/service"
	"go.uber.org/governor/rebind"
	"go.uber.org/governor/watch"
	"go.uber.org/zap"
)

// NewRebinder returns a service placing the layers built from the latest
// configuration of sub in front of base. New layers are built each time the
// configuration changes; requests already dispatched through the previous
// layers keep counting against them.
func NewRebinder[Req, Res any](sub *watch.Subscriber[Config], base service.Service[Req, Res], opts ...Option) *rebind.Rebinder[Config, Req, Res] {
	o := newOptions(opts)
	bind := func(cfg Config) service.Service[Req, Res] {
		layer, err := Build[Req, Res](cfg, opts...)
		if err != nil {
			// Published configurations are validated, so this only happens
			// when sub is fed by hand.
			o.logger.Error("failed to build governor layers, using the bare service", zap.Error(err))
			return base
		}
		return layer.Apply(base)
	}
	return rebind.New[Config, Req, Res](sub, bind,
		rebind.WithTally(o.scope),
		rebind.WithLogger(o.logger),
	)
}
