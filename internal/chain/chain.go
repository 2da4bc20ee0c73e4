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

// Package chain composes governance layers.
package chain

import (
	"go.uber.org/governor/api/middleware"
	"go.uber.org/governor/api/service"
)

// New combines a series of Layers into a single Layer. The first Layer is
// the outermost: it sees requests first and resolutions last.
//
// Nil layers are skipped and nested chains are flattened.
func New[Req, Res any](layers ...middleware.Layer[Req, Res]) middleware.Layer[Req, Res] {
	unchained := make([]middleware.Layer[Req, Res], 0, len(layers))
	for _, l := range layers {
		if l == nil {
			continue
		}
		if c, ok := l.(layerChain[Req, Res]); ok {
			unchained = append(unchained, c...)
			continue
		}
		unchained = append(unchained, l)
	}

	switch len(unchained) {
	case 0:
		return middleware.Nop[Req, Res]()
	case 1:
		return unchained[0]
	default:
		return layerChain[Req, Res](unchained)
	}
}

type layerChain[Req, Res any] []middleware.Layer[Req, Res]

func (c layerChain[Req, Res]) Apply(s service.Service[Req, Res]) service.Service[Req, Res] {
	for i := len(c) - 1; i >= 0; i-- {
		s = c[i].Apply(s)
	}
	return s
}
