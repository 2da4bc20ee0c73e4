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

// Package middleware defines how governance decorators attach to a service.
package middleware

import "go.uber.org/governor/api/service"

// Layer wraps a Service with a decorator.
//
// Layer MAY keep state shared by every Service it produced (for example a
// capacity counter) and MUST be safe to Apply concurrently.
type Layer[Req, Res any] interface {
	Apply(s service.Service[Req, Res]) service.Service[Req, Res]
}

// LayerFunc adapts a function into a Layer.
type LayerFunc[Req, Res any] func(service.Service[Req, Res]) service.Service[Req, Res]

// Apply for LayerFunc.
func (f LayerFunc[Req, Res]) Apply(s service.Service[Req, Res]) service.Service[Req, Res] {
	return f(s)
}

// Nop returns a Layer that does not do anything special. It returns the
// Service it is given.
func Nop[Req, Res any]() Layer[Req, Res] {
	return nopLayer[Req, Res]{}
}

// Apply applies the given Layer to the given Service. A nil Layer leaves the
// Service untouched.
func Apply[Req, Res any](s service.Service[Req, Res], l Layer[Req, Res]) service.Service[Req, Res] {
	if l == nil {
		return s
	}
	return l.Apply(s)
}

type nopLayer[Req, Res any] struct{}

func (nopLayer[Req, Res]) Apply(s service.Service[Req, Res]) service.Service[Req, Res] {
	return s
}
