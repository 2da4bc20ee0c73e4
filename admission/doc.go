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

// Package admission bounds the number of requests a service has in flight.
//
// A Gate wraps a service and a capacity shared with every clone of the Gate
// and every Future it produced. PollReady reserves a unit of capacity ahead
// of Call; when none is left the caller is suspended and woken by the next
// release. Each admitted request gives its unit back exactly once: when its
// Future resolves, when it is abandoned, or when the Future is garbage
// collected without either happening.
//
//	layer := admission.NewLayer(64, admission.WithTally(scope))
//	svc := layer.Apply(inner)
//
// Only one suspended caller is remembered per capacity: a new registration
// replaces the previous one. Gates sharing a capacity across several
// concurrently suspended drivers must be serialized externally or tolerate
// polling again on their own schedule.
package admission
