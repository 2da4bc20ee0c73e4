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

// Package ratelimit bounds the number of requests a service accepts per
// fixed time window.
//
// A window starts with the first request after the limiter was created or
// after the previous window ran out, not on wall-clock boundaries, and
// nothing ticks in the background: the window is rolled forward lazily
// when a request arrives. Once a window's quota is spent the limiter reports
// that it is not ready until the window ends.
//
//	rate, err := ratelimit.NewRate(100, time.Second)
//	if err != nil {
//		return err
//	}
//	svc := ratelimit.New(inner, rate)
//
// The quota is a hard count per window; there is no smoothing between
// windows. See the throttle package for a token bucket.
package ratelimit
