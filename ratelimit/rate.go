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
)

// Rate is a number of requests allowed per window.
type Rate struct {
	quota  int
	window time.Duration
}

// NewRate returns a Rate of quota requests per window. Both must be
// positive.
func NewRate(quota int, window time.Duration) (Rate, error) {
	if quota <= 0 {
		return Rate{}, fmt.Errorf("rate limit quota must be positive, got %d", quota)
	}
	if window <= 0 {
		return Rate{}, fmt.Errorf("rate limit window must be positive, got %v", window)
	}
	return Rate{quota: quota, window: window}, nil
}

// Quota returns the number of requests allowed per window.
func (r Rate) Quota() int { return r.quota }

// Window returns the length of a window.
func (r Rate) Window() time.Duration { return r.window }

func (r Rate) String() string {
	return fmt.Sprintf("%d/%v", r.quota, r.window)
}
