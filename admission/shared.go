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

package admission

import (
	"github.com/uber-go/tally"
	"go.uber.org/atomic"
	"go.uber.org/governor/internal/wake"
	"go.uber.org/zap"
)

// shared is the capacity state of a Layer, referenced by every Gate and
// Future derived from it.
type shared struct {
	max    int64
	curr   atomic.Int64
	waiter wake.Slot

	logger   *zap.Logger
	admitted tally.Counter
	rejected tally.Counter
	inFlight tally.Gauge
}

func newShared(max int, opts options) *shared {
	scope := opts.scope.SubScope("admission")
	return &shared{
		max:      int64(max),
		logger:   opts.logger,
		admitted: scope.Counter("admitted"),
		rejected: scope.Counter("rejected"),
		inFlight: scope.Gauge("in_flight"),
	}
}

// reserve attempts to take a unit of capacity. It never blocks.
func (s *shared) reserve() bool {
	curr := s.curr.Load()
	for {
		if curr >= s.max {
			return false
		}
		if s.curr.CompareAndSwap(curr, curr+1) {
			s.admitted.Inc(1)
			s.inFlight.Update(float64(curr + 1))
			return true
		}
		curr = s.curr.Load()
	}
}

// release gives a unit of capacity back. The counter is updated before the
// suspended caller, if any, is woken.
func (s *shared) release() {
	prev := s.curr.Dec() + 1
	if prev <= 0 {
		s.logger.DPanic("admission capacity released more often than reserved", zap.Int64("prev", prev))
	}
	s.inFlight.Update(float64(prev - 1))

	if prev == s.max {
		s.waiter.Wake()
	}
}

func (s *shared) reject() {
	s.rejected.Inc(1)
	s.logger.Debug("request shed by in-flight limit", zap.Int64("max", s.max))
}
