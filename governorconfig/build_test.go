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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally"
	"go.uber.org/governor/admission"
	"go.uber.org/governor/api/service"
	"go.uber.org/governor/deadline"
	"go.uber.org/governor/internal/clock"
	"go.uber.org/governor/ratelimit"
)

var echo = service.SyncFunc(func(s string) (string, error) { return s, nil })

func TestBuildEmpty(t *testing.T) {
	layer, err := Build[string, string](Config{})
	require.NoError(t, err)

	svc := layer.Apply(echo)
	res, done, err := svc.Call("a").Poll(service.NopWaker)
	require.True(t, done)
	require.NoError(t, err)
	assert.Equal(t, "a", res)
}

func TestBuildInvalid(t *testing.T) {
	_, err := Build[string, string](Config{InFlight: &InFlightConfig{Max: -1}})
	assert.Error(t, err)
}

func TestBuildTimeoutIsOutermost(t *testing.T) {
	layer, err := Build[string, string](Config{
		Timeout:  time.Second,
		InFlight: &InFlightConfig{Max: 1},
	}, WithClock(clock.NewFake()))
	require.NoError(t, err)

	svc := layer.Apply(echo)
	require.IsType(t, &deadline.Enforcer[string, string]{}, svc)
	assert.Equal(t, time.Second, svc.(*deadline.Enforcer[string, string]).Timeout())
}

func TestBuildRateLimitBeforeInFlight(t *testing.T) {
	layer, err := Build[string, string](Config{
		RateLimit: &RateLimitConfig{Quota: 5, Window: time.Second},
		InFlight:  &InFlightConfig{Max: 0},
	}, WithClock(clock.NewFake()))
	require.NoError(t, err)

	svc := layer.Apply(echo)
	require.IsType(t, &ratelimit.Limiter[string, string]{}, svc)

	ready, err := svc.PollReady(service.NopWaker)
	require.NoError(t, err)
	assert.False(t, ready, "the in-flight limit of zero holds every request")

	_, done, err := svc.Call("a").Poll(service.NopWaker)
	require.True(t, done)
	assert.Equal(t, admission.ErrNoCapacity, err)
}

func TestBuildMetrics(t *testing.T) {
	scope := tally.NewTestScope("", nil)
	clk := clock.NewFake()
	layer, err := Build[string, string](Config{
		Throttle: &ThrottleConfig{Rate: 1, Burst: intPtr(1)},
		InFlight: &InFlightConfig{Max: 4},
	}, WithClock(clk), WithTally(scope))
	require.NoError(t, err)

	svc := layer.Apply(echo)
	for i := 0; i < 2; i++ {
		svc.Call("a").Poll(service.NopWaker)
	}

	counters := scope.Snapshot().Counters()
	assert.Equal(t, int64(1), counters["throttle.passes+"].Value())
	assert.Equal(t, int64(1), counters["throttle.drops+"].Value())
	assert.Equal(t, int64(1), counters["admission.admitted+"].Value())
}
