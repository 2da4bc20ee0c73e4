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
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally"
	"go.uber.org/atomic"
	"go.uber.org/governor/api/service"
	"go.uber.org/governor/api/service/servicetest"
	"go.uber.org/governor/governorerrors"
	"go.uber.org/governor/internal/clock"
)

func newCounting() (service.Service[int, int], *atomic.Int32) {
	calls := atomic.NewInt32(0)
	return service.SyncFunc(func(n int) (int, error) {
		calls.Inc()
		return n, nil
	}), calls
}

func mustRate(t *testing.T, quota int, window time.Duration) Rate {
	rate, err := NewRate(quota, window)
	require.NoError(t, err)
	return rate
}

func call(t *testing.T, l *Limiter[int, int], n int) (int, error) {
	res, done, err := l.Call(n).Poll(service.NopWaker)
	require.True(t, done)
	return res, err
}

func TestNewRateInvalid(t *testing.T) {
	tests := []struct {
		msg    string
		quota  int
		window time.Duration
	}{
		{msg: "zero quota", quota: 0, window: time.Second},
		{msg: "negative quota", quota: -1, window: time.Second},
		{msg: "zero window", quota: 1, window: 0},
		{msg: "negative window", quota: 1, window: -time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			_, err := NewRate(tt.quota, tt.window)
			assert.Error(t, err)
		})
	}

	rate, err := NewRate(3, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 3, rate.Quota())
	assert.Equal(t, time.Second, rate.Window())
	assert.Equal(t, "3/1s", rate.String())
}

func TestQuotaPerWindow(t *testing.T) {
	clk := clock.NewFake()
	inner, calls := newCounting()
	l := New(inner, mustRate(t, 3, time.Second), WithClock(clk))

	for round := 0; round < 2; round++ {
		for i := 0; i < 3; i++ {
			ready, err := l.PollReady(service.NopWaker)
			require.NoError(t, err)
			require.True(t, ready, "round %d request %d", round, i)

			res, err := call(t, l, i)
			require.NoError(t, err)
			assert.Equal(t, i, res)
		}

		w := servicetest.NewCountingWaker()
		ready, err := l.PollReady(w)
		require.NoError(t, err)
		assert.False(t, ready, "fourth request must wait for the next window")

		clk.Add(999 * time.Millisecond)
		assert.Equal(t, 0, w.Count())
		ready, _ = l.PollReady(w)
		assert.False(t, ready)

		clk.Add(time.Millisecond)
		assert.Equal(t, 1, w.Count(), "end of window wakes the caller")
	}

	ready, err := l.PollReady(service.NopWaker)
	require.NoError(t, err)
	assert.True(t, ready)
	assert.Equal(t, int32(6), calls.Load())
}

func TestCallWhileLimited(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	clk := clock.NewFake()
	inner := servicetest.NewMockService[int, int](mockCtrl)
	l := New[int, int](inner, mustRate(t, 1, time.Second), WithClock(clk))

	inner.EXPECT().Call(1).Return(service.Ready(1))
	_, err := call(t, l, 1)
	require.NoError(t, err)

	// Skipping the readiness check must not reach the inner service.
	_, err = call(t, l, 2)
	assert.Equal(t, ErrRateLimited, err)
	assert.True(t, IsRateLimited(err))
	assert.True(t, governorerrors.IsResourceExhausted(err))
}

func TestWindowRollsLazily(t *testing.T) {
	clk := clock.NewFake()
	inner, calls := newCounting()
	l := New(inner, mustRate(t, 3, time.Second), WithClock(clk))

	// Spend part of the first window, then idle past its end.
	_, err := call(t, l, 0)
	require.NoError(t, err)
	_, err = call(t, l, 1)
	require.NoError(t, err)
	clk.Add(5 * time.Second)

	// The idle window's leftover quota does not carry over; a fresh window
	// anchored at the next request allows a full quota.
	for i := 0; i < 3; i++ {
		ready, err := l.PollReady(service.NopWaker)
		require.NoError(t, err)
		require.True(t, ready)
		_, err = call(t, l, i)
		require.NoError(t, err)
	}
	ready, _ := l.PollReady(service.NopWaker)
	assert.False(t, ready)
	assert.Equal(t, int32(5), calls.Load())
	assert.Equal(t, 1, clk.Pending(), "only the cooldown timer is armed")
}

func TestPollReadyDelegates(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	inner := servicetest.NewMockService[int, int](mockCtrl)
	l := New[int, int](inner, mustRate(t, 1, time.Second), WithClock(clock.NewFake()))

	inner.EXPECT().PollReady(gomock.Any()).Return(false, nil)
	ready, err := l.PollReady(service.NopWaker)
	assert.NoError(t, err)
	assert.False(t, ready)
}

func TestLayerLimitsEachServiceSeparately(t *testing.T) {
	clk := clock.NewFake()
	layer := NewLayer[int, int](mustRate(t, 1, time.Second), WithClock(clk))
	inner, _ := newCounting()

	a := layer.Apply(inner)
	b := layer.Apply(inner)

	_, done, err := a.Call(1).Poll(service.NopWaker)
	require.True(t, done)
	require.NoError(t, err)

	ready, _ := a.PollReady(service.NopWaker)
	assert.False(t, ready)
	ready, _ = b.PollReady(service.NopWaker)
	assert.True(t, ready)
}

func TestMetrics(t *testing.T) {
	scope := tally.NewTestScope("", nil)
	clk := clock.NewFake()
	inner, _ := newCounting()
	l := New(inner, mustRate(t, 2, time.Second), WithClock(clk), WithTally(scope))

	for i := 0; i < 3; i++ {
		l.Call(i)
	}

	counters := scope.Snapshot().Counters()
	assert.Equal(t, int64(2), counters["ratelimit.passes+"].Value())
	assert.Equal(t, int64(1), counters["ratelimit.drops+"].Value())
	assert.Equal(t, int64(1), counters["ratelimit.limited+"].Value())
}

func TestZeroRatePanics(t *testing.T) {
	inner, _ := newCounting()

	assert.Panics(t, func() { New(inner, Rate{}) })
	assert.Panics(t, func() { NewLayer[int, int](Rate{}) })
	assert.Panics(t, func() { New(inner, Rate{quota: 1}) })
	assert.Panics(t, func() { New(inner, Rate{window: time.Second}) })
}
