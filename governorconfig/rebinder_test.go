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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/governor/admission"
	"go.uber.org/governor/api/service"
	"go.uber.org/governor/api/service/servicetest"
	"go.uber.org/governor/internal/clock"
	"go.uber.org/governor/watch"
)

func TestRebinderFollowsConfig(t *testing.T) {
	pub, sub := watch.New(Config{InFlight: &InFlightConfig{Max: 0}})
	svc := NewRebinder[string, string](sub, echo, WithClock(clock.NewFake()))

	w := servicetest.NewCountingWaker()
	ready, err := svc.PollReady(w)
	require.NoError(t, err)
	assert.False(t, ready)

	require.NoError(t, pub.Store(Config{InFlight: &InFlightConfig{Max: 1}}))
	assert.Equal(t, 1, w.Count())

	ready, err = svc.PollReady(w)
	require.NoError(t, err)
	assert.True(t, ready)

	res, done, err := svc.Call("a").Poll(service.NopWaker)
	require.True(t, done)
	require.NoError(t, err)
	assert.Equal(t, "a", res)

	require.NoError(t, pub.Store(Config{}))
	ready, err = svc.PollReady(w)
	require.NoError(t, err)
	assert.True(t, ready)
	_, gated := svc.Inner().(*admission.Gate[string, string])
	assert.False(t, gated, "an empty config binds the bare service")
}

func TestRebinderInvalidConfigUsesBareService(t *testing.T) {
	_, sub := watch.New(Config{InFlight: &InFlightConfig{Max: -1}})
	svc := NewRebinder[string, string](sub, echo)

	_, done, err := svc.Call("a").Poll(service.NopWaker)
	require.True(t, done)
	assert.NoError(t, err)
}
