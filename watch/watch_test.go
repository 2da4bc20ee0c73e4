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

package watch

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/governor/api/service"
	"go.uber.org/governor/api/service/servicetest"
)

func TestPollSeesLatestOnly(t *testing.T) {
	pub, sub := New(1)
	assert.Equal(t, 1, sub.Borrow())

	changed, closed := sub.Poll(service.NopWaker)
	assert.False(t, changed, "the initial value counts as observed")
	assert.False(t, closed)

	require.NoError(t, pub.Store(2))
	require.NoError(t, pub.Store(3))

	changed, closed = sub.Poll(service.NopWaker)
	assert.True(t, changed)
	assert.False(t, closed)
	assert.Equal(t, 3, sub.Borrow())
	assert.Equal(t, uint64(2), sub.Version())

	changed, _ = sub.Poll(service.NopWaker)
	assert.False(t, changed, "a version is reported once")
}

func TestStoreWakesWaiters(t *testing.T) {
	pub, sub := New("a")
	other := pub.Subscribe()

	w1 := servicetest.NewCountingWaker()
	w2 := servicetest.NewCountingWaker()
	sub.Poll(w1)
	other.Poll(w2)

	require.NoError(t, pub.Store("b"))
	assert.Equal(t, 1, w1.Count())
	assert.Equal(t, 1, w2.Count())

	require.NoError(t, pub.Store("c"))
	assert.Equal(t, 1, w1.Count(), "wakers are registered for one change")
}

func TestSubscribersTrackVersionsIndependently(t *testing.T) {
	pub, sub := New(0)
	clone := sub.Clone()

	require.NoError(t, pub.Store(1))

	changed, _ := sub.Poll(nil)
	assert.True(t, changed)
	changed, _ = sub.Poll(nil)
	assert.False(t, changed)

	changed, _ = clone.Poll(nil)
	assert.True(t, changed, "observing through one subscriber does not affect another")

	late := pub.Subscribe()
	changed, _ = late.Poll(nil)
	assert.False(t, changed, "new subscribers start at the current version")
}

func TestClose(t *testing.T) {
	pub, sub := New(1)
	w := servicetest.NewCountingWaker()
	sub.Poll(w)

	require.NoError(t, pub.Store(2))
	pub.Close()
	pub.Close()

	assert.Equal(t, ErrClosed, pub.Store(3))
	assert.Equal(t, 1, w.Count())

	changed, closed := sub.Poll(w)
	assert.True(t, changed, "the last stored value is delivered before closing")
	assert.False(t, closed)

	changed, closed = sub.Poll(w)
	assert.False(t, changed)
	assert.True(t, closed)
	assert.Equal(t, 2, sub.Borrow())
	assert.Equal(t, 2, pub.Borrow())
}

func TestCloseWakesWaiters(t *testing.T) {
	pub, sub := New(1)
	w := servicetest.NewCountingWaker()
	sub.Poll(w)

	pub.Close()
	assert.Equal(t, 1, w.Count())
}

func TestConcurrentStores(t *testing.T) {
	pub, sub := New(0)

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, pub.Store(i))
		}(i)
	}
	wg.Wait()

	changed, _ := sub.Poll(nil)
	assert.True(t, changed)
	assert.Equal(t, uint64(50), sub.Version())
}

func TestPollValueMatchesObservedVersion(t *testing.T) {
	pub, sub := New("a")

	v, changed, closed := sub.PollValue(nil)
	assert.Equal(t, "", v)
	assert.False(t, changed)
	assert.False(t, closed)

	require.NoError(t, pub.Store("b"))
	v, changed, _ = sub.PollValue(nil)
	require.True(t, changed)
	require.NoError(t, pub.Store("c"))

	assert.Equal(t, "b", v, "the value belongs to the observed version")
	assert.Equal(t, uint64(1), sub.Version())

	v, changed, _ = sub.PollValue(nil)
	require.True(t, changed)
	assert.Equal(t, "c", v)
	assert.Equal(t, uint64(2), sub.Version())

	pub.Close()
	_, changed, closed = sub.PollValue(nil)
	assert.False(t, changed)
	assert.True(t, closed)
}
