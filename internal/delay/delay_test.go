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

package delay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/governor/api/service/servicetest"
	"go.uber.org/governor/internal/clock"
)

func TestDelayFires(t *testing.T) {
	clk := clock.NewFake()
	d := After(clk, time.Second)
	w := servicetest.NewCountingWaker()

	assert.False(t, d.Poll(w))
	assert.Equal(t, clk.Now().Add(time.Second), d.Deadline())

	clk.Add(999 * time.Millisecond)
	assert.False(t, d.Fired())
	assert.Equal(t, 0, w.Count())

	clk.Add(time.Millisecond)
	assert.True(t, d.Fired())
	assert.Equal(t, 1, w.Count())
	assert.True(t, d.Poll(w))
}

func TestDelayInThePast(t *testing.T) {
	clk := clock.NewFake()
	clk.Add(time.Minute)

	d := Until(clk, time.Unix(0, 0))
	assert.True(t, d.Poll(servicetest.NewCountingWaker()))
}

func TestDelayStop(t *testing.T) {
	clk := clock.NewFake()
	d := After(clk, time.Second)
	w := servicetest.NewCountingWaker()

	assert.False(t, d.Poll(w))
	d.Stop()
	clk.Add(time.Hour)

	assert.False(t, d.Fired())
	assert.Equal(t, 0, w.Count())
}

func TestDelayRealClock(t *testing.T) {
	d := After(clock.NewReal(), 10*time.Millisecond)
	woken := make(chan struct{}, 1)
	w := wakerFunc(func() {
		select {
		case woken <- struct{}{}:
		default:
		}
	})

	if d.Poll(w) {
		return
	}
	select {
	case <-woken:
		assert.True(t, d.Poll(w))
	case <-time.After(time.Second):
		assert.Fail(t, "delay never fired")
	}
}

type wakerFunc func()

func (f wakerFunc) Wake() { f() }
