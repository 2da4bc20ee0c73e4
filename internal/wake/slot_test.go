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

package wake

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/governor/api/service/servicetest"
)

func TestSlotWakeEmpty(t *testing.T) {
	var s Slot
	assert.False(t, s.Wake())
}

func TestSlotWakeConsumesRegistration(t *testing.T) {
	var s Slot
	w := servicetest.NewCountingWaker()

	s.Register(w)
	assert.True(t, s.Wake())
	assert.False(t, s.Wake(), "a registration is woken once")
	assert.Equal(t, 1, w.Count())
}

func TestSlotRegisterOverwrites(t *testing.T) {
	var s Slot
	first := servicetest.NewCountingWaker()
	second := servicetest.NewCountingWaker()

	s.Register(first)
	s.Register(second)
	s.Wake()

	assert.Equal(t, 0, first.Count(), "only the last registration is retained")
	assert.Equal(t, 1, second.Count())
}

func TestSlotRegisterNilClears(t *testing.T) {
	var s Slot
	w := servicetest.NewCountingWaker()

	s.Register(w)
	s.Register(nil)
	assert.False(t, s.Wake())
	assert.Equal(t, 0, w.Count())
}

func TestSlotConcurrentWake(t *testing.T) {
	var s Slot
	w := servicetest.NewCountingWaker()
	s.Register(w)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Wake()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, w.Count())
}
