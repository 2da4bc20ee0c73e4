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
	"context"
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally"
	"go.uber.org/governor/internal/clock"
	"go.uber.org/governor/internal/testtime"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func writeConfig(t *testing.T, path, contents string) {
	require.NoError(t, ioutil.WriteFile(path, []byte(contents), 0o644))
}

func TestNewReloaderErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewReloader(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(dir, "invalid.yaml")
	writeConfig(t, path, "inFlight:\n  max: -1\n")
	_, err = NewReloader(path)
	assert.Error(t, err)
}

func TestReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "governor.yaml")
	writeConfig(t, path, "inFlight:\n  max: 1\n")

	scope := tally.NewTestScope("", nil)
	core, logs := observer.New(zapcore.InfoLevel)
	r, err := NewReloader(path, WithTally(scope), WithLogger(zap.New(core)))
	require.NoError(t, err)
	assert.Equal(t, 1, r.Config().InFlight.Max)

	sub := r.Subscribe()

	changed, err := r.Reload()
	require.NoError(t, err)
	assert.False(t, changed, "unchanged file is not republished")

	writeConfig(t, path, "inFlight:\n  max: 2\n")
	changed, err = r.Reload()
	require.NoError(t, err)
	assert.True(t, changed)

	updated, _ := sub.Poll(nil)
	require.True(t, updated)
	assert.Equal(t, 2, sub.Borrow().InFlight.Max)

	writeConfig(t, path, "inFlight:\n  max: -3\n")
	changed, err = r.Reload()
	assert.Error(t, err)
	assert.False(t, changed)
	assert.Equal(t, 2, r.Config().InFlight.Max, "invalid files keep the previous config")
	updated, _ = sub.Poll(nil)
	assert.False(t, updated)

	_, again := r.Reload()
	assert.Equal(t, err, again, "an unchanged invalid file fails the same way")

	counters := scope.Snapshot().Counters()
	assert.Equal(t, int64(1), counters["config.reloads+"].Value())
	assert.Equal(t, int64(1), counters["config.reload_failures+"].Value())
	assert.Equal(t, 1, logs.FilterMessage("ignoring invalid governor config").Len())

	r.Close()
	_, closed := sub.Poll(nil)
	assert.True(t, closed)
}

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "governor.yaml")
	writeConfig(t, path, "timeout: 1s\n")

	clk := clock.NewFake()
	r, err := NewReloader(path, WithClock(clk))
	require.NoError(t, err)
	sub := r.Subscribe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx, time.Minute) }()

	writeConfig(t, path, "timeout: 2s\n")
	require.Eventually(t, func() bool {
		clk.Add(time.Minute)
		changed, _ := sub.Poll(nil)
		return changed
	}, testtime.Second, testtime.Millisecond)
	assert.Equal(t, 2*time.Second, sub.Borrow().Timeout)

	cancel()
	select {
	case err := <-done:
		assert.Equal(t, context.Canceled, err)
	case <-time.After(testtime.Second):
		t.Fatal("Run did not stop after its context was cancelled")
	}
}

func TestReloadAfterRejectedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "governor.yaml")
	writeConfig(t, path, "inFlight:\n  max: 1\n")

	core, logs := observer.New(zapcore.InfoLevel)
	r, err := NewReloader(path, WithLogger(zap.New(core)))
	require.NoError(t, err)

	writeConfig(t, path, "inFlight:\n  max: -1\n")
	for i := 0; i < 3; i++ {
		_, err := r.Reload()
		assert.Error(t, err)
	}
	assert.Equal(t, 1, logs.FilterMessage("ignoring invalid governor config").Len())

	writeConfig(t, path, "inFlight:\n  max: 5\n")
	changed, err := r.Reload()
	require.NoError(t, err)
	assert.True(t, changed)

	writeConfig(t, path, "inFlight:\n  max: -1\n")
	_, err = r.Reload()
	assert.Error(t, err)
	assert.Equal(t, 2, logs.FilterMessage("ignoring invalid governor config").Len(),
		"the same invalid file is reported again once it reappears")
	assert.Equal(t, 5, r.Config().InFlight.Max)
}
