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
	"bytes"
	"context"
	"io/ioutil"
	"sync"
	"time"

	"github.com/uber-go/tally"
	"go.uber.org/governor/internal/clock"
	"go.uber.org/governor/watch"
	"go.uber.org/zap"
)

// Reloader publishes the configuration stored in a YAML file, republishing
// it whenever the file changes. Only valid configurations are published; an
// invalid file leaves the previous configuration in place.
type Reloader struct {
	path   string
	clock  clock.Clock
	logger *zap.Logger

	reloads  tally.Counter
	failures tally.Counter

	mu   sync.Mutex
	last []byte

	// rejected holds the contents of the last invalid file and why it was
	// rejected, so that it is reported once.
	rejected    []byte
	rejectedErr error

	pub *watch.Publisher[Config]
	sub *watch.Subscriber[Config]
}

// NewReloader loads the configuration at path. It fails if the file cannot
// be read or holds an invalid configuration.
func NewReloader(path string, opts ...Option) (*Reloader, error) {
	o := newOptions(opts)

	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := loadYAMLBytes(b)
	if err != nil {
		return nil, err
	}

	scope := o.scope.SubScope("config")
	pub, sub := watch.New(cfg)
	return &Reloader{
		path:     path,
		clock:    o.clock,
		logger:   o.logger.With(zap.String("path", path)),
		reloads:  scope.Counter("reloads"),
		failures: scope.Counter("reload_failures"),
		last:     b,
		pub:      pub,
		sub:      sub,
	}, nil
}

// Config returns the configuration currently published.
func (r *Reloader) Config() Config {
	return r.pub.Borrow()
}

// Subscribe returns a Subscriber to the published configuration.
func (r *Reloader) Subscribe() *watch.Subscriber[Config] {
	return r.sub.Clone()
}

// Reload reads the file and publishes its configuration if it changed. It
// reports whether a new configuration was published. An invalid file is
// logged once; reloading it again returns the same error quietly.
func (r *Reloader) Reload() (bool, error) {
	b, err := ioutil.ReadFile(r.path)
	if err != nil {
		r.failures.Inc(1)
		r.logger.Warn("failed to read governor config", zap.Error(err))
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if bytes.Equal(b, r.last) {
		return false, nil
	}
	if r.rejected != nil && bytes.Equal(b, r.rejected) {
		return false, r.rejectedErr
	}

	cfg, err := loadYAMLBytes(b)
	if err != nil {
		r.rejected, r.rejectedErr = b, err
		r.failures.Inc(1)
		r.logger.Warn("ignoring invalid governor config", zap.Error(err))
		return false, err
	}
	if err := r.pub.Store(cfg); err != nil {
		return false, err
	}
	r.last = b
	r.rejected, r.rejectedErr = nil, nil
	r.reloads.Inc(1)
	r.logger.Info("reloaded governor config")
	return true, nil
}

// Run reloads the file every interval until ctx is done. Failed reloads are
// logged and retried on the next tick.
func (r *Reloader) Run(ctx context.Context, interval time.Duration) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.clock.After(interval):
			_, _ = r.Reload()
		}
	}
}

// Close stops publishing. Subscribers keep the last configuration.
func (r *Reloader) Close() {
	r.pub.Close()
}
