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

// governorbench drives a synthetic service through governing layers and
// reports how many requests were admitted and why the rest were refused.
//
//	governorbench -config governor.yaml -workers 16 -duration 10s -latency 5ms
//
// Pass -metrics-addr to expose the layers' metrics for Prometheus while the
// benchmark runs.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/uber-go/tally"
	"github.com/uber-go/tally/prometheus"
	"go.uber.org/governor/api/middleware"
	"go.uber.org/governor/api/service"
	"go.uber.org/governor/drive"
	"go.uber.org/governor/governorconfig"
	"go.uber.org/governor/governorerrors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const _reportInterval = time.Second

type flags struct {
	config      string
	workers     int
	duration    time.Duration
	latency     time.Duration
	metricsAddr string
}

func parseFlags(args []string, output io.Writer) (flags, error) {
	var f flags
	fs := flag.NewFlagSet("governorbench", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&f.config, "config", "", "path to a YAML governor configuration")
	fs.IntVar(&f.workers, "workers", 8, "number of concurrent callers")
	fs.DurationVar(&f.duration, "duration", 5*time.Second, "how long to run")
	fs.DurationVar(&f.latency, "latency", 10*time.Millisecond, "latency of the synthetic handler")
	fs.StringVar(&f.metricsAddr, "metrics-addr", "", "address to serve Prometheus metrics on")
	if err := fs.Parse(args); err != nil {
		return flags{}, err
	}
	if f.workers <= 0 {
		return flags{}, fmt.Errorf("-workers must be positive, got %d", f.workers)
	}
	return f, nil
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(os.Args[1:], logger); err != nil {
		logger.Error("benchmark failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(args []string, logger *zap.Logger) (err error) {
	f, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(f.config)
	if err != nil {
		return err
	}

	scope := tally.NoopScope
	if f.metricsAddr != "" {
		var stop func() error
		scope, stop, err = serveMetrics(f.metricsAddr, logger)
		if err != nil {
			return err
		}
		defer func() { err = multierr.Append(err, stop()) }()
	}

	layer, err := governorconfig.Build[[]byte, []byte](cfg,
		governorconfig.WithLogger(logger),
		governorconfig.WithTally(scope),
	)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), f.duration)
	defer cancel()

	logger.Info("starting benchmark",
		zap.Int("workers", f.workers),
		zap.Duration("duration", f.duration),
		zap.Duration("latency", f.latency))

	s := bench(ctx, layer, f.workers, f.latency)
	logger.Info("benchmark finished", zap.Object("summary", s))
	return nil
}

func loadConfig(path string) (governorconfig.Config, error) {
	if path == "" {
		return governorconfig.Config{}, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return governorconfig.Config{}, err
	}
	defer file.Close()
	return governorconfig.LoadYAML(file)
}

func serveMetrics(addr string, logger *zap.Logger) (tally.Scope, func() error, error) {
	reporter := prometheus.NewReporter(prometheus.Options{
		OnRegisterError: func(err error) {
			logger.Warn("failed to register metric", zap.Error(err))
		},
	})
	scope, closer := tally.NewRootScope(tally.ScopeOptions{
		Prefix:         "governorbench",
		CachedReporter: reporter,
		Separator:      prometheus.DefaultSeparator,
	}, _reportInterval)

	mux := http.NewServeMux()
	mux.Handle("/metrics", reporter.HTTPHandler())
	server := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", zap.Error(err))
		}
	}()
	logger.Info("serving metrics", zap.String("addr", addr))

	stop := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return multierr.Combine(server.Shutdown(ctx), closer.Close())
	}
	return scope, stop, nil
}

// handler answers every request with its own body after latency.
type handler struct {
	latency time.Duration
}

func (h handler) PollReady(service.Waker) (bool, error) { return true, nil }

func (h handler) Call(req []byte) service.Future[[]byte] {
	p := service.NewPromise[[]byte]()
	time.AfterFunc(h.latency, func() { p.Resolve(req, nil) })
	return p
}

type summary struct {
	mu       sync.Mutex
	admitted int64
	rejected map[string]int64
}

func (s *summary) record(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		s.admitted++
		return
	}
	s.rejected[governorerrors.FromError(err).Code().String()]++
}

func (s *summary) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	enc.AddInt64("admitted", s.admitted)
	codes := make([]string, 0, len(s.rejected))
	for code := range s.rejected {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return enc.AddObject("rejected", zapcore.ObjectMarshalerFunc(func(enc zapcore.ObjectEncoder) error {
		for _, code := range codes {
			enc.AddInt64(code, s.rejected[code])
		}
		return nil
	}))
}

func bench(ctx context.Context, layer middleware.Layer[[]byte, []byte], workers int, latency time.Duration) *summary {
	s := &summary{rejected: make(map[string]int64)}
	body := []byte("ping")

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		svc := layer.Apply(handler{latency: latency})
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				_, err := drive.Call(ctx, svc, body)
				if ctx.Err() != nil {
					return
				}
				s.record(err)
			}
		}()
	}
	wg.Wait()
	return s
}
