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

// Package governorfx provides governing layers to fx applications.
//
// The application supplies the path of a YAML configuration file; the
// module watches that file and provides a Rebind that places the layers the
// file describes in front of a service, rebuilding them whenever the file
// changes:
//
//	fx.New(
//		governorfx.Module,
//		fx.Supply(fx.Annotated{Name: governorfx.PathName, Target: "/etc/governor.yaml"}),
//		fx.Invoke(func(bind governorfx.Rebind) { svc := bind(handler); ... }),
//	)
//
// The Layer built from the configuration loaded at startup is provided as
// well, for services that do not follow changes.
package governorfx

import (
	"context"
	"time"

	"github.com/uber-go/tally"
	"go.uber.org/fx"
	"go.uber.org/governor/api/middleware"
	"go.uber.org/governor/api/service"
	"go.uber.org/governor/governorconfig"
	"go.uber.org/zap"
)

const (
	// PathName names the configuration file path in the fx graph.
	PathName = "governor_config_path"

	// IntervalName names the optional reload interval in the fx graph.
	IntervalName = "governor_reload_interval"

	_defaultInterval = 10 * time.Second
)

// Module provides a Reloader, the Config it loaded, the Layer built from
// that Config, and a Rebind following the Reloader.
var Module = fx.Options(
	fx.Provide(NewReloader),
	fx.Provide(NewLayer),
	fx.Provide(NewRebind),
)

// ReloaderParams defines the dependencies of the Reloader.
type ReloaderParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Path      string        `name:"governor_config_path"`
	Interval  time.Duration `name:"governor_reload_interval" optional:"true"`
	Logger    *zap.Logger   `optional:"true"`
	Scope     tally.Scope   `optional:"true"`
}

// ReloaderResult defines the values produced by the Reloader.
type ReloaderResult struct {
	fx.Out

	Reloader *governorconfig.Reloader
	Config   governorconfig.Config
}

// NewReloader loads the configuration file and keeps reloading it while the
// application runs.
func NewReloader(p ReloaderParams) (ReloaderResult, error) {
	r, err := governorconfig.NewReloader(p.Path, configOptions(p.Logger, p.Scope)...)
	if err != nil {
		return ReloaderResult{}, err
	}

	interval := p.Interval
	if interval <= 0 {
		interval = _defaultInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				_ = r.Run(ctx, interval)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			defer r.Close()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})

	return ReloaderResult{Reloader: r, Config: r.Config()}, nil
}

// LayerParams defines the dependencies of the Layer.
type LayerParams struct {
	fx.In

	Config governorconfig.Config
	Logger *zap.Logger `optional:"true"`
	Scope  tally.Scope `optional:"true"`
}

// LayerResult defines the values produced by this module.
type LayerResult struct {
	fx.Out

	Layer middleware.Layer[[]byte, []byte]
}

// NewLayer builds the Layer described by the loaded configuration.
func NewLayer(p LayerParams) (LayerResult, error) {
	layer, err := governorconfig.Build[[]byte, []byte](p.Config, configOptions(p.Logger, p.Scope)...)
	if err != nil {
		return LayerResult{}, err
	}
	return LayerResult{Layer: layer}, nil
}

func configOptions(logger *zap.Logger, scope tally.Scope) []governorconfig.Option {
	var opts []governorconfig.Option
	if logger != nil {
		opts = append(opts, governorconfig.WithLogger(logger))
	}
	if scope != nil {
		opts = append(opts, governorconfig.WithTally(scope))
	}
	return opts
}

// Rebind places the layers of the latest configuration in front of base.
// Each call returns an independent service driven by a single caller.
type Rebind func(base service.Service[[]byte, []byte]) service.Service[[]byte, []byte]

// RebindParams defines the dependencies of the Rebind.
type RebindParams struct {
	fx.In

	Reloader *governorconfig.Reloader
	Logger   *zap.Logger `optional:"true"`
	Scope    tally.Scope `optional:"true"`
}

// RebindResult defines the values produced by this module.
type RebindResult struct {
	fx.Out

	Rebind Rebind
}

// NewRebind returns a Rebind subscribed to the Reloader.
func NewRebind(p RebindParams) RebindResult {
	opts := configOptions(p.Logger, p.Scope)
	return RebindResult{
		Rebind: func(base service.Service[[]byte, []byte]) service.Service[[]byte, []byte] {
			return governorconfig.NewRebinder(p.Reloader.Subscribe(), base, opts...)
		},
	}
}
