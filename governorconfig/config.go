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

// Package governorconfig builds governing layers from configuration.
//
// Configuration may come from YAML or from an already decoded
// map[string]interface{}:
//
//	timeout: 500ms
//	rateLimit:
//	  quota: 100
//	  window: 1s
//	throttle:
//	  rate: 50
//	  burst: 5
//	inFlight:
//	  max: 16
//
// Every section is optional. Build turns a Config into a single layer, and
// a Reloader republishes the configuration whenever its file changes so that
// NewRebinder can swap the layers of a running service.
package governorconfig

import (
	"fmt"
	"io"
	"io/ioutil"
	"time"

	"github.com/uber-go/mapdecode"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v2"
)

const _tagName = "config"

// Config configures the layers placed in front of a service.
type Config struct {
	// Timeout bounds how long each request may take. Zero disables it.
	Timeout time.Duration `config:"timeout"`

	RateLimit *RateLimitConfig `config:"rateLimit"`
	Throttle  *ThrottleConfig  `config:"throttle"`
	InFlight  *InFlightConfig  `config:"inFlight"`
}

// RateLimitConfig configures a windowed rate limit.
type RateLimitConfig struct {
	Quota  int           `config:"quota"`
	Window time.Duration `config:"window"`
}

// ThrottleConfig configures a token bucket throttle.
type ThrottleConfig struct {
	Rate int `config:"rate"`

	// Burst defaults to the throttle's own default when unset.
	Burst *int `config:"burst"`
}

// InFlightConfig configures a limit on concurrent requests.
type InFlightConfig struct {
	Max int `config:"max"`
}

// Load decodes and validates a Config from a map of attributes.
func Load(data interface{}) (Config, error) {
	var cfg Config
	if err := mapdecode.Decode(&cfg, data, mapdecode.TagName(_tagName)); err != nil {
		return Config{}, fmt.Errorf("failed to decode governor config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadYAML decodes and validates a Config from YAML.
func LoadYAML(r io.Reader) (Config, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return Config{}, err
	}
	return loadYAMLBytes(b)
}

func loadYAMLBytes(b []byte) (Config, error) {
	var data map[string]interface{}
	if err := yaml.Unmarshal(b, &data); err != nil {
		return Config{}, fmt.Errorf("failed to parse governor config: %v", err)
	}
	return Load(data)
}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() (err error) {
	if c.Timeout < 0 {
		err = multierr.Append(err, fmt.Errorf("timeout must not be negative, got %v", c.Timeout))
	}
	if rl := c.RateLimit; rl != nil {
		if rl.Quota <= 0 {
			err = multierr.Append(err, fmt.Errorf("rateLimit.quota must be positive, got %d", rl.Quota))
		}
		if rl.Window <= 0 {
			err = multierr.Append(err, fmt.Errorf("rateLimit.window must be positive, got %v", rl.Window))
		}
	}
	if th := c.Throttle; th != nil {
		if th.Rate <= 0 {
			err = multierr.Append(err, fmt.Errorf("throttle.rate must be positive, got %d", th.Rate))
		}
		if th.Burst != nil && *th.Burst < 0 {
			err = multierr.Append(err, fmt.Errorf("throttle.burst must not be negative, got %d", *th.Burst))
		}
	}
	if in := c.InFlight; in != nil && in.Max < 0 {
		err = multierr.Append(err, fmt.Errorf("inFlight.max must not be negative, got %d", in.Max))
	}
	return err
}
