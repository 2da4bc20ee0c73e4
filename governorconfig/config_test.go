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
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func intPtr(i int) *int { return &i }

func TestLoad(t *testing.T) {
	tests := []struct {
		msg     string
		give    map[string]interface{}
		want    Config
		wantErr []string
	}{
		{msg: "empty"},
		{
			msg: "every section",
			give: map[string]interface{}{
				"timeout":   "250ms",
				"rateLimit": map[string]interface{}{"quota": 10, "window": "1s"},
				"throttle":  map[string]interface{}{"rate": 5, "burst": 2},
				"inFlight":  map[string]interface{}{"max": 3},
			},
			want: Config{
				Timeout:   250 * time.Millisecond,
				RateLimit: &RateLimitConfig{Quota: 10, Window: time.Second},
				Throttle:  &ThrottleConfig{Rate: 5, Burst: intPtr(2)},
				InFlight:  &InFlightConfig{Max: 3},
			},
		},
		{
			msg: "throttle without burst",
			give: map[string]interface{}{
				"throttle": map[string]interface{}{"rate": 5},
			},
			want: Config{Throttle: &ThrottleConfig{Rate: 5}},
		},
		{
			msg: "zero in-flight limit",
			give: map[string]interface{}{
				"inFlight": map[string]interface{}{"max": 0},
			},
			want: Config{InFlight: &InFlightConfig{Max: 0}},
		},
		{
			msg:     "bad duration",
			give:    map[string]interface{}{"timeout": "soon"},
			wantErr: []string{"failed to decode governor config"},
		},
		{
			msg: "every problem is reported",
			give: map[string]interface{}{
				"timeout":   "-1s",
				"rateLimit": map[string]interface{}{"quota": 0},
				"throttle":  map[string]interface{}{"rate": 1, "burst": -1},
				"inFlight":  map[string]interface{}{"max": -2},
			},
			wantErr: []string{
				"timeout must not be negative",
				"rateLimit.quota must be positive",
				"rateLimit.window must be positive",
				"throttle.burst must not be negative",
				"inFlight.max must not be negative",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			cfg, err := Load(tt.give)
			if len(tt.wantErr) > 0 {
				require.Error(t, err)
				for _, msg := range tt.wantErr {
					assert.Contains(t, err.Error(), msg)
				}
				if len(tt.wantErr) > 1 {
					assert.Len(t, multierr.Errors(err), len(tt.wantErr))
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestLoadYAML(t *testing.T) {
	cfg, err := LoadYAML(strings.NewReader(`
timeout: 1s
rateLimit:
  quota: 100
  window: 10s
inFlight:
  max: 8
`))
	require.NoError(t, err)
	assert.Equal(t, Config{
		Timeout:   time.Second,
		RateLimit: &RateLimitConfig{Quota: 100, Window: 10 * time.Second},
		InFlight:  &InFlightConfig{Max: 8},
	}, cfg)

	_, err = LoadYAML(strings.NewReader("timeout: [1s"))
	assert.Error(t, err)
}
