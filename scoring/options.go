// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package scoring

import (
	"log/slog"
	"runtime"
	"time"
)

// DefaultEmbeddingTimeout bounds one pair of embedding calls.
const DefaultEmbeddingTimeout = 30 * time.Second

type options struct {
	logger   *slog.Logger
	monitor  Monitor
	timeout  time.Duration
	poolSize int
}

func defaultOptions() *options {
	poolSize := runtime.NumCPU()
	if poolSize < 2 {
		poolSize = 2
	}
	return &options{
		logger:   slog.Default(),
		monitor:  NoopMonitor{},
		timeout:  DefaultEmbeddingTimeout,
		poolSize: poolSize,
	}
}

// Option configures a SemanticScorer or a SemanticEnhanced strategy.
type Option func(*options) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// WithMonitor sets the monitor notified about semantic similarity and fallbacks.
func WithMonitor(m Monitor) Option {
	return func(o *options) error {
		o.monitor = MonitorOrNoop(m)
		return nil
	}
}

// WithTimeout bounds the embedding calls of one Similarity call.
// Default is DefaultEmbeddingTimeout. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d > 0 {
			o.timeout = d
		}
		return nil
	}
}

// WithPoolSize sets the number of embedding workers.
// Default is runtime.NumCPU(), with a minimum of 2 so both texts of a pair
// can be embedded at once.
func WithPoolSize(size int) Option {
	return func(o *options) error {
		if size < 1 {
			size = 1
		}
		o.poolSize = size
		return nil
	}
}

func applyOptions(opts []Option) (*options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}
