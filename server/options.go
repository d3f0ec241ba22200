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

package server

import (
	"context"
	"log/slog"

	"github.com/poiesic/relevance/core"
)

// Calculator is the engine operation the server exposes.
type Calculator interface {
	Calculate(ctx context.Context, pipeline core.Pipeline, primary, secondary string) (*core.Assessment, error)
}

// Option configures the HTTP handler or the MCP server.
type Option func(*options)

type options struct {
	logger          *slog.Logger
	defaultPipeline core.Pipeline
	maxBodyBytes    int64
	version         string
}

func defaultOptions() *options {
	return &options{
		logger:          slog.Default(),
		defaultPipeline: core.PipelineLexical,
		maxBodyBytes:    1 << 20,
		version:         "dev",
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
	}
}

// WithDefaultPipeline sets the pipeline used by the MCP tool when the caller
// names none.
func WithDefaultPipeline(p core.Pipeline) Option {
	return func(o *options) {
		if p != "" {
			o.defaultPipeline = p
		}
	}
}

// WithMaxBodyBytes caps the size of an HTTP request body.
func WithMaxBodyBytes(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBodyBytes = n
		}
	}
}

// WithVersion sets the version reported by the MCP server.
func WithVersion(v string) Option {
	return func(o *options) {
		if v != "" {
			o.version = v
		}
	}
}
