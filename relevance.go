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

// Package relevance estimates whether what one person knows is relevant to
// another person, by comparing two free-text descriptions.
//
// An Engine runs one of three pipelines over the pair and returns a
// core.Assessment: a score in [0,1], a threshold decision, the named
// component scores, an English explanation and the entities found in each
// text.
//
//	engine, err := relevance.NewEngine(relevance.WithAIConfig(ai.NewConfig(ai.WithAPIKey(key))))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Close()
//
//	a, err := engine.Calculate(ctx, core.PipelineSemantic, primary, secondary)
package relevance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/relevance/ai"
	"github.com/poiesic/relevance/ai/openai"
	"github.com/poiesic/relevance/core"
	"github.com/poiesic/relevance/explain"
	"github.com/poiesic/relevance/scoring"
)

// Engine runs relevance calculations. It holds no per-call state; concurrent
// Calculate calls are safe.
type Engine struct {
	strategies  map[core.Pipeline]scoring.Strategy
	scorer      *scoring.SemanticScorer
	provider    ai.Provider
	semanticErr error
	formatter   explain.Formatter
	monitor     scoring.Monitor
	logger      *slog.Logger
}

// Option configures an Engine.
type Option func(*engineOptions) error

type engineOptions struct {
	logger    *slog.Logger
	embedder  ai.Embedder
	aiConfig  *ai.Config
	formatter explain.Formatter
	monitor   scoring.Monitor
	poolSize  int
	timeout   time.Duration
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *engineOptions) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// WithEmbedder enables the semantic pipeline with the given embedder.
// It takes precedence over WithAIConfig.
func WithEmbedder(embedder ai.Embedder) Option {
	return func(o *engineOptions) error {
		o.embedder = embedder
		return nil
	}
}

// WithAIConfig enables the semantic pipeline through an OpenAI-compatible
// provider. A config without an API key leaves the semantic pipeline
// unavailable; Calculate then reports core.ErrConfig for it.
func WithAIConfig(cfg *ai.Config) Option {
	return func(o *engineOptions) error {
		o.aiConfig = cfg
		return nil
	}
}

// WithFormatter replaces the English explanation formatter.
func WithFormatter(f explain.Formatter) Option {
	return func(o *engineOptions) error {
		if f == nil {
			f = explain.English{}
		}
		o.formatter = f
		return nil
	}
}

// WithMonitor sets a monitor notified at each stage of a calculation.
func WithMonitor(m scoring.Monitor) Option {
	return func(o *engineOptions) error {
		o.monitor = scoring.MonitorOrNoop(m)
		return nil
	}
}

// WithPoolSize sets the number of embedding workers.
func WithPoolSize(size int) Option {
	return func(o *engineOptions) error {
		o.poolSize = size
		return nil
	}
}

// WithEmbeddingTimeout bounds the embedding calls of one semantic calculation.
// Default is scoring.DefaultEmbeddingTimeout.
func WithEmbeddingTimeout(d time.Duration) Option {
	return func(o *engineOptions) error {
		if d < 0 {
			return fmt.Errorf("%w: embedding timeout must not be negative", core.ErrConfig)
		}
		o.timeout = d
		return nil
	}
}

// NewEngine creates an engine. The lexical and entity-topic pipelines are
// always available; the semantic pipeline needs WithEmbedder or a WithAIConfig
// carrying an API key.
func NewEngine(opts ...Option) (*Engine, error) {
	o := &engineOptions{
		logger:    slog.Default(),
		formatter: explain.English{},
		monitor:   scoring.NoopMonitor{},
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	e := &Engine{
		strategies: map[core.Pipeline]scoring.Strategy{
			core.PipelineLexical:     scoring.NewLexical(),
			core.PipelineEntityTopic: scoring.NewEntityTopic(),
		},
		formatter: o.formatter,
		monitor:   o.monitor,
		logger:    o.logger.With("component", "relevance-engine"),
	}

	embedder := o.embedder
	if embedder == nil {
		if o.aiConfig == nil {
			e.semanticErr = fmt.Errorf("%w: %w", core.ErrConfig, core.ErrMissingCredential)
		} else {
			provider, err := openai.NewProvider(o.aiConfig)
			switch {
			case errors.Is(err, core.ErrMissingCredential):
				e.semanticErr = err
			case err != nil:
				return nil, err
			default:
				e.provider = provider
				embedder = provider.Embedder()
			}
		}
	}

	if embedder != nil {
		scorerOpts := []scoring.Option{scoring.WithLogger(o.logger), scoring.WithTimeout(o.timeout)}
		if o.poolSize > 0 {
			scorerOpts = append(scorerOpts, scoring.WithPoolSize(o.poolSize))
		}
		scorer, err := scoring.NewSemanticScorer(embedder, scorerOpts...)
		if err != nil {
			e.closeProvider()
			return nil, err
		}
		semantic, err := scoring.NewSemanticEnhanced(scorer, scoring.WithLogger(o.logger), scoring.WithMonitor(o.monitor))
		if err != nil {
			scorer.Release()
			e.closeProvider()
			return nil, err
		}
		e.scorer = scorer
		e.strategies[core.PipelineSemantic] = semantic
	} else {
		e.logger.Info("semantic pipeline disabled", "reason", e.semanticErr)
	}

	return e, nil
}

// Pipelines lists the pipelines this engine can run.
func (e *Engine) Pipelines() []core.Pipeline {
	out := make([]core.Pipeline, 0, len(core.Pipelines))
	for _, p := range core.Pipelines {
		if _, ok := e.strategies[p]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Calculate scores secondary against primary with the given pipeline.
//
// Blank texts and unknown pipelines fail with core.ErrInvalidInput before any
// scoring. Requesting the semantic pipeline without an embedder fails with
// core.ErrConfig. Embedding service failures never surface here; they are
// replaced by the lexical estimate. A core.ErrDimensionMismatch from the
// provider is returned.
//
// On error the returned Assessment is the uniform failed outcome: not
// relevant, score 0, and an explanation naming the error.
func (e *Engine) Calculate(ctx context.Context, pipeline core.Pipeline, primary, secondary string) (*core.Assessment, error) {
	if err := core.ValidateTexts(primary, secondary); err != nil {
		e.logger.Debug("rejected input", "pipeline", pipeline, "err", err)
		return core.FailedAssessment(err), err
	}

	strategy, err := e.strategy(pipeline)
	if err != nil {
		e.logger.Warn("pipeline unavailable", "pipeline", pipeline, "err", err)
		return core.FailedAssessment(err), err
	}

	pair := core.PairID(primary, secondary)
	logger := e.logger.With("pipeline", pipeline, "pair", pair)
	e.monitor.Start(pipeline, pair)

	breakdown, err := strategy.Score(ctx, primary, secondary)
	if err != nil {
		logger.Error("scoring failed", "err", err)
		e.monitor.Failed(pair, err)
		return core.FailedAssessment(err), err
	}

	assessment := breakdown.Assessment(e.formatter.Explain(breakdown))
	if err := core.ValidateResult(&assessment.Result); err != nil {
		logger.Error("scoring produced an invalid result", "err", err)
		e.monitor.Failed(pair, err)
		return core.FailedAssessment(err), err
	}
	e.monitor.Finish(pair, breakdown)

	logger.Debug("relevance calculated",
		"score", breakdown.Score,
		"relevant", assessment.Result.IsRelevant,
		"fallback", breakdown.SemanticFallback)
	return assessment, nil
}

func (e *Engine) strategy(pipeline core.Pipeline) (scoring.Strategy, error) {
	if s, ok := e.strategies[pipeline]; ok {
		return s, nil
	}
	if pipeline == core.PipelineSemantic {
		return nil, e.semanticErr
	}
	return nil, fmt.Errorf("%w: %w: %q", core.ErrInvalidInput, core.ErrUnknownPipeline, pipeline)
}

// Close releases the embedding worker pool and the provider.
func (e *Engine) Close() error {
	if e.scorer != nil {
		e.scorer.Release()
	}
	return e.closeProvider()
}

func (e *Engine) closeProvider() error {
	if e.provider == nil {
		return nil
	}
	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
		return err
	}
	return nil
}
