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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/relevance/ai"
	"github.com/poiesic/relevance/core"
	"github.com/poiesic/relevance/similarity"
)

// Embedding input budget: MaxEmbeddingTokens at CharsPerToken runes each.
const (
	MaxEmbeddingTokens = 8000
	CharsPerToken      = 4
	MaxEmbeddingRunes  = MaxEmbeddingTokens * CharsPerToken
)

// TruncateForEmbedding cuts text to MaxEmbeddingRunes runes.
func TruncateForEmbedding(text string) string {
	if utf8.RuneCountInString(text) <= MaxEmbeddingRunes {
		return text
	}
	n := 0
	for i := range text {
		if n == MaxEmbeddingRunes {
			return text[:i]
		}
		n++
	}
	return text
}

// SemanticScorer compares two texts by the cosine similarity of their embeddings.
type SemanticScorer struct {
	embedder ai.Embedder
	pool     *ants.Pool
	timeout  time.Duration
	logger   *slog.Logger
}

// NewSemanticScorer creates a scorer backed by embedder. The scorer owns a
// worker pool; call Release when done.
func NewSemanticScorer(embedder ai.Embedder, opts ...Option) (*SemanticScorer, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	pool, err := ants.NewPool(o.poolSize)
	if err != nil {
		return nil, err
	}

	return &SemanticScorer{
		embedder: embedder,
		pool:     pool,
		timeout:  o.timeout,
		logger:   o.logger.With("component", "semantic-scorer"),
	}, nil
}

// Similarity embeds both texts concurrently and returns their cosine
// similarity, clamped to [0,1].
//
// Any failure of the embedding calls, including timeout and cancellation, is
// returned wrapped in core.ErrExternalService. Vectors of different lengths
// yield core.ErrDimensionMismatch. No call is retried.
func (s *SemanticScorer) Similarity(ctx context.Context, primary, secondary string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	texts := [2]string{TruncateForEmbedding(primary), TruncateForEmbedding(secondary)}
	var (
		vectors [2][]float32
		errs    [2]error
		wg      sync.WaitGroup
	)
	for i := range texts {
		wg.Add(1)
		if err := s.pool.Submit(func() {
			defer wg.Done()
			vectors[i], errs[i] = s.embedder.EmbedText(ctx, texts[i])
		}); err != nil {
			wg.Done()
			wg.Wait()
			return 0, fmt.Errorf("submitting embedding task: %w", err)
		}
	}
	wg.Wait()

	if err := errors.Join(errs[0], errs[1]); err != nil {
		return 0, fmt.Errorf("%w: %w", core.ErrExternalService, err)
	}

	sim, err := similarity.Cosine(vectors[0], vectors[1])
	if err != nil {
		return 0, err
	}
	// NaN or Inf components in a vector poison the cosine.
	if math.IsNaN(sim) || math.IsInf(sim, 0) {
		return 0, fmt.Errorf("%w: %w", core.ErrExternalService, ErrNonFiniteEmbedding)
	}
	return clamp01(sim), nil
}

// Release stops the worker pool.
func (s *SemanticScorer) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}

// SemanticEnhanced blends lexical overlap with embedding similarity.
type SemanticEnhanced struct {
	scorer  *SemanticScorer
	monitor Monitor
	logger  *slog.Logger
}

var _ Strategy = (*SemanticEnhanced)(nil)

// NewSemanticEnhanced creates the semantic strategy around scorer.
// Only WithLogger and WithMonitor apply here.
func NewSemanticEnhanced(scorer *SemanticScorer, opts ...Option) (*SemanticEnhanced, error) {
	if scorer == nil {
		return nil, ErrScorerRequired
	}
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	return &SemanticEnhanced{
		scorer:  scorer,
		monitor: o.monitor,
		logger:  o.logger.With("component", "semantic-strategy"),
	}, nil
}

// Pipeline returns core.PipelineSemantic.
func (s *SemanticEnhanced) Pipeline() core.Pipeline { return core.PipelineSemantic }

// Threshold returns SemanticThreshold.
func (s *SemanticEnhanced) Threshold() float64 { return SemanticThreshold }

// Score computes 0.3*keywordOverlap + 0.2*entityOverlap + 0.5*semanticSimilarity.
// When the embedding service fails, semanticSimilarity is replaced by
// 0.6*keywordOverlap + 0.4*entityOverlap and the breakdown is marked as a
// fallback. A dimension mismatch is returned as an error.
func (s *SemanticEnhanced) Score(ctx context.Context, primary, secondary string) (*core.Breakdown, error) {
	f := extractLexical(primary, secondary)
	pair := core.PairID(primary, secondary)

	semantic, err := s.scorer.Similarity(ctx, primary, secondary)
	fallback := false
	switch {
	case err == nil:
		s.monitor.SemanticSimilarity(pair, semantic)
	case errors.Is(err, core.ErrExternalService):
		semantic = f.fallbackSimilarity()
		fallback = true
		s.logger.Warn("embedding failed, using lexical estimate", "pair", pair, "fallback", semantic, "err", err)
		s.monitor.SemanticFallback(pair, semantic, err)
	default:
		s.logger.Error("semantic similarity failed", "pair", pair, "err", err)
		return nil, err
	}

	score := SemanticKeywordWeight*f.keywordOverlap +
		SemanticEntityWeight*f.entityOverlap +
		SemanticSimilarityWeight*semantic

	return &core.Breakdown{
		Pipeline:  core.PipelineSemantic,
		Score:     clamp01(score),
		Threshold: SemanticThreshold,
		Components: []core.Component{
			{Name: core.ComponentKeywordOverlap, Value: f.keywordOverlap},
			{Name: core.ComponentEntityOverlap, Value: f.entityOverlap},
			{Name: core.ComponentSemanticSimilarity, Value: semantic},
		},
		SharedEntities:    f.sharedEntities(),
		SharedTerms:       f.sharedKeywords(),
		SemanticFallback:  fallback,
		PrimaryEntities:   f.primaryEntities,
		SecondaryEntities: f.secondaryEntities,
	}, nil
}
