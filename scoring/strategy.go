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
	"math"

	"github.com/poiesic/relevance/core"
	"github.com/poiesic/relevance/extract"
	"github.com/poiesic/relevance/similarity"
)

// Fusion weights and thresholds.
const (
	LexicalKeywordWeight = 0.6
	LexicalEntityWeight  = 0.4
	LexicalThreshold     = 0.30

	EntityTopicEntityWeight = 0.6
	EntityTopicTopicWeight  = 0.4
	EntityTopicThreshold    = 0.30

	SemanticKeywordWeight    = 0.3
	SemanticEntityWeight     = 0.2
	SemanticSimilarityWeight = 0.5
	SemanticThreshold        = 0.35

	// FallbackKeywordWeight and FallbackEntityWeight estimate semantic
	// similarity when the embedding service is unavailable.
	FallbackKeywordWeight = 0.6
	FallbackEntityWeight  = 0.4
)

// Term group labels carried in a core.Breakdown.
const (
	LabelEntities      = "entities"
	LabelPeople        = "people"
	LabelOrganizations = "organizations"
	LabelPlaces        = "places"
	LabelKeywords      = "keywords"
	LabelTopics        = "topics"
)

// Strategy is one complete scoring policy. Implementations hold no per-call
// state and are safe for concurrent use.
type Strategy interface {
	Pipeline() core.Pipeline
	Threshold() float64
	Score(ctx context.Context, primary, secondary string) (*core.Breakdown, error)
}

// lexicalFeatures are the keyword and pattern-entity features of a text
// pair, shared by the lexical and semantic strategies.
type lexicalFeatures struct {
	primaryKeywords   []string
	secondaryKeywords []string
	primaryEntities   []string
	secondaryEntities []string
	keywordOverlap    float64
	entityOverlap     float64
}

func extractLexical(primary, secondary string) *lexicalFeatures {
	f := &lexicalFeatures{
		primaryKeywords:   extract.ExtractKeywords(primary),
		secondaryKeywords: extract.ExtractKeywords(secondary),
		primaryEntities:   extract.Entities(primary),
		secondaryEntities: extract.Entities(secondary),
	}
	f.keywordOverlap = similarity.Jaccard(f.primaryKeywords, f.secondaryKeywords)
	f.entityOverlap = similarity.Jaccard(f.primaryEntities, f.secondaryEntities)
	return f
}

// fallbackSimilarity is the semantic estimate used when embeddings fail.
func (f *lexicalFeatures) fallbackSimilarity() float64 {
	return FallbackKeywordWeight*f.keywordOverlap + FallbackEntityWeight*f.entityOverlap
}

func (f *lexicalFeatures) sharedEntities() []core.TermGroup {
	return []core.TermGroup{{
		Label: LabelEntities,
		Terms: similarity.Shared(f.primaryEntities, f.secondaryEntities),
	}}
}

func (f *lexicalFeatures) sharedKeywords() core.TermGroup {
	return core.TermGroup{
		Label: LabelKeywords,
		Terms: similarity.Shared(f.primaryKeywords, f.secondaryKeywords),
	}
}

// clamp01 maps NaN to 0.
func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
