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

package core

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// ID is a content-derived identifier.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// PairID identifies a (primary, secondary) text pair for log correlation.
// The separator keeps ("ab", "c") and ("a", "bc") apart.
func PairID(primary, secondary string) ID {
	return IDFromContent(primary + "\x00" + secondary)
}

// String renders the ID as fixed-width hex.
func (id ID) String() string {
	return fmt.Sprintf("%016x", uint64(id))
}

// Pipeline names one complete scoring policy.
type Pipeline string

const (
	// PipelineLexical scores keyword and pattern-entity overlap.
	PipelineLexical Pipeline = "lexical"
	// PipelineEntityTopic scores categorized entity overlap and TF-IDF topic similarity.
	PipelineEntityTopic Pipeline = "entity-topic"
	// PipelineSemantic blends lexical overlap with embedding similarity.
	PipelineSemantic Pipeline = "semantic"
)

// Pipelines lists every supported pipeline in a stable order.
var Pipelines = []Pipeline{PipelineLexical, PipelineEntityTopic, PipelineSemantic}

// ParsePipeline resolves a pipeline name. Matching is case-insensitive and
// accepts the aliases "nlp" (entity-topic) and "llm" (semantic).
func ParsePipeline(name string) (Pipeline, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lexical", "":
		return PipelineLexical, nil
	case "entity-topic", "entity", "nlp":
		return PipelineEntityTopic, nil
	case "semantic", "llm":
		return PipelineSemantic, nil
	}
	return "", fmt.Errorf("%w: %w: %q", ErrInvalidInput, ErrUnknownPipeline, name)
}

// Component score names.
const (
	ComponentKeywordOverlap     = "keywordOverlap"
	ComponentEntityOverlap      = "entityOverlap"
	ComponentTopicSimilarity    = "topicSimilarity"
	ComponentSemanticSimilarity = "semanticSimilarity"
)

// RelevanceResult is the uniform outcome of one relevance calculation.
// It is built once per call and must not be mutated afterwards.
type RelevanceResult struct {
	IsRelevant  bool               `json:"isRelevant"`
	Score       float64            `json:"score"`
	Explanation string             `json:"explanation"`
	Components  map[string]float64 `json:"components"`
}

// Component is one named sub-score.
type Component struct {
	Name  string
	Value float64
}

// TermGroup is a labelled list of terms shared by both texts, in the
// primary text's order and casing.
type TermGroup struct {
	Label string
	Terms []string
}

// Breakdown is the structured output of a scoring strategy, computed
// before any text is formatted from it.
type Breakdown struct {
	Pipeline  Pipeline
	Score     float64
	Threshold float64

	// Components in fusion order.
	Components []Component

	// SharedEntities holds one group per entity category the pipeline computes.
	SharedEntities []TermGroup

	// SharedTerms holds shared keywords or topics.
	SharedTerms TermGroup

	// SemanticFallback reports that semantic similarity was estimated from
	// lexical overlap because the embedding provider failed.
	SemanticFallback bool

	// Entities found in each text, as compared by the pipeline.
	PrimaryEntities   []string
	SecondaryEntities []string
}

// IsRelevant reports whether the score clears the pipeline threshold.
func (b *Breakdown) IsRelevant() bool {
	return b.Score > b.Threshold
}

// Component returns the named component value and whether it is present.
func (b *Breakdown) Component(name string) (float64, bool) {
	for _, c := range b.Components {
		if c.Name == name {
			return c.Value, true
		}
	}
	return 0, false
}

// Result converts the breakdown into a RelevanceResult with the given explanation.
func (b *Breakdown) Result(explanation string) RelevanceResult {
	components := make(map[string]float64, len(b.Components))
	for _, c := range b.Components {
		components[c.Name] = c.Value
	}
	return RelevanceResult{
		IsRelevant:  b.IsRelevant(),
		Score:       b.Score,
		Explanation: explanation,
		Components:  components,
	}
}

// Assessment is what the engine returns: the result plus the entities
// found in each text.
type Assessment struct {
	Result            RelevanceResult `json:"result"`
	PrimaryEntities   []string        `json:"primaryEntities"`
	SecondaryEntities []string        `json:"secondaryEntities"`
}

// Assessment builds the engine outcome from the breakdown.
func (b *Breakdown) Assessment(explanation string) *Assessment {
	return &Assessment{
		Result:            b.Result(explanation),
		PrimaryEntities:   nonNil(b.PrimaryEntities),
		SecondaryEntities: nonNil(b.SecondaryEntities),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// FailedResult is the "could not assess relevance" outcome.
func FailedResult(err error) RelevanceResult {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return RelevanceResult{
		IsRelevant:  false,
		Score:       0,
		Explanation: "Unable to assess relevance: " + msg,
		Components:  map[string]float64{},
	}
}

// FailedAssessment wraps FailedResult with empty entity lists.
func FailedAssessment(err error) *Assessment {
	return &Assessment{
		Result:            FailedResult(err),
		PrimaryEntities:   []string{},
		SecondaryEntities: []string{},
	}
}
