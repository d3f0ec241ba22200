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

package explain

import (
	"fmt"
	"strings"

	"github.com/poiesic/relevance/core"
)

// Formatter turns a breakdown into a human-readable explanation.
type Formatter interface {
	Explain(b *core.Breakdown) string
}

// List limits for shared terms.
const (
	MaxListedEntities = 5
	MaxListedTerms    = 7
)

// HighRelevanceScore is the score above which relevance is called high.
const HighRelevanceScore = 0.7

// Semantic similarity bands.
const (
	highlySimilar     = 0.8
	moderatelySimilar = 0.5
	somewhatSimilar   = 0.3
)

// percentOrder is the fixed order of the numeric summary.
var percentOrder = []struct {
	component string
	label     string
}{
	{core.ComponentEntityOverlap, "Entity overlap"},
	{core.ComponentKeywordOverlap, "Keyword similarity"},
	{core.ComponentTopicSimilarity, "Topic similarity"},
	{core.ComponentSemanticSimilarity, "Semantic similarity"},
}

// English writes explanations in plain English.
type English struct{}

var _ Formatter = English{}

// Explain builds the explanation in five steps: the relevance band, the
// semantic qualifier (semantic pipeline only), shared entities, shared
// keywords or topics, and the component percentages.
func (English) Explain(b *core.Breakdown) string {
	if b == nil {
		return ""
	}

	var sentences []string
	sentences = append(sentences, lead(b))

	if b.Pipeline == core.PipelineSemantic {
		if sem, ok := b.Component(core.ComponentSemanticSimilarity); ok {
			sentences = append(sentences, semanticQualifier(sem, b.SemanticFallback))
		}
	}

	for _, g := range b.SharedEntities {
		if len(g.Terms) == 0 {
			continue
		}
		sentences = append(sentences, fmt.Sprintf("Shared %s: %s.", g.Label, list(g.Terms, MaxListedEntities)))
	}

	if len(b.SharedTerms.Terms) > 0 {
		sentences = append(sentences, fmt.Sprintf("Common %s: %s.", b.SharedTerms.Label, list(b.SharedTerms.Terms, MaxListedTerms)))
	}

	for _, p := range percentOrder {
		if v, ok := b.Component(p.component); ok {
			sentences = append(sentences, fmt.Sprintf("%s: %.1f%%.", p.label, v*100))
		}
	}

	return strings.Join(sentences, " ")
}

func lead(b *core.Breakdown) string {
	switch {
	case b.Score > HighRelevanceScore:
		return "High relevance: this information is very likely useful to the second person."
	case b.Score > b.Threshold:
		return "Moderate relevance: this information is likely useful to the second person."
	default:
		return "Low relevance: this information is unlikely to matter to the second person."
	}
}

func semanticQualifier(sem float64, fallback bool) string {
	var s string
	switch {
	case sem > highlySimilar:
		s = "The two descriptions are highly similar in meaning"
	case sem > moderatelySimilar:
		s = "The two descriptions show moderate semantic similarity"
	case sem > somewhatSimilar:
		s = "The two descriptions show some relationship in meaning"
	default:
		s = "The two descriptions have a limited connection in meaning"
	}
	if fallback {
		s += " (estimated from word overlap because the embedding service was unavailable)"
	}
	return s + "."
}

// list joins up to max items, appending "..." when some were left out.
func list(items []string, max int) string {
	if len(items) <= max {
		return strings.Join(items, ", ")
	}
	return strings.Join(items[:max], ", ") + "..."
}
