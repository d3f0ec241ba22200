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

	"github.com/poiesic/relevance/core"
)

// Lexical scores keyword and pattern-entity overlap.
type Lexical struct{}

var _ Strategy = (*Lexical)(nil)

// NewLexical creates the lexical strategy.
func NewLexical() *Lexical {
	return &Lexical{}
}

// Pipeline returns core.PipelineLexical.
func (l *Lexical) Pipeline() core.Pipeline { return core.PipelineLexical }

// Threshold returns LexicalThreshold.
func (l *Lexical) Threshold() float64 { return LexicalThreshold }

// Score computes 0.6*keywordOverlap + 0.4*entityOverlap.
func (l *Lexical) Score(_ context.Context, primary, secondary string) (*core.Breakdown, error) {
	f := extractLexical(primary, secondary)
	return &core.Breakdown{
		Pipeline:  core.PipelineLexical,
		Score:     clamp01(LexicalKeywordWeight*f.keywordOverlap + LexicalEntityWeight*f.entityOverlap),
		Threshold: LexicalThreshold,
		Components: []core.Component{
			{Name: core.ComponentKeywordOverlap, Value: f.keywordOverlap},
			{Name: core.ComponentEntityOverlap, Value: f.entityOverlap},
		},
		SharedEntities:    f.sharedEntities(),
		SharedTerms:       f.sharedKeywords(),
		PrimaryEntities:   f.primaryEntities,
		SecondaryEntities: f.secondaryEntities,
	}, nil
}
