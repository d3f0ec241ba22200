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
	"github.com/poiesic/relevance/extract"
	"github.com/poiesic/relevance/similarity"
)

// EntityTopic scores categorized entity overlap and TF-IDF topic similarity.
type EntityTopic struct {
	topics int
}

var _ Strategy = (*EntityTopic)(nil)

// NewEntityTopic creates the entity/topic strategy.
func NewEntityTopic() *EntityTopic {
	return &EntityTopic{topics: extract.MaxTopics}
}

// Pipeline returns core.PipelineEntityTopic.
func (e *EntityTopic) Pipeline() core.Pipeline { return core.PipelineEntityTopic }

// Threshold returns EntityTopicThreshold.
func (e *EntityTopic) Threshold() float64 { return EntityTopicThreshold }

// Score computes 0.6*entityOverlap + 0.4*topicSimilarity. Entities are
// compared across all categories; topics are the top TF-IDF terms of each
// text over the two-document corpus.
func (e *EntityTopic) Score(_ context.Context, primary, secondary string) (*core.Breakdown, error) {
	pc, sc := extract.Categorize(primary), extract.Categorize(secondary)
	pEntities, sEntities := pc.All(), sc.All()
	entityOverlap := similarity.Jaccard(pEntities, sEntities)

	topics := extract.Topics([][]string{extract.Tokenize(primary), extract.Tokenize(secondary)}, e.topics)
	topicSimilarity := similarity.TopicSimilarity(topics[0], topics[1])

	return &core.Breakdown{
		Pipeline:  core.PipelineEntityTopic,
		Score:     clamp01(EntityTopicEntityWeight*entityOverlap + EntityTopicTopicWeight*topicSimilarity),
		Threshold: EntityTopicThreshold,
		Components: []core.Component{
			{Name: core.ComponentEntityOverlap, Value: entityOverlap},
			{Name: core.ComponentTopicSimilarity, Value: topicSimilarity},
		},
		SharedEntities: []core.TermGroup{
			{Label: LabelPeople, Terms: similarity.Shared(pc.People, sc.People)},
			{Label: LabelOrganizations, Terms: similarity.Shared(pc.Organizations, sc.Organizations)},
			{Label: LabelPlaces, Terms: similarity.Shared(pc.Places, sc.Places)},
		},
		SharedTerms: core.TermGroup{
			Label: LabelTopics,
			Terms: similarity.Shared(topics[0], topics[1]),
		},
		PrimaryEntities:   pEntities,
		SecondaryEntities: sEntities,
	}, nil
}
