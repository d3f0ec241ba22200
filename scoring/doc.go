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

// Package scoring fuses extracted features into a relevance score.
//
// Each pipeline is a Strategy that turns two texts into a core.Breakdown:
//
//   - Lexical: 0.6 keyword overlap + 0.4 entity overlap, relevant above 0.30
//   - EntityTopic: 0.6 categorized entity overlap + 0.4 topic similarity, relevant above 0.30
//   - SemanticEnhanced: 0.3 keyword overlap + 0.2 entity overlap + 0.5 embedding
//     similarity, relevant above 0.35
//
// Weights and thresholds are constants. The only blocking work happens in
// SemanticScorer, which embeds both texts on a worker pool. When the embedding
// service fails, SemanticEnhanced substitutes 0.6 keyword + 0.4 entity overlap
// for the semantic component and carries on.
package scoring
