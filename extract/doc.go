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

// Package extract turns raw text into the features the scoring strategies compare.
//
// Every function here is pure and synchronous: the same input always yields
// the same ordered output, and nothing is cached between calls.
//
//   - Tokenize: normalized, lowercase, stop-word-filtered word tokens
//   - Keywords: the most frequent tokens, ties broken by first occurrence
//   - Entities: pattern-matched proper nouns, dates, statistics and money amounts
//   - Categorize: entities split into people, organizations and places
//   - Topics: the highest TF-IDF terms of each document in a small corpus
//
// Entity extraction is heuristic. There is no NER model behind it.
package extract
