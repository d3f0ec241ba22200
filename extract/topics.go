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

package extract

import (
	"math"
	"sort"
)

// MaxTopics caps the number of topic terms kept per document.
const MaxTopics = 10

type weightedTerm struct {
	term   string
	weight float64
}

// Topics ranks the distinct tokens of each document by TF-IDF over the
// supplied corpus and returns up to n terms per document. Term frequency is
// count divided by document length; IDF is smoothed as ln((1+N)/(1+df))+1,
// so a term shared by every document still carries weight 1.
// Equal weights keep first-occurrence order. A non-positive n means MaxTopics.
func Topics(docs [][]string, n int) [][]string {
	if n <= 0 {
		n = MaxTopics
	}

	df := make(map[string]int)
	counted := make([][]termCount, len(docs))
	for i, doc := range docs {
		counted[i] = countTerms(doc)
		for _, c := range counted[i] {
			df[c.term]++
		}
	}

	total := float64(len(docs))
	topics := make([][]string, len(docs))
	for i, doc := range docs {
		weighted := make([]weightedTerm, 0, len(counted[i]))
		for _, c := range counted[i] {
			tf := float64(c.count) / float64(len(doc))
			idf := math.Log((1+total)/(1+float64(df[c.term]))) + 1.0
			weighted = append(weighted, weightedTerm{term: c.term, weight: tf * idf})
		}
		sort.SliceStable(weighted, func(a, b int) bool {
			return weighted[a].weight > weighted[b].weight
		})
		if len(weighted) > n {
			weighted = weighted[:n]
		}
		terms := make([]string, len(weighted))
		for j, w := range weighted {
			terms[j] = w.term
		}
		topics[i] = terms
	}
	return topics
}
