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

import "sort"

// MaxKeywords caps the size of a keyword set.
const MaxKeywords = 15

type termCount struct {
	term  string
	count int
}

// countTerms returns one entry per distinct token in first-seen order.
func countTerms(tokens []string) []termCount {
	index := make(map[string]int, len(tokens))
	counts := make([]termCount, 0, len(tokens))
	for _, tok := range tokens {
		if i, ok := index[tok]; ok {
			counts[i].count++
			continue
		}
		index[tok] = len(counts)
		counts = append(counts, termCount{term: tok, count: 1})
	}
	return counts
}

// Keywords returns up to MaxKeywords tokens ranked by descending frequency.
// Tokens with equal counts keep the order of their first occurrence.
func Keywords(tokens []string) []string {
	counts := countTerms(tokens)
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].count > counts[j].count
	})
	if len(counts) > MaxKeywords {
		counts = counts[:MaxKeywords]
	}
	keywords := make([]string, len(counts))
	for i, c := range counts {
		keywords[i] = c.term
	}
	return keywords
}

// ExtractKeywords tokenizes text and returns its keyword set.
func ExtractKeywords(text string) []string {
	return Keywords(Tokenize(text))
}
