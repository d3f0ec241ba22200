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
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MinTokenLength is the shortest token kept by Tokenize, in runes.
const MinTokenLength = 3

var punctuation = regexp.MustCompile(`[^\p{L}\p{N}_\s]+`)

// stopWords is the closed set of function words removed before ranking.
var stopWords = defaultStopWords()

func defaultStopWords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for",
		"to", "of", "in", "on", "at", "by", "with", "as", "is", "are",
		"was", "were", "be", "been", "being", "it", "this", "that", "these", "those",
		"from", "up", "down", "over", "under", "again", "further", "than", "so", "such",
		"into", "about", "between", "through", "during", "before", "after", "above", "below", "out",
		"off", "own", "same", "too", "very", "can", "will", "just", "don", "should",
		"now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// IsStopWord reports whether the lowercase word is in the stop-word list.
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}

// Tokenize normalizes text into an ordered slice of lowercase word tokens.
// Punctuation is stripped, stop words and tokens shorter than MinTokenLength
// are dropped. An empty text yields no tokens.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	cleaned := punctuation.ReplaceAllString(strings.ToLower(norm.NFKC.String(text)), "")
	fields := strings.Fields(cleaned)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) < MinTokenLength {
			continue
		}
		if IsStopWord(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
