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
)

const monthNames = `January|February|March|April|May|June|July|August|September|October|November|December`

var (
	properNounPattern = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+\b`)
	datePattern       = regexp.MustCompile(`\b(?:` + monthNames + `)\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4}\b|\b\d{1,2}/\d{1,2}/(?:\d{4}|\d{2})\b`)
	statPattern       = regexp.MustCompile(`\b\d+(?:\.\d+)?(?:%|\s*percent\b)`)
	moneyPattern      = regexp.MustCompile(`\$\d+(?:,\d{3})*(?:\.\d{2})?|\b\d+(?:,\d{3})*(?:\.\d{2})?\s+dollars\b`)
)

// ProperNouns returns phrases of two or more consecutive capitalized words.
func ProperNouns(text string) []string {
	return properNounPattern.FindAllString(text, -1)
}

// Dates returns "Month D[th], YYYY" and numeric D/M/Y dates.
func Dates(text string) []string {
	return datePattern.FindAllString(text, -1)
}

// Statistics returns percentage mentions such as "12%" or "4.5 percent".
func Statistics(text string) []string {
	return statPattern.FindAllString(text, -1)
}

// Money returns currency amounts such as "$5,000.00" or "300 dollars".
func Money(text string) []string {
	return moneyPattern.FindAllString(text, -1)
}

// Entities scans the original (not lowercased) text for proper nouns, dates,
// statistics and money amounts. Results keep their original casing, are
// concatenated in that category order and are deduplicated case-insensitively,
// keeping the first occurrence.
func Entities(text string) []string {
	return Unique(ProperNouns(text), Dates(text), Statistics(text), Money(text))
}

// Unique concatenates the lists and drops case-insensitive duplicates.
// The result is never nil.
func Unique(lists ...[]string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, list := range lists {
		for _, s := range list {
			key := strings.ToLower(s)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
