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

const orgSuffixes = `Inc|Corp|Corporation|LLC|Ltd|Co|Company|Group|Bank|University|Institute|Foundation|Agency|Department|Association`

var (
	acronymPattern = regexp.MustCompile(`\b[A-Z]{2,6}\b`)
	orgPattern     = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\s+(?:` + orgSuffixes + `)\b`)
	placePattern   = regexp.MustCompile(`\b(?:in|near|across|throughout)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`)
)

// calendarWords are capitalized words that never name a person or place.
var calendarWords = map[string]struct{}{
	"january": {}, "february": {}, "march": {}, "april": {}, "may": {}, "june": {},
	"july": {}, "august": {}, "september": {}, "october": {}, "november": {}, "december": {},
	"monday": {}, "tuesday": {}, "wednesday": {}, "thursday": {}, "friday": {}, "saturday": {}, "sunday": {},
}

// CategorizedEntities groups the entities of one text by kind.
type CategorizedEntities struct {
	People        []string
	Organizations []string
	Places        []string
	Dates         []string
	Statistics    []string
	Money         []string
}

// All flattens the categories in declaration order without duplicates.
func (c *CategorizedEntities) All() []string {
	return Unique(c.People, c.Organizations, c.Places, c.Dates, c.Statistics, c.Money)
}

// Categorize splits the entities of text into people, organizations and
// places using surface heuristics:
//   - organizations: acronyms and capitalized phrases ending in a corporate suffix
//   - places: capitalized phrases following "in", "near", "across" or "throughout"
//   - people: the remaining proper-noun phrases
//
// A phrase lands in at most one of the three categories. Phrases made of
// month or weekday names are never people or places.
func Categorize(text string) *CategorizedEntities {
	orgs := Unique(orgPattern.FindAllString(text, -1), acronymPattern.FindAllString(text, -1))
	claimed := keySet(orgs)

	var places []string
	for _, m := range placePattern.FindAllStringSubmatch(text, -1) {
		place := m[1]
		if hasCalendarWord(place) {
			continue
		}
		if _, ok := claimed[strings.ToLower(place)]; ok {
			continue
		}
		places = append(places, place)
	}
	places = Unique(places)
	for k := range keySet(places) {
		claimed[k] = struct{}{}
	}

	var people []string
	for _, phrase := range ProperNouns(text) {
		if hasCalendarWord(phrase) {
			continue
		}
		if _, ok := claimed[strings.ToLower(phrase)]; ok {
			continue
		}
		people = append(people, phrase)
	}

	return &CategorizedEntities{
		People:        Unique(people),
		Organizations: orgs,
		Places:        places,
		Dates:         Unique(Dates(text)),
		Statistics:    Unique(Statistics(text)),
		Money:         Unique(Money(text)),
	}
}

func hasCalendarWord(phrase string) bool {
	for _, w := range strings.Fields(phrase) {
		if _, ok := calendarWords[strings.ToLower(w)]; ok {
			return true
		}
	}
	return false
}

func keySet(items []string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, s := range items {
		m[strings.ToLower(s)] = struct{}{}
	}
	return m
}
