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

package similarity

import (
	"math"
	"strings"
)

func lowerSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, s := range items {
		set[strings.ToLower(s)] = struct{}{}
	}
	return set
}

func intersectionSize(a, b map[string]struct{}) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}

// Jaccard returns |A∩B| / |A∪B| over the lowercased elements of a and b.
// It returns 0 if either input is empty.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	setA, setB := lowerSet(a), lowerSet(b)
	shared := intersectionSize(setA, setB)
	union := len(setA) + len(setB) - shared
	return float64(shared) / float64(union)
}

// TopicSimilarity returns |shared| / sqrt(|A|·|B|) over distinct lowercased
// terms. It weighs every term equally regardless of its TF-IDF score.
// It returns 0 if either input is empty.
func TopicSimilarity(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	setA, setB := lowerSet(a), lowerSet(b)
	shared := intersectionSize(setA, setB)
	return float64(shared) / math.Sqrt(float64(len(setA))*float64(len(setB)))
}

// Shared returns the elements of a that also appear in b, compared
// case-insensitively. Order and casing follow a; duplicates are dropped.
func Shared(a, b []string) []string {
	inB := lowerSet(b)
	seen := make(map[string]struct{}, len(a))
	out := make([]string, 0)
	for _, s := range a {
		key := strings.ToLower(s)
		if _, ok := inB[key]; !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
