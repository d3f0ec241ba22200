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

package core

import (
	"fmt"
	"math"
	"strings"
)

// ValidateTexts checks the two inputs of a relevance calculation.
//
// Validation rules:
//   - primary must contain at least one non-whitespace character
//   - secondary must contain at least one non-whitespace character
func ValidateTexts(primary, secondary string) error {
	if strings.TrimSpace(primary) == "" {
		return fmt.Errorf("%w: primary %w", ErrInvalidInput, ErrEmptyText)
	}
	if strings.TrimSpace(secondary) == "" {
		return fmt.Errorf("%w: secondary %w", ErrInvalidInput, ErrEmptyText)
	}
	return nil
}

// ValidateResult checks the invariants of a RelevanceResult: score and every
// component finite and within [0,1]. Failures wrap ErrInvalidResult.
func ValidateResult(r *RelevanceResult) error {
	if r == nil {
		return fmt.Errorf("%w: result is nil", ErrInvalidResult)
	}
	if !inUnitRange(r.Score) {
		return fmt.Errorf("%w: score %f out of range", ErrInvalidResult, r.Score)
	}
	for name, v := range r.Components {
		if !inUnitRange(v) {
			return fmt.Errorf("%w: component %s=%f out of range", ErrInvalidResult, name, v)
		}
	}
	return nil
}

// inUnitRange is false for NaN, which fails every comparison.
func inUnitRange(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}
