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

import "errors"

// Error kinds. Callers classify failures with errors.Is against the
// top-level kinds (ErrInvalidInput, ErrConfig, ErrExternalService,
// ErrDimensionMismatch, ErrInvalidResult); the remaining values give the specific cause.
var (
	// ErrInvalidInput indicates a request that cannot be scored as given.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyText indicates a missing or blank primary or secondary text.
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrUnknownPipeline indicates a pipeline name that is not recognized.
	ErrUnknownPipeline = errors.New("unknown pipeline")

	// ErrConfig indicates the engine is not configured for the requested pipeline.
	ErrConfig = errors.New("configuration error")

	// ErrMissingCredential indicates the embedding provider credential is absent.
	ErrMissingCredential = errors.New("embedding provider credential is required")

	// ErrExternalService indicates the embedding provider call failed.
	// The semantic strategy recovers from it; it is never returned by Engine.Calculate.
	ErrExternalService = errors.New("external service error")

	// ErrInvalidResult indicates a computed result that breaks the score
	// invariants. It is an internal failure, not a caller error.
	ErrInvalidResult = errors.New("invalid relevance result")

	// ErrDimensionMismatch indicates two embedding vectors of different length.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
