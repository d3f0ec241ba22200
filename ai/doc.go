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

// Package ai provides the embedding abstraction used by the semantic scoring
// strategy.
//
// The scoring code depends only on the Embedder interface. Two implementation
// sub-packages exist:
//
//   - ai/openai: production implementation for OpenAI-compatible APIs
//   - ai/mock: test doubles that need no network
//
// Public constructors in ai/openai return interface types. Test constructors in
// ai/mock return concrete types so tests can inject behavior and inspect call
// counts.
//
// # Usage Example
//
//	cfg := ai.NewConfig(ai.WithAPIKey(key))
//	provider, err := openai.NewProvider(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vec, err := provider.Embedder().EmbedText(ctx, "Hello world")
//
// Credentials are always injected through Config. Nothing in this package
// reads environment variables.
package ai
