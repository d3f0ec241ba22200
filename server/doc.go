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

// Package server exposes a relevance engine over HTTP and as an MCP tool.
//
// HTTP routes:
//
//	POST /api/relevance/lexical
//	POST /api/relevance/entity-topic
//	POST /api/relevance/semantic
//	GET  /healthz
//
// Each POST takes {"primaryText": "...", "secondaryText": "..."} and answers
// with a core.Assessment, or {"error": kind, "message": text} with a 4xx/5xx
// status. Every response carries an X-Request-Id header.
//
// The MCP server offers one tool, calculate_relevance, with the same inputs
// plus an optional pipeline name.
package server
