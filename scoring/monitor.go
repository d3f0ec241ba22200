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

package scoring

import "github.com/poiesic/relevance/core"

// Monitor provides hooks to observe a relevance calculation. Every Start is
// followed by exactly one Finish or Failed for the same pair.
type Monitor interface {
	Start(pipeline core.Pipeline, pair core.ID)
	SemanticSimilarity(pair core.ID, similarity float64)
	SemanticFallback(pair core.ID, fallback float64, err error)
	Finish(pair core.ID, breakdown *core.Breakdown)
	Failed(pair core.ID, err error)
}

// NoopMonitor ignores every event.
type NoopMonitor struct{}

var _ Monitor = NoopMonitor{}

func (NoopMonitor) Start(_ core.Pipeline, _ core.ID)               {}
func (NoopMonitor) SemanticSimilarity(_ core.ID, _ float64)        {}
func (NoopMonitor) SemanticFallback(_ core.ID, _ float64, _ error) {}
func (NoopMonitor) Finish(_ core.ID, _ *core.Breakdown)            {}
func (NoopMonitor) Failed(_ core.ID, _ error)                      {}

// MonitorOrNoop returns m, or a NoopMonitor when m is nil.
func MonitorOrNoop(m Monitor) Monitor {
	if m == nil {
		return NoopMonitor{}
	}
	return m
}
