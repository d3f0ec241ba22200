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

package server

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/poiesic/relevance/core"
)

// ToolName is the name of the MCP relevance tool.
const ToolName = "calculate_relevance"

// RelevanceArgs are the MCP tool arguments.
type RelevanceArgs struct {
	PrimaryText   string `json:"primaryText" jsonschema:"what the first person knows"`
	SecondaryText string `json:"secondaryText" jsonschema:"what the second person knows or works on"`
	Pipeline      string `json:"pipeline,omitempty" jsonschema:"lexical, entity-topic or semantic"`
}

// NewMCPServer returns an MCP server offering the calculate_relevance tool.
func NewMCPServer(engine Calculator, opts ...Option) (*mcp.Server, error) {
	if engine == nil {
		return nil, ErrCalculatorRequired
	}
	o := applyOptions(opts)
	logger := o.logger.With("component", "mcp")

	server := mcp.NewServer(&mcp.Implementation{Name: "relevance", Version: o.version}, nil)
	mcp.AddTool(server, &mcp.Tool{
		Name: ToolName,
		Description: "Estimate whether information known by one person is relevant to a second person. " +
			"Returns a score in [0,1], a relevance decision, component scores and an explanation.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args RelevanceArgs) (*mcp.CallToolResult, any, error) {
		pipeline := o.defaultPipeline
		if args.Pipeline != "" {
			p, err := core.ParsePipeline(args.Pipeline)
			if err != nil {
				return toolError(err), nil, nil
			}
			pipeline = p
		}

		assessment, err := engine.Calculate(ctx, pipeline, args.PrimaryText, args.SecondaryText)
		if err != nil {
			logger.Warn("tool call failed", "pipeline", pipeline, "err", err)
			return toolError(err), nil, nil
		}
		logger.Debug("tool call succeeded", "pipeline", pipeline, "score", assessment.Result.Score)
		return nil, assessment, nil
	})
	return server, nil
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}

// ServeStdio runs server over stdin/stdout until ctx is cancelled or the
// client disconnects.
func ServeStdio(ctx context.Context, server *mcp.Server, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("serving MCP over stdio")
	return server.Run(ctx, &mcp.StdioTransport{})
}
