package server

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/relevance"
	"github.com/poiesic/relevance/ai/mock"
)

func connectMCP(t *testing.T, opts ...Option) *mcp.ClientSession {
	t.Helper()
	engine, err := relevance.NewEngine(relevance.WithEmbedder(mock.NewMockEmbedder()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = engine.Close() })

	server, err := NewMCPServer(engine, opts...)
	require.NoError(t, err)

	ctx := context.Background()
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "relevance-test"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func TestMCP_ListTools(t *testing.T) {
	session := connectMCP(t)

	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, res.Tools, 1)
	assert.Equal(t, ToolName, res.Tools[0].Name)
}

func TestMCP_CalculateRelevance(t *testing.T) {
	session := connectMCP(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: ToolName,
		Arguments: map[string]any{
			"primaryText":   "Sarah Johnson approved the AWS budget of $5,000 on March 3rd, 2025.",
			"secondaryText": "The AWS budget review happens after Sarah Johnson signs off.",
			"pipeline":      "llm",
		},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	structured, ok := result.StructuredContent.(map[string]any)
	require.True(t, ok, "unexpected structured content %T", result.StructuredContent)
	r, ok := structured["result"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, r["isRelevant"])
	components, ok := r["components"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, components, "semanticSimilarity")
}

func TestMCP_Errors(t *testing.T) {
	session := connectMCP(t)

	tests := []struct {
		name string
		args map[string]any
	}{
		{name: "empty text", args: map[string]any{"primaryText": "", "secondaryText": "x"}},
		{name: "unknown pipeline", args: map[string]any{"primaryText": "a", "secondaryText": "b", "pipeline": "bm25"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: ToolName, Arguments: tt.args})
			require.NoError(t, err)
			assert.True(t, result.IsError)
			require.NotEmpty(t, result.Content)
			text, ok := result.Content[0].(*mcp.TextContent)
			require.True(t, ok)
			assert.Contains(t, text.Text, "invalid input")
		})
	}
}

func TestNewMCPServer_RequiresEngine(t *testing.T) {
	_, err := NewMCPServer(nil)
	assert.ErrorIs(t, err, ErrCalculatorRequired)
}
