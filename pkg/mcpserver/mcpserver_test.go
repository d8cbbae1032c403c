package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callTilth(t *testing.T, s *Server, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "tilth",
			Arguments: args,
		},
	}
	result, err := s.handleTilth(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return text.Text
}

func TestHandleTilthOutlinesAFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n\nfunc Greet() {}\n"), 0o644))

	s := NewServer(nil, "")
	result := callTilth(t, s, map[string]any{"query": "main.go", "scope": dir})

	assert.Contains(t, resultText(t, result), "fn Greet")
}

func TestHandleTilthRequiresQuery(t *testing.T) {
	s := NewServer(nil, "")
	req := mcp.CallToolRequest{Params: mcp.CallToolParams{Name: "tilth", Arguments: map[string]any{}}}
	_, err := s.handleTilth(context.Background(), req)
	assert.Error(t, err)
}

func TestTilthToolDeclaresRequiredQuery(t *testing.T) {
	tool := tilthTool()
	assert.Equal(t, "tilth", tool.Name)
	assert.Contains(t, tool.InputSchema.Required, "query")
}
