// Package mcpserver exposes Run over stdio as a single MCP tool, replacing
// the teacher's nine-tool catalog/validator surface with the one operation
// this engine performs: resolve a query against a scope and return an
// outline, a directory map, or a symbol report.
package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	tilth "github.com/tilth-dev/tilth"
	"github.com/tilth-dev/tilth/pkg/cache"
	"github.com/tilth-dev/tilth/pkg/mcplog"
)

const serverVersion = "0.1.0-dev"

// Server wraps a stdio MCP server exposing the "tilth" tool.
type Server struct {
	mcpServer *server.MCPServer
	cache     *cache.OutlineCache
	logger    *mcplog.Logger // may be nil if logging is disabled
}

// NewServer creates a server backed by outlineCache (nil disables outline
// caching) and a JSONL call log at logPath (empty disables logging).
func NewServer(outlineCache *cache.OutlineCache, logPath string) *Server {
	logger, err := mcplog.NewLogger(logPath)
	if err != nil {
		logger = nil
	}
	s := &Server{cache: outlineCache, logger: logger}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if s.logger != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}

	s.mcpServer = server.NewMCPServer("tilth", serverVersion, opts...)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: tilthTool(), Handler: s.handleTilth},
	)

	return s
}

// ServeStdio starts the server on stdin/stdout, blocking until the client
// disconnects or an unrecoverable transport error occurs.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// Close shuts down the call logger, if one is active. Should be deferred
// after NewServer.
func (s *Server) Close() error {
	if s.logger != nil {
		return s.logger.Close()
	}
	return nil
}

func tilthTool() mcp.Tool {
	return mcp.NewTool("tilth",
		mcp.WithDescription("Outline a file, map a directory, or search for a symbol, depending on what the query resolves to."),
		mcp.WithString("query", mcp.Required(), mcp.Description("A file path, directory path, or symbol name")),
		mcp.WithString("scope", mcp.Description("Directory the query is resolved against; defaults to the server's working directory")),
		mcp.WithNumber("limit", mcp.Description("Maximum outline lines to return")),
		mcp.WithNumber("depth", mcp.Description("Maximum directory-map depth to return")),
	)
}

func (s *Server) handleTilth(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	query, _ := args["query"].(string)
	if query == "" {
		return nil, fmt.Errorf("tilth: query argument is required")
	}
	scope, _ := args["scope"].(string)

	var limit, depth *int
	if v, ok := args["limit"].(float64); ok {
		n := int(v)
		limit = &n
	}
	if v, ok := args["depth"].(float64); ok {
		n := int(v)
		depth = &n
	}

	out, err := tilth.Run(query, scope, limit, depth, s.cache)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(out), nil
}
