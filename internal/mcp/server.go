package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bull/qubz-assistant/internal/chat"
	"github.com/bull/qubz-assistant/internal/storage"
)

// Server wraps the MCP server with dependencies.
type Server struct {
	server *mcp.Server
	chat   *chat.Service
	store  *storage.Store
}

// Config holds server dependencies.
type Config struct {
	Chat    *chat.Service
	Store   *storage.Store
	Version string
}

// NewServer creates a configured MCP server with tools registered.
func NewServer(cfg *Config) *Server {
	version := cfg.Version
	if version == "" {
		version = "v0.1.0"
	}
	impl := &mcp.Implementation{
		Name:    "qubz-assistant",
		Version: version,
	}

	server := mcp.NewServer(impl, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ask_assistant",
		Description: "Ask the 21Qubz/21south assistant a question. Answers are grounded in the reference documents and list their sources.",
	}, makeAskHandler(cfg.Chat))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_documents",
		Description: "Find the reference documents the assistant would use for a question, without calling a language model.",
	}, makeSearchHandler(cfg.Chat))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List all loaded reference documents with a short preview.",
	}, makeListHandler(cfg.Store))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "fetch_document",
		Description: "Retrieve the full text of a reference document by identifier.",
	}, makeFetchHandler(cfg.Store))

	return &Server{
		server: server,
		chat:   cfg.Chat,
		store:  cfg.Store,
	}
}

// Run starts the server with stdio transport (blocks until client disconnects).
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// MCPServer returns the underlying MCP server instance.
func (s *Server) MCPServer() *mcp.Server {
	return s.server
}
