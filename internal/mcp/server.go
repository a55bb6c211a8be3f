package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"docchat/internal/chat"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the documentation chatbot as
// tools.
type Server struct {
	bot *chat.Bot
	mcp *server.MCPServer
}

// NewServer creates a new MCP server over the given bot.
func NewServer(bot *chat.Bot) *Server {
	s := &Server{bot: bot}

	s.mcp = server.NewMCPServer(
		"docchat",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.mcp.AddTool(askDocsTool, s.handleAskDocs)
	s.mcp.AddTool(searchDocsTool, s.handleSearchDocs)
	s.mcp.AddTool(systemInfoTool, s.handleSystemInfo)
}

// Serve starts the MCP server on stdio. Stdout carries MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
