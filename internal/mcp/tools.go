package mcp

import "github.com/mark3labs/mcp-go/mcp"

// askDocsTool defines the ask_docs MCP tool.
var askDocsTool = mcp.NewTool("ask_docs",
	mcp.WithDescription("Ask the documentation chatbot a question. Returns an answer with cited sources."),
	mcp.WithString("question",
		mcp.Required(),
		mcp.Description("Natural language question about the indexed documentation"),
	),
)

// searchDocsTool defines the search_docs MCP tool.
var searchDocsTool = mcp.NewTool("search_docs",
	mcp.WithDescription("Search the documentation knowledge base semantically. Returns matching chunks with similarity scores."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language search query"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 4)"),
	),
)

// systemInfoTool defines the system_info MCP tool.
var systemInfoTool = mcp.NewTool("system_info",
	mcp.WithDescription("Get the chatbot's configuration and knowledge base status."),
)
