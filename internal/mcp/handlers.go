package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"docchat/internal/vectordb"
)

// handleAskDocs runs one conversational turn against the bot.
func (s *Server) handleAskDocs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: question"), nil
	}

	result := s.bot.Ask(ctx, question)

	var b strings.Builder
	b.WriteString(result.Answer)
	if len(result.Sources) > 0 {
		b.WriteString("\n\nSources:\n")
		for _, src := range result.Sources {
			fmt.Fprintf(&b, "- %s (%s)\n", src.Title, src.Source)
		}
	}
	if result.Err != "" {
		fmt.Fprintf(&b, "\nNote: %s", result.Err)
	}

	return mcp.NewToolResultText(b.String()), nil
}

// handleSearchDocs performs semantic search over the knowledge base.
func (s *Server) handleSearchDocs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", 0)

	results, err := s.bot.SearchDocuments(ctx, query, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	if len(results) == 0 {
		return mcp.NewToolResultText("No results found. The knowledge base may not be built yet. Run `docchat setup` to build it."), nil
	}

	return mcp.NewToolResultText(formatSearchResults(results)), nil
}

// handleSystemInfo reports the bot's configuration and index status.
func (s *Server) handleSystemInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(s.bot.SystemInfo(), "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding system info: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func formatSearchResults(results []vectordb.SearchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d results:\n\n", len(results))
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s (similarity %.2f)\n", i+1, r.Document.Metadata.Title, r.Similarity)
		fmt.Fprintf(&b, "   Source: %s\n", r.Document.Metadata.Source)
		fmt.Fprintf(&b, "   %s\n\n", r.Document.Content)
	}
	return strings.TrimRight(b.String(), "\n")
}
