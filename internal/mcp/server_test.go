package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"docchat/internal/chat"
	"docchat/internal/config"
	"docchat/internal/ingest"
	"docchat/internal/llm"
	"docchat/internal/vectordb"
)

// stubEmbedder returns a fixed unit vector for every text.
type stubEmbedder struct{}

func (stubEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

func (stubEmbedder) Name() string { return "stub" }

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Provider = config.ProviderDemo
	cfg.Sources = nil
	cfg.ExtraSourcesFile = ""
	cfg.SourcesDir = t.TempDir()
	cfg.VectorStorePath = t.TempDir()

	index, err := vectordb.New(stubEmbedder{}, cfg.VectorStorePath)
	if err != nil {
		t.Fatalf("vectordb.New: %v", err)
	}

	bot := chat.New(cfg, index, ingest.New(cfg, nil), llm.NewRegistry(cfg))
	return NewServer(bot)
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"ask_docs", askDocsTool, "ask_docs"},
		{"search_docs", searchDocsTool, "search_docs"},
		{"system_info", systemInfoTool, "system_info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestHandleAskDocs(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	t.Run("answers offline", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"question": "What is LangChain?"}

		result, err := srv.handleAskDocs(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		text := resultText(t, result)
		if !strings.Contains(text, "framework") {
			t.Errorf("answer = %q", text)
		}
		if !strings.Contains(text, "Sources:") {
			t.Errorf("sources missing from answer: %q", text)
		}
	})

	t.Run("missing question", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}

		result, err := srv.handleAskDocs(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing question")
		}
	})
}

func TestHandleSearchDocs(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	t.Run("empty index", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"query": "chains"}

		result, err := srv.handleSearchDocs(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("empty index should not be a tool error: %v", result.Content)
		}
		if !strings.Contains(resultText(t, result), "No results") {
			t.Errorf("text = %q", resultText(t, result))
		}
	})

	t.Run("missing query", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}

		result, err := srv.handleSearchDocs(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing query")
		}
	})
}

func TestHandleSystemInfo(t *testing.T) {
	srv := newTestServer(t)

	result, err := srv.handleSystemInfo(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %v", result.Content)
	}
	text := resultText(t, result)
	if !strings.Contains(text, "chain_initialized") || !strings.Contains(text, "vector_store") {
		t.Errorf("system info = %q", text)
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content has type %T", result.Content[0])
	}
	return text.Text
}
