package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"docchat/internal/chat"
	"docchat/internal/config"
	"docchat/internal/history"
	"docchat/internal/ingest"
	"docchat/internal/llm"
	"docchat/internal/vectordb"
)

// stubEmbedder returns a fixed unit vector for every text.
type stubEmbedder struct{}

func (stubEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0, 0}
	}
	return out, nil
}

func (stubEmbedder) Name() string { return "stub" }

func newTestServer(t *testing.T) (*Server, *history.Store) {
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

	transcript, err := history.OpenMemory()
	if err != nil {
		t.Fatalf("history.OpenMemory: %v", err)
	}
	t.Cleanup(func() { transcript.Close() })

	bot := chat.New(cfg, index, ingest.New(cfg, nil), llm.NewRegistry(cfg))
	return New(cfg, bot, transcript), transcript
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestChatEndpoint(t *testing.T) {
	s, transcript := newTestServer(t)
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	body, _ := json.Marshal(map[string]string{"message": "Hello"})
	resp, err := http.Post(srv.URL+"/api/chat", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var result chat.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if result.Answer == "" {
		t.Error("empty answer")
	}
	if result.Err != "" {
		t.Errorf("offline answer carries error: %q", result.Err)
	}
	if len(result.Sources) != 1 || result.Sources[0].Source != "demo" {
		t.Errorf("sources = %+v", result.Sources)
	}

	n, err := transcript.Count(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("transcript has %d turns, want 1", n)
	}
}

func TestChatRequiresMessage(t *testing.T) {
	s, _ := newTestServer(t)
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/chat", "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestSearchEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	// Missing query.
	resp, err := http.Get(srv.URL + "/api/search")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing q: status = %d, want 400", resp.StatusCode)
	}

	// Absent index yields an empty result set, not a failure.
	resp, err = http.Get(srv.URL + "/api/search?q=chains&k=2")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var payload struct {
		Query   string                  `json:"query"`
		Results []vectordb.SearchResult `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatal(err)
	}
	if payload.Query != "chains" || len(payload.Results) != 0 {
		t.Errorf("payload = %+v", payload)
	}
}

func TestInfoEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/info")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var info map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		t.Fatal(err)
	}
	if info["chain_initialized"] != false {
		t.Errorf("chain_initialized = %v", info["chain_initialized"])
	}
	if info["embedding_model"] != "stub" {
		t.Errorf("embedding_model = %v", info["embedding_model"])
	}
}

func TestProvidersEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/providers")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var payload struct {
		Configured string           `json:"configured"`
		Providers  []llm.Descriptor `json:"providers"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatal(err)
	}
	if payload.Configured != "demo" {
		t.Errorf("configured = %q", payload.Configured)
	}
	if len(payload.Providers) != 3 {
		t.Errorf("providers = %+v, want 3 entries", payload.Providers)
	}
}

func TestTranscriptEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	// Empty before any chat.
	resp, err := http.Get(srv.URL + "/api/transcript")
	if err != nil {
		t.Fatal(err)
	}
	var payload struct {
		Turns []history.Turn `json:"turns"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if len(payload.Turns) != 0 {
		t.Errorf("fresh transcript has %d turns", len(payload.Turns))
	}

	body, _ := json.Marshal(map[string]string{"message": "Hello"})
	resp, err = http.Post(srv.URL+"/api/chat", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/api/transcript?limit=5")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	payload.Turns = nil
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatal(err)
	}
	if len(payload.Turns) != 1 {
		t.Fatalf("transcript has %d turns, want 1", len(payload.Turns))
	}
	if payload.Turns[0].Question != "Hello" || payload.Turns[0].Answer == "" {
		t.Errorf("turn = %+v", payload.Turns[0])
	}

	// A bad limit is rejected.
	resp, err = http.Get(srv.URL + "/api/transcript?limit=abc")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad limit: status = %d, want 400", resp.StatusCode)
	}
}

func TestClearAndResetEndpoints(t *testing.T) {
	s, _ := newTestServer(t)
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	for _, path := range []string{"/api/clear", "/api/reset"} {
		resp, err := http.Post(srv.URL+path, "application/json", nil)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s: status = %d", path, resp.StatusCode)
		}
	}
}

func TestWebSocketChat(t *testing.T) {
	s, transcript := newTestServer(t)
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	wsURL := strings.Replace(srv.URL, "http", "ws", 1) + "/ws/chat"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dialing websocket: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(map[string]string{"message": "Hello"}); err != nil {
		t.Fatal(err)
	}

	var resp wsResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Type != "response" || resp.Answer == "" {
		t.Errorf("response = %+v", resp)
	}
	if resp.SessionID == "" {
		t.Error("missing session id")
	}

	// Malformed payloads produce an error frame, not a closed connection.
	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatal(err)
	}
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Type != "error" {
		t.Errorf("malformed payload response = %+v", resp)
	}

	n, err := transcript.Count(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("transcript has %d turns, want 1", n)
	}
}
