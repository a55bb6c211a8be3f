package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"docchat/internal/history"
)

type setupRequest struct {
	ForceRebuild bool `json:"force_rebuild"`
}

func (s *Server) handleSetup(w http.ResponseWriter, r *http.Request) {
	var req setupRequest
	if r.Body != nil {
		// An empty body means a default setup.
		json.NewDecoder(r.Body).Decode(&req)
	}

	if err := s.bot.Setup(r.Context(), req.ForceRebuild); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
		"info":   s.bot.SystemInfo(),
	})
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	result := s.bot.Ask(r.Context(), req.Message)
	s.logTurn(r, req.SessionID, req.Message, result.Answer, result.Err)

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "q is required", http.StatusBadRequest)
		return
	}

	k := 0
	if v := r.URL.Query().Get("k"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "k must be an integer", http.StatusBadRequest)
			return
		}
		k = n
	}

	results, err := s.bot.SearchDocuments(r.Context(), query, k)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"query":   query,
		"results": results,
	})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.bot.SystemInfo())
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"history": s.bot.History(),
	})
}

// handleTranscript returns recent turns from the persisted transcript,
// which survives restarts, unlike the in-memory conversation history.
func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	if s.transcript == nil {
		writeJSON(w, http.StatusOK, map[string]any{"turns": []history.Turn{}})
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "limit must be an integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	turns, err := s.transcript.Recent(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if turns == nil {
		turns = []history.Turn{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"turns": turns})
}

func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"configured": s.cfg.Provider,
		"providers":  s.bot.ProviderStatus(),
	})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.bot.ClearMemory()
	writeJSON(w, http.StatusOK, map[string]string{"status": "memory cleared"})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.bot.Reset()
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// logTurn records a completed exchange in the transcript store, if one is
// configured. Transcript failures never fail the request.
func (s *Server) logTurn(r *http.Request, sessionID, question, answer, errText string) {
	if s.transcript == nil {
		return
	}
	if _, err := s.transcript.Append(r.Context(), sessionID, question, answer, errText); err != nil {
		log.Printf("server: recording transcript: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
