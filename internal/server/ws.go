package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"docchat/internal/chat"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming WebSocket message format.
type wsRequest struct {
	Message string `json:"message"`
}

// wsResponse is the outgoing WebSocket message format.
type wsResponse struct {
	Type      string        `json:"type"` // "response" or "error"
	SessionID string        `json:"session_id"`
	Answer    string        `json:"response,omitempty"`
	Sources   []chat.Source `json:"sources,omitempty"`
	Err       string        `json:"error,omitempty"`
}

// handleWebSocket runs a chat session over a single connection. Each
// connection gets its own session ID for the transcript.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	sessionID := uuid.NewString()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("server: websocket read: %v", err)
			}
			return
		}

		var req wsRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			s.sendWS(conn, wsResponse{Type: "error", SessionID: sessionID, Err: "invalid message format"})
			continue
		}
		if req.Message == "" {
			s.sendWS(conn, wsResponse{Type: "error", SessionID: sessionID, Err: "message is required"})
			continue
		}

		result := s.bot.Ask(r.Context(), req.Message)
		s.logTurn(r, sessionID, req.Message, result.Answer, result.Err)

		s.sendWS(conn, wsResponse{
			Type:      "response",
			SessionID: sessionID,
			Answer:    result.Answer,
			Sources:   result.Sources,
			Err:       result.Err,
		})
	}
}

func (s *Server) sendWS(conn *websocket.Conn, resp wsResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("server: websocket write: %v", err)
	}
}
