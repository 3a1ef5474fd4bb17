package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming WebSocket message format.
type wsRequest struct {
	Type           string `json:"type"` // "question"
	ConversationID string `json:"conversation_id"`
	Question       string `json:"question"`
	ForceWebSearch bool   `json:"force_web_search"`
}

// wsResponse is the outgoing WebSocket message format.
type wsResponse struct {
	Type           string              `json:"type"` // "answer" or "error"
	ConversationID string              `json:"conversation_id"`
	Answer         string              `json:"answer,omitempty"`
	Strategy       string              `json:"strategy,omitempty"`
	WebResults     []webResultResponse `json:"web_results,omitempty"`
	Error          string              `json:"error,omitempty"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

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
			s.sendWSError(conn, "", "invalid message format")
			continue
		}

		if req.Type != "question" {
			s.sendWSError(conn, req.ConversationID, "unknown message type: "+req.Type)
			continue
		}
		if req.ConversationID == "" {
			s.sendWSError(conn, "", "conversation_id is required")
			continue
		}
		if req.Question == "" {
			s.sendWSError(conn, req.ConversationID, "question is required")
			continue
		}

		resp, status := s.ask(r.Context(), req.ConversationID, req.Question, req.ForceWebSearch)
		switch status {
		case http.StatusNotFound:
			s.sendWSError(conn, req.ConversationID, "Conversa não encontrada")
		case http.StatusOK:
			s.sendWSResponse(conn, wsResponse{
				Type:           "answer",
				ConversationID: req.ConversationID,
				Answer:         resp.Answer,
				Strategy:       resp.Strategy,
				WebResults:     resp.WebResults,
			})
		default:
			s.sendWSError(conn, req.ConversationID, "Erro ao processar pergunta")
		}
	}
}

func (s *Server) sendWSResponse(conn *websocket.Conn, resp wsResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("server: websocket write: %v", err)
	}
}

func (s *Server) sendWSError(conn *websocket.Conn, conversationID, message string) {
	resp := wsResponse{
		Type:           "error",
		ConversationID: conversationID,
		Error:          message,
	}
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("server: websocket write error: %v", err)
	}
}
