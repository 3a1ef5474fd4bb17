package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/docchat/internal/conversation"
	"github.com/ziadkadry99/docchat/internal/extractor"
)

type ingestResponse struct {
	ConversationID string             `json:"conversation_id"`
	Message        string             `json:"message"`
	Pages          int                `json:"pages"`
	Analysis       extractor.Analysis `json:"analysis"`
}

type chatRequest struct {
	Question       string `json:"question" validate:"required"`
	ForceWebSearch bool   `json:"force_web_search"`
}

type webResultResponse struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

type chatResponse struct {
	Answer     string              `json:"answer"`
	Strategy   string              `json:"strategy"`
	WebResults []webResultResponse `json:"web_results,omitempty"`
}

type historyResponse struct {
	History []conversation.Turn `json:"history"`
}

func (s *Server) registerRoutes(r chi.Router) {
	r.Post("/api/documents", s.handleIngest)
	r.Post("/api/conversations/{conversationID}/chat", s.handleChat)
	r.Get("/api/conversations/{conversationID}/history", s.handleHistory)
	r.Delete("/api/conversations/{conversationID}/history", s.handleClearHistory)
	r.Get("/ws/chat", s.handleWebSocket)
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.IngestTimeout)
	defer cancel()

	data, err := readUpload(w, r)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Arquivo excede 10MB"})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Corpo da requisição inválido"})
		return
	}

	result, err := s.pipeline.Ingest(ctx, data)
	switch {
	case err == nil:
	case errors.Is(err, extractor.ErrTooLarge):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Arquivo excede 10MB"})
		return
	case errors.Is(err, extractor.ErrUnparseable):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Erro ao processar documento: " + err.Error()})
		return
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Erro ao processar documento"})
		return
	}

	writeJSON(w, http.StatusOK, ingestResponse{
		ConversationID: result.ConversationID,
		Message:        "Documento processado com sucesso",
		Pages:          result.Pages,
		Analysis:       result.Analysis,
	})
}

// readUpload accepts either a multipart "file" field or the raw request
// body, capped at the maximum file size. The cap is enforced on the
// wire, before any parsing.
func readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, extractor.MaxFileSize+1)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return io.ReadAll(file)
	}

	return io.ReadAll(r.Body)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "question is required"})
		return
	}

	resp, status := s.ask(r.Context(), conversationID, req.Question, req.ForceWebSearch)
	if status == http.StatusNotFound {
		writeJSON(w, status, map[string]string{"error": "Conversa não encontrada"})
		return
	}
	if status != http.StatusOK {
		writeJSON(w, status, map[string]string{"error": "Erro ao processar pergunta"})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ask runs one question cycle under the answer deadline and snapshots
// the response fields while the conversation lock is still held.
func (s *Server) ask(ctx context.Context, conversationID, question string, forceWeb bool) (chatResponse, int) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.AnswerTimeout)
	defer cancel()

	start := time.Now()

	var resp chatResponse
	var stateErr string
	err := s.store.Do(conversationID, func(state *conversation.State) error {
		state.PendingQuestion = question
		state.ForceWebSearch = forceWeb
		s.orchestrator.Process(ctx, state)

		stateErr = state.Error
		resp.Answer = state.Answer
		resp.Strategy = string(state.Strategy)
		for _, wr := range state.WebResults {
			resp.WebResults = append(resp.WebResults, webResultResponse{Text: wr.Text, URL: wr.URL})
		}
		return nil
	})

	if elapsed := time.Since(start); elapsed > s.cfg.AnswerTimeout {
		log.Printf("server: answer took %.2fs, over the %s budget", elapsed.Seconds(), s.cfg.AnswerTimeout)
	}

	if errors.Is(err, conversation.ErrNotFound) {
		return chatResponse{}, http.StatusNotFound
	}
	if err != nil {
		return chatResponse{}, http.StatusInternalServerError
	}
	if stateErr != "" {
		// The question failed but the conversation stays usable.
		log.Printf("server: question failed for %s: %s", conversationID, stateErr)
		return chatResponse{Strategy: string(conversation.StrategyError)}, http.StatusInternalServerError
	}
	return resp, http.StatusOK
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	turns, err := s.store.History(conversationID)
	if errors.Is(err, conversation.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Conversa não encontrada"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if turns == nil {
		turns = []conversation.Turn{}
	}
	writeJSON(w, http.StatusOK, historyResponse{History: turns})
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	err := s.store.Do(conversationID, func(state *conversation.State) error {
		state.History = nil
		return nil
	})
	if errors.Is(err, conversation.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Conversa não encontrada"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
