package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	apperrors "payroll-assistant/internal/common/errors"
	"payroll-assistant/internal/common/validation"
	"payroll-assistant/internal/models"
)

const maxBodyBytes = 64 << 10

type MessageRequest struct {
	Message string `json:"message"`
}

type MessageResponse struct {
	Response string `json:"response"`
}

type HistoryResponse struct {
	History []models.ChatTurn `json:"history"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	var body map[string]interface{}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Message is required")
		return
	}
	if err := validation.ValidateChatMessage(validation.ChatRequestSchema, body); err != nil {
		s.logger.Debug("rejected chat message", map[string]interface{}{
			"request_id": RequestIDFromContext(r.Context()),
			"error":      err,
		})
		if errors.Is(err, apperrors.ErrMessageTooLong) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Message is too long (max %d characters)", validation.MaxMessageLength))
			return
		}
		writeError(w, http.StatusBadRequest, "Message is required")
		return
	}
	message, _ := body["message"].(string)

	reply := s.chat.HandleMessage(r.Context(), claims.AgentID, message)
	writeJSON(w, http.StatusOK, MessageResponse{Response: reply})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	turns, err := s.history.ListChatHistory(r.Context(), claims.AgentID, s.historyLimit)
	if err != nil {
		s.logger.Error("failed to load chat history", map[string]interface{}{
			"request_id": RequestIDFromContext(r.Context()),
			"agentId":    claims.AgentID,
			"error":      err,
		})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, HistoryResponse{History: turns})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.Ping(ctx); err != nil {
			s.logger.Warn("readiness check failed", map[string]interface{}{"error": err})
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
