// Package api serves the chat assistant over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"

	"payroll-assistant/internal/assistant/query"
	"payroll-assistant/internal/common/auth"
	"payroll-assistant/internal/common/config"
	"payroll-assistant/internal/common/logger"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ChatHandler answers one message for an authenticated agent.
type ChatHandler interface {
	HandleMessage(ctx context.Context, agentID int64, text string) string
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Chat         ChatHandler
	History      query.ChatHistoryReader
	JWT          *auth.JWTManager
	DB           Pinger
	Logger       logger.Logger
	HistoryLimit int
}

type Server struct {
	chat         ChatHandler
	history      query.ChatHistoryReader
	db           Pinger
	logger       logger.Logger
	historyLimit int
	handler      http.Handler
	httpServer   *http.Server
}

func New(cfg config.ServerConfig, deps Deps) *Server {
	s := &Server{
		chat:         deps.Chat,
		history:      deps.History,
		db:           deps.DB,
		logger:       deps.Logger.WithFields(map[string]interface{}{"component": "api"}),
		historyLimit: deps.HistoryLimit,
	}
	if s.historyLimit <= 0 {
		s.historyLimit = 50
	}

	mux := http.NewServeMux()
	mux.Handle("POST /api/chat/message", authMiddleware(s.logger, deps.JWT, http.HandlerFunc(s.handleMessage)))
	mux.Handle("GET /api/chat/history", authMiddleware(s.logger, deps.JWT, http.HandlerFunc(s.handleHistory)))
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ready", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	s.handler = requestIDMiddleware(loggingMiddleware(s.logger, mux))
	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.handler,
		ReadTimeout:  config.GetDuration(cfg.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.WriteTimeout),
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start blocks until the server stops. A graceful Shutdown returns nil.
func (s *Server) Start() error {
	s.logger.Info("http server listening", map[string]interface{}{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
