// Package api serves the read-only status surface of a running bot.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iamdhruvsharma3/arbitrage/engine"
)

type Server struct {
	engine *engine.Engine
	logger *logrus.Logger
	addr   string

	// Metrics is mounted at /metrics when set.
	Metrics http.Handler

	srv *http.Server
}

func NewServer(e *engine.Engine, logger *logrus.Logger, addr string) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Server{engine: e, logger: logger, addr: addr}
}

// Start serves until Shutdown or a listener error. It blocks.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/status", s.handleStatus)
	if s.Metrics != nil {
		mux.Handle("/metrics", s.Metrics)
	}

	s.srv = &http.Server{Addr: s.addr, Handler: mux}
	s.logger.WithField("addr", s.addr).Info("status server listening")

	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeJSON(w, http.StatusOK, s.engine.Status())
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.WithError(err).Error("encode status response")
	}
}
