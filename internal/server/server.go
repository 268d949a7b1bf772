// internal/server/server.go

// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"startup-analyst/internal/common/config"
	"startup-analyst/internal/common/logger"
	"startup-analyst/internal/models"
	"startup-analyst/internal/orchestrator"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	maxRequestBody = 32 << 20
	maxUploadSize  = 10 << 20
)

// Analyzer is the part of the orchestrator the HTTP surface needs.
type Analyzer interface {
	AnalyzeStartup(ctx context.Context, req *models.AnalysisRequest) (*models.StoredAnalysis, error)
	GetAnalysis(ctx context.Context, id string) (*models.StoredAnalysis, error)
	GetStatus(ctx context.Context) (orchestrator.Status, error)
}

// Uploader stores pitch documents for later analysis by storage key.
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
}

// ReadinessCheck reports whether a backing service is reachable.
type ReadinessCheck func(ctx context.Context) error

type Server struct {
	config   config.ServerConfig
	analyzer Analyzer
	uploader Uploader
	checks   map[string]ReadinessCheck
	logger   logger.Logger
	http     *http.Server
	now      func() time.Time
	newKey   func(name string) string
}

// New builds a Server. uploader may be nil, in which case document upload
// answers 503.
func New(cfg config.ServerConfig, analyzer Analyzer, uploader Uploader, log logger.Logger) *Server {
	return &Server{
		config:   cfg,
		analyzer: analyzer,
		uploader: uploader,
		checks:   make(map[string]ReadinessCheck),
		logger:   log.WithFields(map[string]interface{}{"component": "http"}),
		now:      time.Now,
		newKey:   documentKey,
	}
}

// AddReadinessCheck registers a dependency probed by /ready.
func (s *Server) AddReadinessCheck(name string, check ReadinessCheck) {
	s.checks[name] = check
}

// Router builds the route table.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.recovery, s.logging)

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.HandleFunc("/ready", s.ready).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/analyses", s.createAnalysis).Methods(http.MethodPost)
	api.HandleFunc("/analyses/{id}", s.getAnalysis).Methods(http.MethodGet)
	api.HandleFunc("/documents", s.uploadDocument).Methods(http.MethodPost)
	api.HandleFunc("/status", s.status).Methods(http.MethodGet)

	return r
}

// Start serves until Shutdown is called. It returns http.ErrServerClosed
// after a clean shutdown.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:         s.config.Address,
		Handler:      s.Router(),
		ReadTimeout:  config.GetDuration(s.config.ReadTimeout),
		WriteTimeout: config.GetDuration(s.config.WriteTimeout),
	}
	s.logger.Info("http server listening", map[string]interface{}{"address": s.config.Address})
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   s.now().Format(time.RFC3339),
	})
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	failed := make(map[string]string)
	for name, check := range s.checks {
		if err := check(r.Context()); err != nil {
			failed[name] = err.Error()
		}
	}
	if len(failed) > 0 {
		s.respondJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status": "not ready",
			"failed": failed,
		})
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
		"time":   s.now().Format(time.RFC3339),
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", map[string]interface{}{"error": err.Error()})
	}
}
