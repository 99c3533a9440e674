// File path: internal/api/server.go
package api

import (
	"encoding/json"
	"expvar"
	"fmt"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hadithlens/hadithlens/internal/commentary"
	"github.com/hadithlens/hadithlens/internal/common"
	"github.com/hadithlens/hadithlens/internal/data/orchestrator"
	"github.com/hadithlens/hadithlens/internal/search"
)

const maxBodyBytes = 1 << 20

type Server struct {
	router     chi.Router
	corpus     *orchestrator.Orchestrator
	search     *search.Service
	commentary *commentary.Service
}

func NewServer(corpus *orchestrator.Orchestrator, searchSvc *search.Service, commentarySvc *commentary.Service) (*Server, error) {
	if corpus == nil {
		return nil, fmt.Errorf("corpus orchestrator required")
	}
	if searchSvc == nil {
		return nil, fmt.Errorf("search service required")
	}
	if commentarySvc == nil {
		return nil, fmt.Errorf("commentary service required")
	}
	srv := &Server{
		router:     chi.NewRouter(),
		corpus:     corpus,
		search:     searchSvc,
		commentary: commentarySvc,
	}
	srv.routes()
	common.Logger().Info("api: server ready")
	return srv, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	common.Logger().Info("api: configuring routes")
	s.router.Use(requestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(requestLogger)

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	s.router.Get("/readyz", s.handleReady)

	s.router.Post("/search-hadith", s.handleSearch)
	s.router.Post("/gpt-commentary", s.handleCommentary)
	s.router.Post("/narrator-bio", s.handleNarratorBio)

	s.router.Get("/v1/collections", s.handleCollections)
	s.router.Post("/v1/corpus/reload", s.handleReload)
	s.router.Get("/v1/logs", s.handleLogs)
	s.router.Handle("/debug/vars", expvar.Handler())
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
