// Package server exposes the lookup service over HTTP.
//
// One operation: GET /api/search?q=<query>&limit=<n> answering
// {"results": [...], "fromCache": true} on success, {"error": ...} with a
// client-error status for invalid queries, and {"error", "status"} with
// 502 when the registry fetch fails. /healthz reports liveness.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/RimshaSaif36/Sunbiz-Data-fetch/pkg/registry"
	"github.com/RimshaSaif36/Sunbiz-Data-fetch/pkg/search"
)

// Server answers lookup requests over HTTP.
type Server struct {
	svc    *search.Service
	logger *log.Logger
}

// New creates a Server. A nil logger falls back to the default logger.
func New(svc *search.Service, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{svc: svc, logger: logger}
}

// Router builds the HTTP routing table with request-ID and logging
// middleware applied to every route.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(s.logger))

	r.Get("/api/search", s.handleSearch)
	r.Get("/healthz", s.handleHealth)
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// errorResponse is the failure envelope for /api/search.
type errorResponse struct {
	Error   string `json:"error"`
	Status  int    `json:"status,omitempty"`
	Details string `json:"details,omitempty"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	limit := r.URL.Query().Get("limit")

	result, err := s.svc.Search(r.Context(), q, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeError maps the service error taxonomy onto response envelopes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var upstream *registry.UpstreamError
	switch {
	case errors.Is(err, search.ErrQueryTooShort):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.As(err, &upstream):
		writeJSON(w, http.StatusBadGateway, errorResponse{
			Error:  "registry fetch failed",
			Status: upstream.StatusCode,
		})
	case errors.Is(err, registry.ErrNetwork):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "registry unreachable"})
	default:
		s.logger.Error("search failed", "request_id", requestIDFrom(r.Context()), "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "internal error",
			Details: err.Error(),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
