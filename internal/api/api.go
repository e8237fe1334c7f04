// Package api implements the local HTTP API server backing the browser UI.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/essayflow/essayflow/internal/analyze"
)

// Config carries the server's analysis settings.
type Config struct {
	// DefaultCredential is used when a request supplies no api_key.
	DefaultCredential string
	Analyze           analyze.Options
}

// Server is the essayflow HTTP API server.
type Server struct {
	addr   string
	mux    *http.ServeMux
	server *http.Server

	cfg   Config
	cache *analyze.Cache
}

// New creates a new API server.
func New(addr string, cfg Config) *Server {
	s := &Server{
		addr:  addr,
		cfg:   cfg,
		cache: analyze.NewCache(cfg.Analyze),
	}
	s.mux = http.NewServeMux()
	s.registerRoutes()
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /api/highlight", s.handleHighlight)
	s.mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	s.mux.HandleFunc("POST /api/report", s.handleReport)
	s.mux.HandleFunc("GET /api/ws", s.handleWebSocket)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	slog.Info("essayflow API server listening", "addr", s.addr)
	return s.server.ListenAndServe()
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// credential resolves the per-request credential against the server default.
func (s *Server) credential(requestKey string) string {
	if requestKey != "" {
		return requestKey
	}
	return s.cfg.DefaultCredential
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		slog.Error("json encode failed", "error", err)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// readJSON decodes a JSON request body into v.
func readJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("empty request body")
	}
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	return dec.Decode(v)
}
