package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const placeholderPage = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><meta http-equiv="refresh" content="10"><title>Personalized Dashboard</title></head>
<body><h2 style="text-align:center;">Personalized Dashboard</h2><p style="text-align:center;">Waiting for the first refresh...</p></body></html>`

// Server serves the dashboard page and the raw bundle over HTTP.
type Server struct {
	store   *Store
	refresh time.Duration
	http    *http.Server
}

// NewServer creates a server listening on addr. Rendered pages reload
// themselves every refresh, which should match the cycle interval.
func NewServer(store *Store, addr string, refresh time.Duration) *Server {
	s := &Server{store: store, refresh: refresh}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Router returns the HTTP handler with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/", s.handleIndex)
	r.Get("/api/bundle", s.handleBundle)
	r.Get("/healthz", s.handleHealth)
	return r
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	log.Printf("[INFO] dashboard listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	bundle := s.store.Latest()
	if bundle == nil {
		_, _ = w.Write([]byte(placeholderPage))
		return
	}

	var buf bytes.Buffer
	if err := RenderPage(&buf, bundle, s.refresh); err != nil {
		log.Printf("[ERROR] render dashboard: %v", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleBundle(w http.ResponseWriter, r *http.Request) {
	bundle := s.store.Latest()
	if bundle == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no refresh has completed yet"})
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[WARN] encode response: %v", err)
	}
}
