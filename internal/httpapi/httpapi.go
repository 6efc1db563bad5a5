// Package httpapi exposes the scoring pipeline over HTTP. Wire shapes
// here are the serving contract; authentication happens upstream and
// arrives as the per-request semantic capability flag.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"plagcheck/internal/domain"
)

// Server holds the handlers for the check endpoints.
type Server struct {
	checker domain.Checker
	// allowSemantic is the server-side gate; a request's capability
	// flag only takes effect when this is true.
	allowSemantic  bool
	requestTimeout time.Duration
	logger         *slog.Logger
}

func NewServer(checker domain.Checker, allowSemantic bool, requestTimeout time.Duration, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if requestTimeout <= 0 {
		requestTimeout = 60 * time.Second
	}
	return &Server{
		checker:        checker,
		allowSemantic:  allowSemantic,
		requestTimeout: requestTimeout,
		logger:         logger,
	}
}

// Router builds the HTTP route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/check", s.CheckHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/batch", s.BatchHandler).Methods(http.MethodPost)
	r.HandleFunc("/health", s.HealthHandler).Methods(http.MethodGet)
	return r
}

type checkRequest struct {
	Name     string `json:"name"`
	Text     string `json:"text"`
	Semantic bool   `json:"semantic"`
}

type batchRequest struct {
	Documents []struct {
		ID   string `json:"id,omitempty"`
		Name string `json:"name"`
		Text string `json:"text"`
	} `json:"documents"`
	Semantic bool `json:"semantic"`
}

// CheckHandler runs a single-document check and returns its report.
func (s *Server) CheckHandler(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	doc := domain.Document{Name: req.Name, Content: req.Text}
	rep, err := s.checker.CheckDocument(ctx, doc, req.Semantic && s.allowSemantic)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// BatchHandler runs a multi-document check: per-document reports plus
// the all-pairs comparison.
func (s *Server) BatchHandler(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	docs := make([]domain.Document, 0, len(req.Documents))
	for _, d := range req.Documents {
		docs = append(docs, domain.Document{ID: d.ID, Name: d.Name, Content: d.Text})
	}
	res, err := s.checker.CheckBatch(ctx, docs, req.Semantic && s.allowSemantic)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HealthHandler reports liveness.
func (s *Server) HealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyDocument),
		errors.Is(err, domain.ErrNoDocuments),
		errors.Is(err, domain.ErrSemanticNotPermitted):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		s.logger.Error("check failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
