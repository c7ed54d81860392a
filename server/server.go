// Package server exposes one ledger over a small JSON API.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/indiekitai/budget-cli/ledger"
	"github.com/indiekitai/budget-cli/logging"
	"github.com/indiekitai/budget-cli/models"
	"github.com/indiekitai/budget-cli/report"
)

// Server serialises every request against a single ledger
type Server struct {
	mu     sync.Mutex
	ledger *ledger.Ledger
	log    *logging.Logger
	mux    *http.ServeMux
}

type addRequest struct {
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
}

type addResponse struct {
	Entry   report.EntryDoc   `json:"entry"`
	Summary report.SummaryDoc `json:"summary"`
}

// New creates a server owning l
func New(l *ledger.Ledger, logger *logging.Logger) *Server {
	s := &Server{
		ledger: l,
		log:    logger.WithComponent("http"),
		mux:    http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /{$}", s.handleDashboard)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("GET /api/summary", s.handleSummary)
	s.mux.HandleFunc("GET /api/entries", s.handleEntries)
	s.mux.HandleFunc("POST /api/entries", s.handleAdd)
	s.mux.HandleFunc("DELETE /api/entries/{type}/{id}", s.handleDelete)
	s.mux.HandleFunc("GET /badge.svg", s.handleBadge)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)
	s.log.Info("request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", rec.status,
		"duration", time.Since(start),
	)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	summary := s.ledger.Summary()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, report.NewSummaryDoc(summary))
}

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snap := s.ledger.Snapshot()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, report.NewDocument(snap))
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	r.Body = http.MaxBytesReader(w, r.Body, 1<<16)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := models.ParseCategory(req.Type)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	value, err := models.ValidateInput(req.Description, req.Value.String())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	entry, err := s.ledger.Add(c, req.Description, value)
	if err == nil {
		s.ledger.Recompute()
		entry, _ = s.ledger.Entry(c, entry.ID)
	}
	summary := s.ledger.Summary()
	s.mu.Unlock()

	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, addResponse{
		Entry:   report.NewEntryDoc(entry),
		Summary: report.NewSummaryDoc(summary),
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	c, err := models.ParseCategory(r.PathValue("type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	s.mu.Lock()
	ok, err := s.ledger.Delete(c, id)
	if ok {
		s.ledger.Recompute()
	}
	s.mu.Unlock()

	switch {
	case errors.Is(err, models.ErrInvalidCategory):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	case !ok:
		writeError(w, http.StatusNotFound, "entry not found")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleBadge(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	summary := s.ledger.Summary()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write([]byte(report.BudgetBadge(summary)))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
