// Package http exposes the ledger engine's collaborator surface as a thin
// JSON API. Handlers bind and validate requests, call the engine and return
// the refreshed state; no business rules live here.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"rupya/internal/cache"
	"rupya/internal/ledger"
)

type Server struct {
	engine    *ledger.Engine
	validate  *validator.Validate
	now       func() time.Time
	summaries cache.Versioned[summaryReport]
}

// NewServer builds the API server with sane timeouts.
func NewServer(addr string, engine *ledger.Engine) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        NewHandler(engine),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16, // 64KB
	}
}

// NewHandler wires all routes. Split from NewServer so tests can drive the
// mux directly through httptest.
func NewHandler(engine *ledger.Engine) http.Handler {
	s := &Server{
		engine:   engine,
		validate: validator.New(),
		now:      time.Now,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("GET /api/snapshot", s.handleSnapshot)
	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleAddTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("POST /api/accounts", s.handleCreateAccount)
	mux.HandleFunc("DELETE /api/accounts/{id}", s.handleRemoveAccount)
	mux.HandleFunc("PATCH /api/accounts/{id}/name", s.handleRenameAccount)

	mux.HandleFunc("POST /api/notifications/read", s.handleMarkNotificationsRead)
	mux.HandleFunc("DELETE /api/notifications", s.handleClearNotifications)

	mux.HandleFunc("GET /api/profile", s.handleGetProfile)
	mux.HandleFunc("PUT /api/profile/name", s.handleSetUserName)
	mux.HandleFunc("PUT /api/profile/theme", s.handleSetTheme)
	mux.HandleFunc("POST /api/profile/theme/toggle", s.handleToggleTheme)

	mux.HandleFunc("GET /api/reports/summary", s.handleSummaryReport)
	mux.HandleFunc("GET /api/reports/weekly", s.handleWeeklyReport)

	mux.HandleFunc("POST /api/reset", s.handleReset)

	return withTracing(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": s.now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
