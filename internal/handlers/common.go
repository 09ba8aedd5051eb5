package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/expirywatch/labelscan/internal/extraction"
	"github.com/expirywatch/labelscan/internal/models"
	"github.com/expirywatch/labelscan/internal/storage"
)

// Analyzer is the extraction surface the handlers need. Satisfied by
// *extraction.Service; stubbed in tests.
type Analyzer interface {
	Analyze(ctx context.Context, req extraction.Request) (models.AnalyzeResult, error)
}

type Handler struct {
	store    storage.Store
	analyzer Analyzer
}

func New(store storage.Store) *Handler {
	return &Handler{
		store:    store,
		analyzer: extraction.NewService(),
	}
}

// NewWithAnalyzer builds a Handler with a custom analyzer for testing.
func NewWithAnalyzer(store storage.Store, analyzer Analyzer) *Handler {
	return &Handler{
		store:    store,
		analyzer: analyzer,
	}
}

// errorResponse is the shape of every non-2xx JSON body.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, kind, message string, code int) {
	slog.Error("Request failed", "kind", kind, "message", message, "status", code)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(errorResponse{Error: kind, Message: message}); err != nil {
		slog.Error("Unable to encode error response", "err", err)
	}
}
