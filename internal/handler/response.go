// Package handler implements the REST endpoints of the parish ledger.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/jmwangi/parishledger/internal/service"
	"github.com/jmwangi/parishledger/internal/storage"
)

func init() {
	// Money fields go out as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: false, Error: message})
}

// respondServiceError maps the dues error taxonomy onto HTTP statuses:
// invalid year 400, unresolvable member/head 404, corrupt stored record
// 500. None of these are retried and no partial data accompanies them.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidYear):
		respondError(w, http.StatusBadRequest, service.ErrInvalidYear.Error())
	case errors.Is(err, storage.ErrNotFound):
		respondError(w, http.StatusNotFound, "member not found")
	case errors.Is(err, storage.ErrDataIntegrity):
		slog.Error("Data integrity failure", "error", err)
		respondError(w, http.StatusInternalServerError, "stored payment record is corrupt")
	default:
		slog.Error("Request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
