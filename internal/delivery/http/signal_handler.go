package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"sentinel-backend/internal/domain"
)

// SignalHandler serves the latest scan results and, when a database is
// configured, the persisted signal history.
type SignalHandler struct {
	results domain.ResultRepository
	history domain.SignalHistory
}

func NewSignalHandler(results domain.ResultRepository, history domain.SignalHistory) *SignalHandler {
	return &SignalHandler{
		results: results,
		history: history,
	}
}

// HandleGetResults returns the decisions from the most recent scan cycle.
func (h *SignalHandler) HandleGetResults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.results.GetResults())
}

// HandleGetSignals returns persisted authorized signals, newest first.
func (h *SignalHandler) HandleGetSignals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.history == nil {
		http.Error(w, "Signal history not configured", http.StatusNotImplemented)
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	signals, err := h.history.Recent(r.Context(), limit)
	if err != nil {
		http.Error(w, "Failed to load signals", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(signals)
}
