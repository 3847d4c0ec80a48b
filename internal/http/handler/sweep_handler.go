package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/your-org/trade-journal-bot/internal/sweep"
)

// Sweeper runs one lifecycle sweep and returns its report.
type Sweeper interface {
	Run(ctx context.Context, opts sweep.Options) (sweep.Report, error)
}

// SweepHandler exposes on-demand sweeps over HTTP.
type SweepHandler struct {
	engine Sweeper
}

// NewSweepHandler creates a new SweepHandler.
func NewSweepHandler(engine Sweeper) *SweepHandler {
	return &SweepHandler{engine: engine}
}

// RegisterRoutes registers sweep routes on the chi router.
func (h *SweepHandler) RegisterRoutes(r chi.Router) {
	r.Post("/sweep", h.RunSweep)
}

// RunSweep triggers a single sweep. Options come from query parameters:
// ?limit=N caps how many positions are checked, ?dry_run=true evaluates
// without closing. The aggregate report is returned as JSON.
func (h *SweepHandler) RunSweep(w http.ResponseWriter, r *http.Request) {
	var opts sweep.Options

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid limit parameter", http.StatusBadRequest)
			return
		}
		opts.Limit = limit
	}
	if raw := r.URL.Query().Get("dry_run"); raw != "" {
		dryRun, err := strconv.ParseBool(raw)
		if err != nil {
			http.Error(w, "invalid dry_run parameter", http.StatusBadRequest)
			return
		}
		opts.DryRun = dryRun
	}

	report, err := h.engine.Run(r.Context(), opts)
	if err != nil {
		http.Error(w, "Failed to run sweep", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		http.Error(w, "Failed to encode report to JSON", http.StatusInternalServerError)
	}
}
