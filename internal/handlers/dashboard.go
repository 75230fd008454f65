package handlers

import (
	"net/http"

	"contenthub/internal/store"
)

// Dashboard serves the aggregated admin dashboard statistics.
type Dashboard struct {
	dashboard *store.DashboardStore
}

// NewDashboard creates a new Dashboard handler group.
func NewDashboard(dashboard *store.DashboardStore) *Dashboard {
	return &Dashboard{dashboard: dashboard}
}

// Stats returns totals, chart series and recent activity in one payload.
func (h *Dashboard) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Stats()
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
