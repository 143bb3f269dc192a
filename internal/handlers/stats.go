package handlers

import (
	"net/http"
	"time"

	"github.com/bigpic/invoicing/internal/httpx"
	"github.com/bigpic/invoicing/internal/services"
)

// StatsHandler serves the dashboard aggregates.
type StatsHandler struct {
	Stats *services.StatsService
}

func NewStatsHandler(stats *services.StatsService) *StatsHandler {
	return &StatsHandler{Stats: stats}
}

// Dashboard: GET /api/stats
func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Stats.Dashboard(time.Now())
	if err != nil {
		httpx.Failure(w, http.StatusBadRequest, err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}
