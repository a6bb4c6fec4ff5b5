package handlers

import (
	"net/http"
	"time"

	"github.com/QyongGin/learnkit/internal/service"
)

// WeeklyHandler handles the weekly statistics HTTP requests
type WeeklyHandler struct {
	weeklyService *service.WeeklyStatsService
}

// NewWeeklyHandler creates a new weekly stats handler
func NewWeeklyHandler(weeklyService *service.WeeklyStatsService) *WeeklyHandler {
	return &WeeklyHandler{weeklyService: weeklyService}
}

// EnsureBaselines records the start-of-week snapshots for the current
// week. Calling it again within the same week is a no-op.
func (h *WeeklyHandler) EnsureBaselines(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.weeklyService.EnsureBaselines(userID, time.Now()); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

// GetStats returns the live this-week report: study time, card
// difficulty improvement against the baseline, and per-goal progress
func (h *WeeklyHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	report, err := h.weeklyService.GetWeeklyStats(userID, time.Now())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// GetSummary returns the pomodoro roll-up for the current week and
// refreshes the stored weekly achievement rate
func (h *WeeklyHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	summary, err := h.weeklyService.GetWeeklySummary(userID, time.Now())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
