package handlers

import (
	"net/http"
	"time"

	"github.com/QyongGin/learnkit/internal/service"
)

// AppLaunchHandler handles app launch tracking HTTP requests
type AppLaunchHandler struct {
	appLaunchService *service.AppLaunchService
}

// NewAppLaunchHandler creates a new app launch handler
func NewAppLaunchHandler(appLaunchService *service.AppLaunchService) *AppLaunchHandler {
	return &AppLaunchHandler{appLaunchService: appLaunchService}
}

type recordLaunchRequest struct {
	LaunchTime *time.Time `json:"launchTime"`
}

// Record stores a launch event. The timestamp defaults to now when the
// body omits it.
func (h *AppLaunchHandler) Record(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	var req recordLaunchRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, err)
			return
		}
	}

	launchTime := time.Now()
	if req.LaunchTime != nil {
		launchTime = *req.LaunchTime
	}

	launch, err := h.appLaunchService.Record(userID, launchTime)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, launch)
}

// PeakHours returns the user's busiest launch hour over the last 30
// days, a suggested reminder time one hour earlier, and the full
// hour-of-day histogram
func (h *AppLaunchHandler) PeakHours(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	report, err := h.appLaunchService.PeakHours(userID, time.Now())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}
