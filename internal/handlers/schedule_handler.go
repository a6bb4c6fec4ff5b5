package handlers

import (
	"net/http"
	"time"

	"github.com/QyongGin/learnkit/internal/models"
	"github.com/QyongGin/learnkit/internal/service"
	"github.com/QyongGin/learnkit/internal/validation"
)

// ScheduleHandler handles calendar schedule HTTP requests
type ScheduleHandler struct {
	scheduleService *service.ScheduleService
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(scheduleService *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

type createScheduleRequest struct {
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
}

// Create makes a calendar entry
func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	var req createScheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	schedule, err := h.scheduleService.Create(&models.Schedule{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, schedule)
}

// ListByUser returns a user's schedules. Optional from/to query
// parameters (RFC 3339) narrow the listing to entries overlapping the
// range.
func (h *ScheduleHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr != "" && toStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			respondError(w, validation.ValidationError{Field: "from", Message: "must be an RFC 3339 timestamp"})
			return
		}
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			respondError(w, validation.ValidationError{Field: "to", Message: "must be an RFC 3339 timestamp"})
			return
		}

		schedules, err := h.scheduleService.ListByUserInRange(userID, from, to)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, schedules)
		return
	}

	schedules, err := h.scheduleService.ListByUser(userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, schedules)
}

// Get returns a schedule by ID
func (h *ScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "scheduleId")
	if err != nil {
		respondError(w, err)
		return
	}

	schedule, err := h.scheduleService.Get(id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, schedule)
}

// Update applies a partial patch
func (h *ScheduleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "scheduleId")
	if err != nil {
		respondError(w, err)
		return
	}

	var patch models.ScheduleUpdate
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, err)
		return
	}

	schedule, err := h.scheduleService.Update(id, patch)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, schedule)
}

// Delete removes a schedule
func (h *ScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "scheduleId")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.scheduleService.Delete(id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
