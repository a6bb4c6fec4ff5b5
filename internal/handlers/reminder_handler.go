package handlers

import (
	"net/http"
	"time"

	"github.com/QyongGin/learnkit/internal/models"
	"github.com/QyongGin/learnkit/internal/service"
)

// ReminderHandler handles reminder HTTP requests
type ReminderHandler struct {
	reminderService *service.ReminderService
}

// NewReminderHandler creates a new reminder handler
func NewReminderHandler(reminderService *service.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService}
}

type createReminderRequest struct {
	Message          string    `json:"message"`
	NotificationTime time.Time `json:"notificationTime"`
	ScheduleID       *int64    `json:"scheduleId"`
}

// Create makes a reminder, optionally linked to a schedule
func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	var req createReminderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	reminder, err := h.reminderService.Create(&models.Reminder{
		UserID:           userID,
		ScheduleID:       req.ScheduleID,
		Message:          req.Message,
		NotificationTime: req.NotificationTime,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, reminder)
}

// ListByUser returns a user's reminders in delivery order
func (h *ReminderHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	reminders, err := h.reminderService.ListByUser(userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reminders)
}

// ListUpcoming returns a user's pending future reminders
func (h *ReminderHandler) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	reminders, err := h.reminderService.ListUpcoming(userID, time.Now())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reminders)
}

// Update applies a partial patch
func (h *ReminderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "reminderId")
	if err != nil {
		respondError(w, err)
		return
	}

	var patch models.ReminderUpdate
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, err)
		return
	}

	reminder, err := h.reminderService.Update(id, patch)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reminder)
}

// Delete removes a reminder
func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "reminderId")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.reminderService.Delete(id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
