package handlers

import (
	"net/http"
	"strconv"

	"github.com/QyongGin/learnkit/internal/service"
	"github.com/QyongGin/learnkit/internal/validation"
)

// StudySessionHandler handles pomodoro session HTTP requests. The same
// type serves the generic and the goal-linked flavors; each is mounted
// under its own path prefix with its own service instance.
type StudySessionHandler struct {
	sessionService *service.StudySessionService
	goalLinked     bool
}

// NewStudySessionHandler creates a handler for the generic flavor
func NewStudySessionHandler(sessionService *service.StudySessionService) *StudySessionHandler {
	return &StudySessionHandler{sessionService: sessionService}
}

// NewGoalStudySessionHandler creates a handler for the goal-linked flavor
func NewGoalStudySessionHandler(sessionService *service.StudySessionService) *StudySessionHandler {
	return &StudySessionHandler{sessionService: sessionService, goalLinked: true}
}

type startGoalSessionRequest struct {
	GoalID int64 `json:"goalId"`
}

// Start opens a session. At most one session per user may be active in
// each flavor; a second start returns 409.
func (h *StudySessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	var goalID *int64
	if h.goalLinked {
		var req startGoalSessionRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, err)
			return
		}
		if req.GoalID <= 0 {
			respondError(w, validation.ValidationError{Field: "goalId", Message: "goalId is required"})
			return
		}
		goalID = &req.GoalID
	}

	session, err := h.sessionService.Start(userID, goalID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, session)
}

// Get returns a session by ID
func (h *StudySessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "sessionId")
	if err != nil {
		respondError(w, err)
		return
	}

	session, err := h.sessionService.Get(id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

// GetActive returns the user's in-progress session
func (h *StudySessionHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	session, err := h.sessionService.GetActive(userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

// ListByUser returns a user's sessions, newest first
func (h *StudySessionHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	sessions, err := h.sessionService.ListByUser(userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sessions)
}

// Statistics returns the all-time totals for a user's sessions
func (h *StudySessionHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	stats, err := h.sessionService.Stats(userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

type endSessionRequest struct {
	AchievedAmount int    `json:"achievedAmount"`
	PomoCount      int    `json:"pomoCount"`
	Note           string `json:"note"`
}

// End closes a session; ending an already-ended session returns 409
func (h *StudySessionHandler) End(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "sessionId")
	if err != nil {
		respondError(w, err)
		return
	}

	var req endSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	session, err := h.sessionService.End(id, req.AchievedAmount, req.PomoCount, req.Note)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

// UpdatePomoCount records mid-session pomodoro progress. The count
// comes from the pomoCount query parameter.
func (h *StudySessionHandler) UpdatePomoCount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "sessionId")
	if err != nil {
		respondError(w, err)
		return
	}

	pomoCount, err := strconv.Atoi(r.URL.Query().Get("pomoCount"))
	if err != nil || pomoCount < 0 {
		respondError(w, validation.ValidationError{Field: "pomoCount", Message: "pomoCount must be a non-negative integer"})
		return
	}

	session, err := h.sessionService.UpdatePomoCount(id, pomoCount)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

// Delete removes a session
func (h *StudySessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "sessionId")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.sessionService.Delete(id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
