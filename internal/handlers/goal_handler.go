package handlers

import (
	"net/http"
	"time"

	"github.com/QyongGin/learnkit/internal/models"
	"github.com/QyongGin/learnkit/internal/service"
	"github.com/QyongGin/learnkit/internal/validation"
)

// GoalHandler handles goal HTTP requests
type GoalHandler struct {
	goalService *service.GoalService
}

// NewGoalHandler creates a new goal handler
func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

type createGoalRequest struct {
	Title             string     `json:"title"`
	StartDate         *time.Time `json:"startDate"`
	EndDate           *time.Time `json:"endDate"`
	TotalTargetAmount int        `json:"totalTargetAmount"`
	TargetUnit        string     `json:"targetUnit"`
}

// Create makes a new goal
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	var req createGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	goal, err := h.goalService.Create(&models.Goal{
		UserID:            userID,
		Title:             req.Title,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		TotalTargetAmount: req.TotalTargetAmount,
		TargetUnit:        req.TargetUnit,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, goal)
}

// ListByUser returns a user's goals
func (h *GoalHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	goals, err := h.goalService.ListByUser(userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, goals)
}

// ListActive returns a user's not-yet-completed goals
func (h *GoalHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	goals, err := h.goalService.ListActiveByUser(userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, goals)
}

// Get returns a goal by ID
func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "goalId")
	if err != nil {
		respondError(w, err)
		return
	}

	goal, err := h.goalService.Get(id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, goal)
}

// Update applies a partial patch
func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "goalId")
	if err != nil {
		respondError(w, err)
		return
	}

	var patch models.GoalUpdate
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, err)
		return
	}

	goal, err := h.goalService.Update(id, patch)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, goal)
}

type addProgressRequest struct {
	Amount int `json:"amount"`
}

// AddProgress advances a goal. Completion latches once reached.
func (h *GoalHandler) AddProgress(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "goalId")
	if err != nil {
		respondError(w, err)
		return
	}

	var req addProgressRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Amount <= 0 {
		respondError(w, validation.ValidationError{Field: "amount", Message: "amount must be positive"})
		return
	}

	goal, err := h.goalService.AddProgress(id, req.Amount)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, goal)
}

// Delete removes a goal
func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "goalId")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.goalService.Delete(id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
