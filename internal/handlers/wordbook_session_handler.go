package handlers

import (
	"net/http"

	"github.com/QyongGin/learnkit/internal/service"
	"github.com/QyongGin/learnkit/internal/validation"
)

// WordBookSessionHandler handles word-book review session HTTP requests
type WordBookSessionHandler struct {
	sessionService *service.WordBookSessionService
}

// NewWordBookSessionHandler creates a new word-book session handler
func NewWordBookSessionHandler(sessionService *service.WordBookSessionService) *WordBookSessionHandler {
	return &WordBookSessionHandler{sessionService: sessionService}
}

type startWordBookSessionRequest struct {
	WordBookID int64 `json:"wordBookId"`
}

// Start opens a review session, snapshotting the book's difficulty
// counts and re-baselining every card's priority to zero
func (h *WordBookSessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	var req startWordBookSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.WordBookID <= 0 {
		respondError(w, validation.ValidationError{Field: "wordBookId", Message: "wordBookId is required"})
		return
	}

	session, err := h.sessionService.Start(userID, req.WordBookID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, session)
}

// Get returns a session by ID
func (h *WordBookSessionHandler) Get(w http.ResponseWriter, r *http.Request) {
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
func (h *WordBookSessionHandler) GetActive(w http.ResponseWriter, r *http.Request) {
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
func (h *WordBookSessionHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
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

// Statistics returns the all-time totals for a user's review sessions
func (h *WordBookSessionHandler) Statistics(w http.ResponseWriter, r *http.Request) {
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

// End closes a session with a fresh difficulty snapshot; ending twice
// returns 409
func (h *WordBookSessionHandler) End(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "sessionId")
	if err != nil {
		respondError(w, err)
		return
	}

	session, err := h.sessionService.End(id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

// Delete removes a session
func (h *WordBookSessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
