package handlers

import (
	"net/http"

	"github.com/QyongGin/learnkit/internal/models"
	"github.com/QyongGin/learnkit/internal/service"
)

// WordBookHandler handles word book HTTP requests
type WordBookHandler struct {
	wordBookService *service.WordBookService
}

// NewWordBookHandler creates a new word book handler
func NewWordBookHandler(wordBookService *service.WordBookService) *WordBookHandler {
	return &WordBookHandler{wordBookService: wordBookService}
}

type createWordBookRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	HardRatio   *int    `json:"hardFrequencyRatio"`
	NormalRatio *int    `json:"normalFrequencyRatio"`
	EasyRatio   *int    `json:"easyFrequencyRatio"`
}

// Create makes a word book. Omitting the ratios falls back to the
// default 6:3:1 triple.
func (h *WordBookHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	var req createWordBookRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	var ratios *models.FrequencyRatios
	if req.HardRatio != nil && req.NormalRatio != nil && req.EasyRatio != nil {
		ratios = &models.FrequencyRatios{Hard: *req.HardRatio, Normal: *req.NormalRatio, Easy: *req.EasyRatio}
	}

	wb, err := h.wordBookService.Create(userID, req.Title, req.Description, ratios)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, wb)
}

// ListByUser returns a user's word books
func (h *WordBookHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	books, err := h.wordBookService.ListByUser(userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, books)
}

// Get returns a word book by ID
func (h *WordBookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "wordBookId")
	if err != nil {
		respondError(w, err)
		return
	}

	wb, err := h.wordBookService.Get(id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, wb)
}

// Update applies a partial patch. Ratios change only when all three are
// supplied and valid together.
func (h *WordBookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "wordBookId")
	if err != nil {
		respondError(w, err)
		return
	}

	var patch models.WordBookUpdate
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, err)
		return
	}

	wb, err := h.wordBookService.Update(id, patch)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, wb)
}

// Delete removes a word book and its cards
func (h *WordBookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "wordBookId")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.wordBookService.Delete(id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
