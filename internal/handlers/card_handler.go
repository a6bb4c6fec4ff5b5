package handlers

import (
	"net/http"

	"github.com/QyongGin/learnkit/internal/importer"
	"github.com/QyongGin/learnkit/internal/models"
	"github.com/QyongGin/learnkit/internal/service"
	"github.com/QyongGin/learnkit/internal/validation"
)

// maxImportSize caps card import uploads at 10 MB
const maxImportSize = 10 << 20

// CardHandler handles flashcard HTTP requests
type CardHandler struct {
	cardService     *service.CardService
	wordBookService *service.WordBookService
}

// NewCardHandler creates a new card handler
func NewCardHandler(cardService *service.CardService, wordBookService *service.WordBookService) *CardHandler {
	return &CardHandler{
		cardService:     cardService,
		wordBookService: wordBookService,
	}
}

type createCardRequest struct {
	FrontText string `json:"frontText"`
	BackText  string `json:"backText"`
}

// Create adds a card to a word book
func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	wordBookID, err := pathID(r, "wordBookId")
	if err != nil {
		respondError(w, err)
		return
	}

	var req createCardRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.FrontText == "" {
		respondError(w, validation.ValidationError{Field: "frontText", Message: "frontText is required"})
		return
	}

	card, err := h.cardService.Create(wordBookID, req.FrontText, req.BackText)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, card)
}

// ListByWordBook returns a word book's cards in creation order
func (h *CardHandler) ListByWordBook(w http.ResponseWriter, r *http.Request) {
	wordBookID, err := pathID(r, "wordBookId")
	if err != nil {
		respondError(w, err)
		return
	}

	cards, err := h.cardService.ListByWordBook(wordBookID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cards)
}

// Get returns a card by ID
func (h *CardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "cardId")
	if err != nil {
		respondError(w, err)
		return
	}

	card, err := h.cardService.Get(id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}

// Detail returns a card together with its word book title
func (h *CardHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "cardId")
	if err != nil {
		respondError(w, err)
		return
	}

	detail, err := h.cardService.Detail(id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

// Update applies a partial content patch
func (h *CardHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "cardId")
	if err != nil {
		respondError(w, err)
		return
	}

	var patch models.CardUpdate
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, err)
		return
	}

	card, err := h.cardService.Update(id, patch)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}

type reviewRequest struct {
	Difficulty string `json:"difficulty"`
}

// Review grades a card and pushes it back by the scheduler interval
func (h *CardHandler) Review(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "cardId")
	if err != nil {
		respondError(w, err)
		return
	}

	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	card, err := h.cardService.Review(id, req.Difficulty)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}

// Delete removes a card
func (h *CardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "cardId")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.cardService.Delete(id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// NextDue returns the most due card of a word book
func (h *CardHandler) NextDue(w http.ResponseWriter, r *http.Request) {
	wordBookID, err := pathID(r, "wordBookId")
	if err != nil {
		respondError(w, err)
		return
	}

	card, err := h.cardService.NextDue(wordBookID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}

// UserStatistics returns the per-difficulty tally across all of a
// user's word books
func (h *CardHandler) UserStatistics(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	stats, err := h.cardService.UserStatistics(userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// WordBookStatistics returns the per-difficulty tally of one word book
func (h *CardHandler) WordBookStatistics(w http.ResponseWriter, r *http.Request) {
	wordBookID, err := pathID(r, "wordBookId")
	if err != nil {
		respondError(w, err)
		return
	}

	counts, err := h.wordBookService.DifficultyCounts(wordBookID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, service.CardStatistics{
		TotalCount: counts.Hard + counts.Normal + counts.Easy,
		Counts:     counts,
	})
}

type importResponse struct {
	Inserted int      `json:"inserted"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// Import bulk-creates cards from an uploaded xlsx or csv file. The
// multipart field name is "file".
func (h *CardHandler) Import(w http.ResponseWriter, r *http.Request) {
	wordBookID, err := pathID(r, "wordBookId")
	if err != nil {
		respondError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		respondError(w, validation.ValidationError{Field: "file", Message: "invalid multipart upload"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, validation.ValidationError{Field: "file", Message: "file field is required"})
		return
	}
	defer file.Close()

	result, err := importer.Parse(header.Filename, file)
	if err != nil {
		respondError(w, err)
		return
	}

	inserted, err := h.cardService.CreateBatch(wordBookID, result.Cards)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, importResponse{
		Inserted: inserted,
		Skipped:  result.Skipped,
		Errors:   result.Errors,
	})
}
