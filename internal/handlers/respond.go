package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/QyongGin/learnkit/internal/importer"
	"github.com/QyongGin/learnkit/internal/models"
	"github.com/QyongGin/learnkit/internal/security"
	"github.com/QyongGin/learnkit/internal/service"
	"github.com/QyongGin/learnkit/internal/validation"
)

// errorResponse is the JSON envelope every failed request returns
type errorResponse struct {
	Status    int       `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// respondError maps a service error onto an HTTP status and writes the
// error envelope. Unknown errors become a 500 with a generic message so
// internals never leak to clients.
func respondError(w http.ResponseWriter, err error) {
	status, message := statusForError(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
		message = "internal server error"
	}
	respondJSON(w, status, errorResponse{
		Status:    status,
		Message:   message,
		Timestamp: time.Now(),
	})
}

func statusForError(err error) (int, string) {
	var ve validation.ValidationError
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrActiveSessionExists),
		errors.Is(err, models.ErrSessionAlreadyEnded):
		return http.StatusConflict, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, security.ErrInvalidToken):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, models.ErrInvalidFrequencyRatios),
		errors.Is(err, models.ErrInvalidDifficulty),
		errors.Is(err, importer.ErrUnsupportedFormat):
		return http.StatusBadRequest, err.Error()
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

// decodeJSON parses a request body, rejecting unknown fields
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return validation.ValidationError{Field: "body", Message: "invalid request body"}
	}
	return nil
}

// pathID parses a numeric path segment registered as {name}
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, validation.ValidationError{Field: name, Message: "must be a positive integer"}
	}
	return id, nil
}
