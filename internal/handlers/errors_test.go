package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/QyongGin/learnkit/internal/importer"
	"github.com/QyongGin/learnkit/internal/models"
	"github.com/QyongGin/learnkit/internal/security"
	"github.com/QyongGin/learnkit/internal/service"
	"github.com/QyongGin/learnkit/internal/validation"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", service.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("%w: card 7", service.ErrNotFound), http.StatusNotFound},
		{"email taken", service.ErrEmailTaken, http.StatusConflict},
		{"active session exists", service.ErrActiveSessionExists, http.StatusConflict},
		{"session already ended", models.ErrSessionAlreadyEnded, http.StatusConflict},
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"invalid token", security.ErrInvalidToken, http.StatusUnauthorized},
		{"invalid ratios", fmt.Errorf("%w: must satisfy hard > normal > easy", models.ErrInvalidFrequencyRatios), http.StatusBadRequest},
		{"invalid difficulty", models.ErrInvalidDifficulty, http.StatusBadRequest},
		{"unsupported import format", importer.ErrUnsupportedFormat, http.StatusBadRequest},
		{"validation error", validation.ValidationError{Field: "title", Message: "title is required"}, http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := statusForError(tt.err)
			if got != tt.want {
				t.Fatalf("statusForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestRespondErrorWritesEnvelope(t *testing.T) {
	recorder := httptest.NewRecorder()

	respondError(recorder, fmt.Errorf("%w: user 42", service.ErrNotFound))

	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", recorder.Code)
	}
	if ct := recorder.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json, got %q", ct)
	}

	var resp errorResponse
	if err := json.NewDecoder(recorder.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if resp.Status != http.StatusNotFound {
		t.Fatalf("expected envelope status 404, got %d", resp.Status)
	}
	if resp.Message == "" {
		t.Fatal("expected a message in the envelope")
	}
	if resp.Timestamp.IsZero() {
		t.Fatal("expected a timestamp in the envelope")
	}
}

func TestRespondErrorHidesInternalDetails(t *testing.T) {
	recorder := httptest.NewRecorder()

	respondError(recorder, errors.New("pq: connection refused"))

	var resp errorResponse
	if err := json.NewDecoder(recorder.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if resp.Message != "internal server error" {
		t.Fatalf("expected generic message, got %q", resp.Message)
	}
}
