package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/QyongGin/learnkit/internal/security"
)

func TestRequireAuth(t *testing.T) {
	tokens := security.NewTokenManager("test-secret", time.Hour)
	m := NewMiddleware(tokens, security.NewRateLimiter(100, time.Minute))

	var gotUserID int64
	handler := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = AuthUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	token, err := tokens.Issue(42)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantUserID int64
	}{
		{"valid token", "Bearer " + token, http.StatusOK, 42},
		{"missing header", "", http.StatusUnauthorized, 0},
		{"not a bearer token", "Basic abc123", http.StatusUnauthorized, 0},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID = 0
			req := httptest.NewRequest(http.MethodGet, "/api/users/42", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			recorder := httptest.NewRecorder()

			handler(recorder, req)

			if recorder.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, recorder.Code)
			}
			if gotUserID != tt.wantUserID {
				t.Fatalf("expected user ID %d in context, got %d", tt.wantUserID, gotUserID)
			}
		})
	}
}
