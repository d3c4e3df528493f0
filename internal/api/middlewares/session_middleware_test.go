package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testSecret = "test-secret"

func protectedEcho(t *testing.T, gotID *string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := SessionIDFromContext(r.Context())
		if !ok {
			t.Error("session id missing from context")
		}
		*gotID = id
		w.WriteHeader(http.StatusOK)
	})
}

func TestSessionMiddleware(t *testing.T) {
	validToken, err := NewSessionToken(testSecret, "sess-123", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	expiredToken, err := NewSessionToken(testSecret, "sess-123", time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	wrongKeyToken, err := NewSessionToken("other-secret", "sess-123", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantID     string
	}{
		{name: "valid token", authHeader: "Bearer " + validToken, wantStatus: http.StatusOK, wantID: "sess-123"},
		{name: "missing header", authHeader: "", wantStatus: http.StatusUnauthorized},
		{name: "not bearer", authHeader: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", authHeader: "Bearer not.a.token", wantStatus: http.StatusUnauthorized},
		{name: "expired token", authHeader: "Bearer " + expiredToken, wantStatus: http.StatusUnauthorized},
		{name: "wrong signing key", authHeader: "Bearer " + wrongKeyToken, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID string
			h := SessionMiddleware(testSecret)(protectedEcho(t, &gotID))

			req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantID != "" && gotID != tt.wantID {
				t.Errorf("session id = %q, want %q", gotID, tt.wantID)
			}
		})
	}
}
