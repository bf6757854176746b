package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"healthyfamilies/internal/auth"
	"healthyfamilies/internal/security"
)

func newTestMiddleware() (*Middleware, *auth.TokenService) {
	tokens := auth.NewTokenService("test-secret", "healthyfamilies-test")
	return NewMiddleware(tokens, security.NewRateLimiter(1000, time.Minute)), tokens
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	m, _ := newTestMiddleware()

	handler := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called without a token")
	})

	recorder := httptest.NewRecorder()
	handler(recorder, httptest.NewRequest(http.MethodPost, "/family/invite", nil))

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", recorder.Code, http.StatusUnauthorized)
	}
}

func TestRequireAuthRejectsMalformedHeader(t *testing.T) {
	m, tokens := newTestMiddleware()

	token, err := tokens.GenerateToken("user-123", "bob@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"no scheme", token},
		{"wrong scheme", "Basic " + token},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
				called = true
			})

			req := httptest.NewRequest(http.MethodPost, "/family/invite", nil)
			req.Header.Set("Authorization", tt.header)
			recorder := httptest.NewRecorder()
			handler(recorder, req)

			if called {
				t.Error("handler should not be called")
			}
			if recorder.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", recorder.Code, http.StatusUnauthorized)
			}
		})
	}
}

func TestRequireAuthPassesClaims(t *testing.T) {
	m, tokens := newTestMiddleware()

	token, err := tokens.GenerateToken("user-123", "bob@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	var claims *auth.Claims
	handler := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		claims = GetClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/family/invite", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	handler(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusOK)
	}
	if claims == nil {
		t.Fatal("claims missing from request context")
	}
	if claims.UserID != "user-123" {
		t.Errorf("UserID = %q, want user-123", claims.UserID)
	}
}

func TestRateLimitRejectsOverBudget(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", "healthyfamilies-test")
	m := NewMiddleware(tokens, security.NewRateLimiter(2, time.Minute))

	handler := m.RateLimit(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/family/join", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		handler(recorder, req)
		if recorder.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want %d", i+1, recorder.Code, http.StatusOK)
		}
	}

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/family/join", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	handler(recorder, req)
	if recorder.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", recorder.Code, http.StatusTooManyRequests)
	}
}
