package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sparked/backend/internal/application/adapter"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubTokenService struct {
	adapter.TokenService
	claims *adapter.TokenClaims
}

func (s *stubTokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	if token != "good" {
		return nil, errors.New("invalid")
	}
	return s.claims, nil
}

func newAuthRouter(claims *adapter.TokenClaims) *gin.Engine {
	m := NewAuthMiddleware(&stubTokenService{claims: claims})
	r := gin.New()
	r.GET("/me", m.Authenticate(), func(c *gin.Context) {
		id, _ := GetUserIDFromContext(c)
		c.String(http.StatusOK, id.String())
	})
	r.GET("/admin", m.Authenticate(), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func doRequest(r http.Handler, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()
	r := newAuthRouter(&adapter.TokenClaims{UserID: userID, Email: "ada@example.com"})

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{name: "missing header", header: "", expectedStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", expectedStatus: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer bad", expectedStatus: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer good", expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, "/me", tt.header)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}

	w := doRequest(r, "/me", "Bearer good")
	if w.Body.String() != userID.String() {
		t.Errorf("expected user id %s in context, got %s", userID, w.Body.String())
	}
}

func TestRequireAdmin(t *testing.T) {
	r := newAuthRouter(&adapter.TokenClaims{UserID: uuid.New(), IsAdmin: false})
	if w := doRequest(r, "/admin", "Bearer good"); w.Code != http.StatusForbidden {
		t.Errorf("expected status %d for non-admin, got %d", http.StatusForbidden, w.Code)
	}

	r = newAuthRouter(&adapter.TokenClaims{UserID: uuid.New(), IsAdmin: true})
	if w := doRequest(r, "/admin", "Bearer good"); w.Code != http.StatusNoContent {
		t.Errorf("expected status %d for admin, got %d", http.StatusNoContent, w.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiterWithConfig(2, time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/register", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	post := func(path string) int {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 2; i++ {
		if code := post("/login"); code != http.StatusOK {
			t.Fatalf("expected request %d to pass, got %d", i+1, code)
		}
	}
	if code := post("/login"); code != http.StatusTooManyRequests {
		t.Errorf("expected %d, got %d", http.StatusTooManyRequests, code)
	}
	if code := post("/register"); code != http.StatusOK {
		t.Errorf("expected other routes to have their own budget, got %d", code)
	}

	now = now.Add(time.Minute + time.Second)
	if code := post("/login"); code != http.StatusOK {
		t.Errorf("expected window reset, got %d", code)
	}

	rl.Cleanup()
	rl.mu.Lock()
	n := len(rl.entries)
	rl.mu.Unlock()
	if n != 1 {
		t.Errorf("expected 1 live entry after cleanup, got %d", n)
	}
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := NewRateLimiterWithConfig(0, time.Minute)
	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 10; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected disabled limiter to pass, got %d", w.Code)
		}
	}
}
