package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Leonard1379/MyDjangoProject/internal/utils"
)

const secret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func protected() *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	api := r.Group("/api", JWTAuthMiddleware(secret))
	api.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.GetString("username")})
	})
	api.GET("/admin", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok, err := utils.GenerateJWTToken(secret, "1", "someone", role)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return tok
}

func TestJWTAuthMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"no header", "/api/me", "", http.StatusUnauthorized},
		{"wrong scheme", "/api/me", "Basic abc", http.StatusUnauthorized},
		{"bad token", "/api/me", "Bearer nope", http.StatusUnauthorized},
		{"user token", "/api/me", "Bearer " + token(t, "user"), http.StatusOK},
		{"user on admin route", "/api/admin", "Bearer " + token(t, "user"), http.StatusForbidden},
		{"admin on admin route", "/api/admin", "Bearer " + token(t, "admin"), http.StatusNoContent},
	}
	r := protected()
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tt.want {
			t.Errorf("%s: status %d, want %d", tt.name, w.Code, tt.want)
		}
	}
}

func TestRequestID(t *testing.T) {
	r := protected()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/me", nil))
	generated := w.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(generated); err != nil {
		t.Errorf("expected generated uuid, got %q", generated)
	}

	incoming := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set(RequestIDHeader, incoming)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != incoming {
		t.Errorf("expected incoming id %q to be kept, got %q", incoming, got)
	}
}

func TestJWTAuthMiddlewareWithoutSecret(t *testing.T) {
	r := gin.New()
	r.GET("/api/me", JWTAuthMiddleware(""), func(c *gin.Context) { c.Status(http.StatusOK) })

	forged, err := utils.GenerateJWTToken("x", "1", "someone", "admin")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status %d, want 401", w.Code)
	}
}
