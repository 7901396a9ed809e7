package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"cakeries-backend/internal/apperr"
	"cakeries-backend/internal/model"
)

type staticRoles map[string]string

func (s staticRoles) Role(_ context.Context, email string) (string, error) {
	role, ok := s[email]
	if !ok {
		return "", apperr.ErrNotFound
	}
	return role, nil
}

func newTestRouter(tokens *Tokens, roles RoleLookup) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", Authenticate(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": Identity(c)})
	})
	r.GET("/admin", Authenticate(tokens), RequireAdmin(roles), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAuthenticate(t *testing.T) {
	tokens := NewTokens("secret", 24*time.Hour)
	valid, _ := tokens.Sign("bob@x.com")
	foreign, _ := NewTokens("nope", 24*time.Hour).Sign("bob@x.com")

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"valid bearer", "Bearer " + valid, http.StatusOK},
		{"lowercase scheme", "bearer " + valid, http.StatusOK},
		{"wrong secret", "Bearer " + foreign, http.StatusForbidden},
		{"malformed", "Bearer abc.def.ghi", http.StatusForbidden},
		{"bare token without scheme", valid, http.StatusForbidden},
		{"other scheme", "Token " + valid, http.StatusForbidden},
		{"scheme without token", "Bearer ", http.StatusForbidden},
	}

	router := newTestRouter(tokens, staticRoles{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tokens := NewTokens("secret", 24*time.Hour)
	roles := staticRoles{
		"root@x.com": model.RoleAdmin,
		"bob@x.com":  model.RoleCustomer,
	}
	router := newTestRouter(tokens, roles)

	tests := []struct {
		email          string
		expectedStatus int
	}{
		{"root@x.com", http.StatusNoContent},
		{"bob@x.com", http.StatusForbidden},
		{"ghost@x.com", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			signed, _ := tokens.Sign(tt.email)
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", "Bearer "+signed)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}
