package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cakeries-backend/internal/apperr"
	"cakeries-backend/internal/model"
)

// RoleLookup resolves the stored role for an email. A missing user is
// reported as apperr.ErrNotFound.
type RoleLookup interface {
	Role(ctx context.Context, email string) (string, error)
}

// IsAdmin reports whether email currently holds the admin role.
func IsAdmin(ctx context.Context, roles RoleLookup, email string) (bool, error) {
	if email == "" {
		return false, nil
	}
	role, err := roles.Role(ctx, email)
	if errors.Is(err, apperr.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return role == model.RoleAdmin, nil
}

// RequireAdmin must run after Authenticate.
func RequireAdmin(roles RoleLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := IsAdmin(c.Request.Context(), roles, Identity(c))
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
