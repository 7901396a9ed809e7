package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const identityKey = "email"

type Verifier interface {
	Verify(tokenStr string) (string, error)
}

// Authenticate rejects requests without a valid bearer token and stores the
// verified email on the gin context.
func Authenticate(v Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access"})
			return
		}

		scheme, rest, ok := strings.Cut(header, " ")
		tokenStr := strings.TrimSpace(rest)
		if !ok || !strings.EqualFold(scheme, "Bearer") || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden access"})
			return
		}

		email, err := v.Verify(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden access"})
			return
		}

		c.Set(identityKey, email)
		c.Next()
	}
}

// Identity returns the email set by Authenticate, or "" on unprotected routes.
func Identity(c *gin.Context) string {
	return c.GetString(identityKey)
}
