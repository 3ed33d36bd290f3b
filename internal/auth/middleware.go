package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxUserID    = "user_id"
	CtxUserEmail = "user_email"
)

// WithUser resolves the Supabase user from the Authorization header when one
// is present and stores it in the gin context. Requests without a valid token
// continue anonymously; routes that need identity check for it themselves.
func WithUser(verifier *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c.GetHeader("Authorization"))
		if token != "" {
			if user, err := verifier.Verify(token); err == nil {
				c.Set(CtxUserID, user.ID)
				c.Set(CtxUserEmail, user.Email)
			}
		}
		c.Next()
	}
}

// RequireUser aborts with 401 when no authenticated user is on the context.
// Page loaders redirect instead; this is for the JSON API surface.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// UserID extracts the authenticated user's id from the gin context.
// Empty string means the request is anonymous.
func UserID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserID))
}

// UserEmail extracts the authenticated user's email from the gin context.
func UserEmail(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserEmail))
}
