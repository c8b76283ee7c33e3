package middleware

import (
	"github.com/gin-gonic/gin"

	"taskhub/internal/auth"
	"taskhub/internal/constants"
	apierrors "taskhub/internal/errors"
)

// RequireAuth resolves the caller's identity from the auth_token cookie.
// Requests without a valid credential are rejected with 401 before any
// mutation is attempted.
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(constants.AuthCookieName)
		if err != nil || tokenStr == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		claims, err := tokens.Verify(tokenStr)
		if err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeyUserEmail, claims.Email)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context.
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	id, ok := userID.(uint64)
	if !ok {
		return 0, false
	}
	return id, true
}
