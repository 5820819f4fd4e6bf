package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserHeader carries the already-authenticated user identity. Session and
// token handling live in the fronting layer; this service only scopes its
// queries by the identifier it is handed.
const UserHeader = "X-User-ID"

// UserScopeMiddleware extracts the user ID from the request header and stores
// it in the context. Requests without an identity are rejected.
func UserScopeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(UserHeader)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + UserHeader + " header"})
			return
		}

		c.Set(string(userIDKey), userID)
		ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
