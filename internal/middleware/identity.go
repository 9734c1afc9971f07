package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserIDHeader carries the caller identity established by the surrounding
// system. Authentication itself happens upstream; this service only records
// authorship on the entries it creates.
const UserIDHeader = "X-User-ID"

// RequireUser extracts the caller's user ID from the request header and
// stores it in both the Gin and request contexts. Requests without an
// identity are rejected.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(UserIDHeader)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + UserIDHeader + " header"})
			return
		}

		c.Set(string(userIDKey), userID)
		ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
