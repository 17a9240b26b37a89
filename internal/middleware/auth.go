package middleware

import (
	"net/http"
	"strings"

	"business-management-backend/internal/services/auth"

	"github.com/gin-gonic/gin"
)

// RequireSession rejects requests without a valid bearer token and
// stores the authenticated user id on the context.
func RequireSession(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no session found"})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		userID, err := authService.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
