package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"slidecraft/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
)

// AuthMiddleware verifies the bearer JWT and sets the user id and email in context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Missing Authorization token"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid_input", "message": "Invalid Authorization token format"})
			return
		}

		claims, err := utils.ParseJWTToken(parts[1])
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, utils.ErrTokenExpired) {
				msg = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": msg})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserEmail, claims.Email)
		c.Next()
	}
}
