package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SOTO729/Evaluaasiv3-sub001/internal/models"
	"github.com/SOTO729/Evaluaasiv3-sub001/pkg/utils"
)

// Context keys set by AuthMiddleware.
const (
	CtxActor = "actor"
	CtxToken = "token"
)

// AuthMiddleware validates the backend-issued bearer token locally
// (shared HS256 secret) and loads the actor into the context. The raw
// token is kept too: the sync engine forwards it upstream on every call,
// so the backend remains the actual authority.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		tokenString := parts[1]
		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(CtxActor, models.Actor{UserID: claims.UserID, Role: claims.Role})
		c.Set(CtxToken, tokenString)

		c.Next()
	}
}

// Actor extracts the authenticated actor set by AuthMiddleware.
func Actor(c *gin.Context) models.Actor {
	return c.MustGet(CtxActor).(models.Actor)
}

// Token extracts the raw session token set by AuthMiddleware.
func Token(c *gin.Context) string {
	return c.MustGet(CtxToken).(string)
}
