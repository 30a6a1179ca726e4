package middleware

import (
	"context"
	"net/http"
	"strings"

	"carepro/services/session"
	"carepro/utils"

	"github.com/gin-gonic/gin"
)

// FlowAuthMiddleware validates the signed flow token and exposes the flow ID
// to handlers. Every navigation and account endpoint runs behind it.
func FlowAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		flowID, err := utils.ExtractFlowIDFromToken(tokenString)
		if err != nil || flowID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		c.Set("flowID", flowID)
		c.Next()
	}
}

// SessionAuthMiddleware additionally requires a stored session for the flow
// and exposes its record. Endpoints serving authenticated data run behind it.
func SessionAuthMiddleware(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		flowID := c.GetString("flowID")
		if flowID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		record, err := store.Load(context.Background(), flowID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "No active session",
				"code":  0,
			})
			return
		}

		c.Set("sessionRecord", record)
		c.Next()
	}
}
