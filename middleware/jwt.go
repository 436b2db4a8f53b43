package middleware

import (
	"errors"
	"net/http"
	"strings"

	"bitwise74/voice-api/security"

	"github.com/gin-gonic/gin"
)

// NewJWTMiddleware guards a route group with bearer token auth. Each way
// a token can be wrong gets its own error code so the frontend can react
// properly (prompt login vs refresh vs report a bug).
func NewJWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "no_token",
				"message":   "No Authorization header provided",
				"requestID": requestID,
			})
			return
		}

		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "malformed_header",
				"message":   "Authorization header must be of the form 'Bearer <token>'",
				"requestID": requestID,
			})
			return
		}

		userID, err := security.ParseAuthToken(tokenStr)
		if err != nil {
			if errors.Is(err, security.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error":     "token_expired",
					"message":   "Your session has expired. Please login again",
					"requestID": requestID,
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "token_invalid",
				"message":   "The provided token is invalid",
				"requestID": requestID,
			})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
