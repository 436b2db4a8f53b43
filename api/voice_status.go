package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VoiceStatus reports the clone state. The frontend polls this after an
// upload, so a missing voice is a regular "none" answer and not a 404.
func (a *API) VoiceStatus(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	status, err := a.Voices.Status(userID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch voice status", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, status)
}
