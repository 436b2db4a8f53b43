package api

import (
	"errors"
	"net/http"

	"bitwise74/voice-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) VoiceFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	voice, err := a.Voices.GetMine(userID)
	if err != nil {
		if errors.Is(err, service.ErrVoiceNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "not_found",
				"message":   "No voice clone found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch voice", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, voice)
}
