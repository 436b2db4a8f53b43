package api

import (
	"errors"
	"net/http"
	"strconv"

	"bitwise74/voice-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) AudioFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "invalid_input",
			"message":   "Audio ID must be a number",
			"requestID": requestID,
		})
		return
	}

	row, err := a.Audio.GetOne(userID, uint(id))
	if err != nil {
		if errors.Is(err, service.ErrAudioNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "not_found",
				"message":   "Audio not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch audio", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, row)
}
