package api

import (
	"errors"
	"net/http"
	"strconv"

	"bitwise74/voice-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) AudioDelete(c *gin.Context) {
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

	if err := a.Audio.Delete(c.Request.Context(), userID, uint(id)); err != nil {
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

		zap.L().Error("Failed to delete audio", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Audio deleted",
	})
}
