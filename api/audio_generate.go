package api

import (
	"errors"
	"net/http"

	"bitwise74/voice-api/service"
	"bitwise74/voice-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type generateBody struct {
	Text            string   `json:"text"`
	Stability       *float64 `json:"stability"`
	SimilarityBoost *float64 `json:"similarityBoost"`
}

func (a *API) AudioGenerate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data generateBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "invalid_input",
			"message":   "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	row, err := a.Audio.Generate(c.Request.Context(), userID, data.Text, data.Stability, data.SimilarityBoost)
	if err != nil {
		switch {
		case errors.Is(err, validators.ErrTextEmpty), errors.Is(err, validators.ErrTextTooLong):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     "invalid_input",
				"message":   err.Error(),
				"requestID": requestID,
			})
			return
		case errors.Is(err, service.ErrVoiceNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "not_found",
				"message":   "No voice clone found. Upload a voice sample first",
				"requestID": requestID,
			})
			return
		case errors.Is(err, service.ErrVoiceNotReady):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     "not_ready",
				"message":   "Voice clone is still processing. Try again in a moment",
				"requestID": requestID,
			})
			return
		}

		var upstream *service.UpstreamError
		if errors.As(err, &upstream) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "upstream_failure",
				"message":   upstream.Error(),
				"requestID": requestID,
			})

			zap.L().Error("Speech generation failed upstream", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate audio", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, row)
}
