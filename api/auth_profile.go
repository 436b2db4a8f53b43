package api

import (
	"errors"
	"net/http"

	"bitwise74/voice-api/model"
	"bitwise74/voice-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthProfile returns the user, their voice clone (if any) and how many
// clips they've generated. This is used when initially loading the dashboard.
func (a *API) AuthProfile(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var user model.User

	err := a.DB.
		Where("id = ?", userID).
		First(&user).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "not_found",
				"message":   "User not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	voice, err := a.Voices.GetMine(userID)
	if err != nil && !errors.Is(err, service.ErrVoiceNotFound) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch voice", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var audioCount int64

	if voice != nil {
		err = a.DB.
			Model(&model.GeneratedAudio{}).
			Where("voice_id = ?", voice.ID).
			Count(&audioCount).
			Error
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "internal_server_error",
				"message":   "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to count generated audio", zap.Error(err), zap.String("requestID", requestID))
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"voice": voice,
		"stats": gin.H{
			"audioGenerated": audioCount,
		},
	})
}
