package api

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"bitwise74/voice-api/service"
	"bitwise74/voice-api/util"
	"bitwise74/voice-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VoiceCreate clones a voice from an uploaded sample. Each user gets
// exactly one clone, a second upload is rejected until the first is
// deleted.
func (a *API) VoiceCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	fh, err := c.FormFile("audio")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "invalid_input",
			"message":   "No audio file provided",
			"requestID": requestID,
		})
		return
	}

	if code, err := validators.AudioFileValidator(fh); err != nil {
		if code == http.StatusInternalServerError {
			c.AbortWithStatusJSON(code, gin.H{
				"error":     "internal_server_error",
				"message":   "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to validate audio file", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.AbortWithStatusJSON(code, gin.H{
			"error":     "invalid_input",
			"message":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	ext := filepath.Ext(fh.Filename)
	if ext == "" {
		ext = ".mp3"
	}

	tempPath := filepath.Join(os.TempDir(), "voice-"+util.RandStr(10)+ext)

	if err := c.SaveUploadedFile(fh, tempPath); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save uploaded file", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	defer os.Remove(tempPath)

	voice, err := a.Voices.Create(c.Request.Context(), userID, tempPath, fh.Size)
	if err != nil {
		if errors.Is(err, service.ErrVoiceExists) {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error":     "conflict",
				"message":   "A voice clone already exists. Delete it before uploading a new sample",
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

			zap.L().Error("Voice cloning failed upstream", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create voice clone", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, voice)
}
