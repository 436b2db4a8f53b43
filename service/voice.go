package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitwise74/voice-api/model"
	"bitwise74/voice-api/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Voices orchestrates the lifecycle of a user's single voice clone
// across the database, the file store and the TTS provider
type Voices struct {
	DB       *gorm.DB
	Store    storage.Store
	Provider Provider
}

func NewVoices(db *gorm.DB, store storage.Store, provider Provider) *Voices {
	return &Voices{
		DB:       db,
		Store:    store,
		Provider: provider,
	}
}

// VoiceStatus is what the polling endpoint reports. Status is "none"
// when the user has no voice clone.
type VoiceStatus struct {
	Status          string     `json:"status"`
	ProviderVoiceID string     `json:"voiceId,omitempty"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
}

// Create clones a voice from an uploaded sample. The provider call has
// to succeed before anything is persisted so a provider failure leaves
// no file or row behind. The caller owns the temp file either way.
func (s *Voices) Create(ctx context.Context, userID, samplePath string, sampleSize int64) (*model.Voice, error) {
	var count int64

	err := s.DB.
		Model(&model.Voice{}).
		Where("user_id = ?", userID).
		Count(&count).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to check for an existing voice, %w", err)
	}

	if count > 0 {
		return nil, ErrVoiceExists
	}

	duration := EstimateSampleSeconds(sampleSize)

	providerID, err := s.Provider.Clone(ctx, samplePath, "Voice_"+userID)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}

	key := fmt.Sprintf("voices/%s_%d.mp3", userID, time.Now().UnixMilli())

	url, err := s.Store.Upload(ctx, samplePath, key)
	if err != nil {
		// The clone exists upstream but we can't keep the sample, so
		// undo the clone instead of leaving it orphaned
		if derr := s.Provider.Delete(ctx, providerID); derr != nil {
			zap.L().Warn("Failed to undo voice clone after storage failure", zap.Error(derr), zap.String("voiceID", providerID))
		}

		return nil, fmt.Errorf("failed to store voice sample, %w", err)
	}

	voice := &model.Voice{
		UserID:          userID,
		ProviderVoiceID: providerID,
		AudioFileURL:    url,
		DurationSeconds: duration,
		Status:          model.VoiceStatusReady,
	}

	if err := s.DB.Create(voice).Error; err != nil {
		if derr := s.Provider.Delete(ctx, providerID); derr != nil {
			zap.L().Warn("Failed to undo voice clone after insert failure", zap.Error(derr), zap.String("voiceID", providerID))
		}

		if _, derr := s.Store.Delete(ctx, url); derr != nil {
			zap.L().Warn("Failed to undo sample upload after insert failure", zap.Error(derr), zap.String("url", url))
		}

		return nil, fmt.Errorf("failed to save voice record, %w", err)
	}

	return voice, nil
}

// GetMine returns the user's voice clone or ErrVoiceNotFound
func (s *Voices) GetMine(userID string) (*model.Voice, error) {
	var voice model.Voice

	err := s.DB.
		Where("user_id = ?", userID).
		First(&voice).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVoiceNotFound
		}

		return nil, err
	}

	return &voice, nil
}

// Status reports the clone state for polling. A missing voice is not an
// error, it reports as "none".
func (s *Voices) Status(userID string) (*VoiceStatus, error) {
	voice, err := s.GetMine(userID)
	if err != nil {
		if errors.Is(err, ErrVoiceNotFound) {
			return &VoiceStatus{Status: "none"}, nil
		}

		return nil, err
	}

	return &VoiceStatus{
		Status:          voice.Status,
		ProviderVoiceID: voice.ProviderVoiceID,
		CreatedAt:       &voice.CreatedAt,
	}, nil
}

// Delete tears the voice clone down. Provider-side deletion and file
// deletion are best effort, the row deletion (which takes all generated
// audio with it) must always run once ownership is confirmed and is the
// only step allowed to fail the call.
func (s *Voices) Delete(ctx context.Context, userID string) error {
	voice, err := s.GetMine(userID)
	if err != nil {
		return err
	}

	if derr := s.Provider.Delete(ctx, voice.ProviderVoiceID); derr != nil {
		zap.L().Warn("Failed to delete provider-side voice clone", zap.Error(derr), zap.String("voiceID", voice.ProviderVoiceID))
	}

	if voice.AudioFileURL != "" {
		if _, derr := s.Store.Delete(ctx, voice.AudioFileURL); derr != nil {
			zap.L().Warn("Failed to delete voice sample file", zap.Error(derr), zap.String("url", voice.AudioFileURL))
		}
	}

	var urls []string

	err = s.DB.
		Model(&model.GeneratedAudio{}).
		Where("voice_id = ?", voice.ID).
		Pluck("audio_url", &urls).
		Error
	if err != nil {
		zap.L().Warn("Failed to list generated audio files for cleanup", zap.Error(err), zap.Uint("voiceID", voice.ID))
	}

	for _, url := range urls {
		if _, derr := s.Store.Delete(ctx, url); derr != nil {
			zap.L().Warn("Failed to delete generated audio file", zap.Error(derr), zap.String("url", url))
		}
	}

	err = s.DB.
		Where("voice_id = ?", voice.ID).
		Delete(&model.GeneratedAudio{}).
		Error
	if err != nil {
		return fmt.Errorf("failed to delete generated audio records, %w", err)
	}

	err = s.DB.Delete(&model.Voice{}, voice.ID).Error
	if err != nil {
		return fmt.Errorf("failed to delete voice record, %w", err)
	}

	return nil
}
