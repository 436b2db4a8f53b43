package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"bitwise74/voice-api/elevenlabs"
	"bitwise74/voice-api/model"
	"bitwise74/voice-api/storage"
	"bitwise74/voice-api/validators"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultStability       = 0.75
	defaultSimilarityBoost = 0.75

	maxHistoryLimit     = 100
	defaultHistoryLimit = 50
)

// Audio orchestrates text-to-speech generation and the generated-audio
// history of a user's voice clone
type Audio struct {
	DB       *gorm.DB
	Store    storage.Store
	Provider Provider
}

func NewAudio(db *gorm.DB, store storage.Store, provider Provider) *Audio {
	return &Audio{
		DB:       db,
		Store:    store,
		Provider: provider,
	}
}

// HistoryPage is one slice of a voice's generation history, newest first
type HistoryPage struct {
	Items  []model.GeneratedAudio `json:"data"`
	Limit  int                    `json:"limit"`
	Offset int                    `json:"offset"`
	Total  int64                  `json:"total"`
}

// Generate synthesizes speech from text with the user's voice clone and
// records the result. Stability and similarity boost fall back to 0.75
// when not supplied.
func (s *Audio) Generate(ctx context.Context, userID, text string, stability, similarityBoost *float64) (*model.GeneratedAudio, error) {
	if err := validators.TextValidator(text); err != nil {
		return nil, err
	}

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

	if voice.Status != model.VoiceStatusReady {
		return nil, ErrVoiceNotReady
	}

	settings := elevenlabs.VoiceSettings{
		Stability:       defaultStability,
		SimilarityBoost: defaultSimilarityBoost,
		UseSpeakerBoost: true,
	}

	if stability != nil {
		settings.Stability = *stability
	}

	if similarityBoost != nil {
		settings.SimilarityBoost = *similarityBoost
	}

	audio, err := s.Provider.Synthesize(ctx, voice.ProviderVoiceID, text, settings)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}

	temp, err := os.CreateTemp("", "tts-*.mp3")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file, %w", err)
	}
	defer os.Remove(temp.Name())

	if _, err := temp.Write(audio); err != nil {
		temp.Close()
		return nil, fmt.Errorf("failed to write synthesized audio, %w", err)
	}
	temp.Close()

	key := fmt.Sprintf("audio/audio_%s_%d.mp3", userID, time.Now().UnixMilli())

	url, err := s.Store.Upload(ctx, temp.Name(), key)
	if err != nil {
		return nil, fmt.Errorf("failed to store generated audio, %w", err)
	}

	row := &model.GeneratedAudio{
		VoiceID:         voice.ID,
		InputText:       text,
		AudioURL:        url,
		CharacterCount:  len(text),
		DurationSeconds: EstimateSpeechSeconds(text),
	}

	if err := s.DB.Create(row).Error; err != nil {
		if _, derr := s.Store.Delete(ctx, url); derr != nil {
			zap.L().Warn("Failed to undo audio upload after insert failure", zap.Error(derr), zap.String("url", url))
		}

		return nil, fmt.Errorf("failed to save generated audio record, %w", err)
	}

	return row, nil
}

// History pages through a voice's generated audio, newest first. A user
// without a voice gets an empty page, not an error.
func (s *Audio) History(userID string, limit, offset int) (*HistoryPage, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	if offset < 0 {
		offset = 0
	}

	page := &HistoryPage{
		Items:  []model.GeneratedAudio{},
		Limit:  limit,
		Offset: offset,
	}

	var voice model.Voice

	err := s.DB.
		Where("user_id = ?", userID).
		First(&voice).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return page, nil
		}

		return nil, err
	}

	err = s.DB.
		Model(&model.GeneratedAudio{}).
		Where("voice_id = ?", voice.ID).
		Count(&page.Total).
		Error
	if err != nil {
		return nil, err
	}

	err = s.DB.
		Where("voice_id = ?", voice.ID).
		Order("created_at desc, id desc").
		Offset(offset).
		Limit(limit).
		Find(&page.Items).
		Error
	if err != nil {
		return nil, err
	}

	return page, nil
}

// GetOne returns a single generated audio owned by the user. Ownership
// is checked by join, so someone else's audio looks exactly like a
// missing one.
func (s *Audio) GetOne(userID string, audioID uint) (*model.GeneratedAudio, error) {
	var row model.GeneratedAudio

	err := s.DB.
		Joins("JOIN voices ON voices.id = generated_audios.voice_id").
		Where("generated_audios.id = ? AND voices.user_id = ?", audioID, userID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAudioNotFound
		}

		return nil, err
	}

	return &row, nil
}

// Delete removes one generated audio and its backing file. Unlike voice
// deletion the file removal is part of the contract here, its failure
// fails the whole call.
func (s *Audio) Delete(ctx context.Context, userID string, audioID uint) error {
	row, err := s.GetOne(userID, audioID)
	if err != nil {
		return err
	}

	if _, err := s.Store.Delete(ctx, row.AudioURL); err != nil {
		return fmt.Errorf("failed to delete audio file, %w", err)
	}

	err = s.DB.Delete(&model.GeneratedAudio{}, row.ID).Error
	if err != nil {
		return fmt.Errorf("failed to delete audio record, %w", err)
	}

	return nil
}
