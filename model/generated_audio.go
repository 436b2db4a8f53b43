package model

import "time"

// GeneratedAudio is one text-to-speech result tied to a voice clone
type GeneratedAudio struct {
	ID      uint `gorm:"primaryKey;autoIncrement" json:"id"`
	VoiceID uint `gorm:"index;not null" json:"-"`

	InputText       string    `json:"inputText"`
	AudioURL        string    `json:"audioUrl"`
	CharacterCount  int       `json:"characterCount"`
	DurationSeconds int       `json:"durationSeconds"`
	CreatedAt       time.Time `json:"createdAt"`
}
