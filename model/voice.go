package model

import "time"

const (
	VoiceStatusProcessing = "processing"
	VoiceStatusReady      = "ready"
)

// Voice is a user's cloned voice. A user has at most one at any time,
// enforced in the lifecycle service rather than by a DB constraint.
type Voice struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID string `gorm:"index;not null" json:"-"`

	// Voice ID assigned by the TTS provider when the clone is created
	ProviderVoiceID string `json:"voiceId"`
	// Where the original uploaded sample ended up in the file store
	AudioFileURL    string    `json:"audioFileUrl"`
	DurationSeconds int       `json:"durationSeconds"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	GeneratedAudio []GeneratedAudio `gorm:"foreignKey:VoiceID;constraint:OnDelete:CASCADE" json:"-"`
}
