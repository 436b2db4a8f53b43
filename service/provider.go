package service

import (
	"context"

	"bitwise74/voice-api/elevenlabs"
)

// Provider is the slice of the TTS provider API the services need.
// Satisfied by *elevenlabs.Client, faked in tests.
type Provider interface {
	Clone(ctx context.Context, filePath, name string) (string, error)
	Delete(ctx context.Context, voiceID string) error
	Synthesize(ctx context.Context, voiceID, text string, settings elevenlabs.VoiceSettings) ([]byte, error)
}
