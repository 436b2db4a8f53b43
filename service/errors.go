// Package service implements the voice clone lifecycle and audio
// generation on top of the database, the file store and the TTS provider
package service

import "errors"

var (
	ErrVoiceExists   = errors.New("a voice clone already exists for this user")
	ErrVoiceNotFound = errors.New("no voice clone found")
	ErrVoiceNotReady = errors.New("voice clone is still processing")
	ErrAudioNotFound = errors.New("audio not found")
)

// UpstreamError marks a failure that came from the TTS provider so the
// API layer can pass its message through instead of masking it
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
