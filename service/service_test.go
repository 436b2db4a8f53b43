package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"bitwise74/voice-api/elevenlabs"
	"bitwise74/voice-api/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(model.User{}, model.Voice{}, model.GeneratedAudio{}))
	return db
}

type fakeStore struct {
	files     map[string]bool
	uploadErr error
	deleteErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{files: map[string]bool{}}
}

func (f *fakeStore) Upload(_ context.Context, _, key string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}

	url := "/uploads/" + key
	f.files[url] = true
	return url, nil
}

func (f *fakeStore) Delete(_ context.Context, fileURL string) (bool, error) {
	if f.deleteErr != nil {
		return false, f.deleteErr
	}

	if !f.files[fileURL] {
		return false, nil
	}

	delete(f.files, fileURL)
	return true, nil
}

func (f *fakeStore) Exists(_ context.Context, fileURL string) (bool, error) {
	return f.files[fileURL], nil
}

type fakeProvider struct {
	cloneID    string
	cloneErr   error
	cloneCalls int

	deleteErr error
	deleted   []string

	audio        []byte
	synthErr     error
	lastSettings elevenlabs.VoiceSettings
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		cloneID: "voice-abc123",
		audio:   []byte("mp3 audio"),
	}
}

func (f *fakeProvider) Clone(_ context.Context, _, _ string) (string, error) {
	f.cloneCalls++

	if f.cloneErr != nil {
		return "", f.cloneErr
	}

	return f.cloneID, nil
}

func (f *fakeProvider) Delete(_ context.Context, voiceID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}

	f.deleted = append(f.deleted, voiceID)
	return nil
}

func (f *fakeProvider) Synthesize(_ context.Context, _, _ string, settings elevenlabs.VoiceSettings) ([]byte, error) {
	f.lastSettings = settings

	if f.synthErr != nil {
		return nil, f.synthErr
	}

	return f.audio, nil
}

var errBoom = errors.New("boom")
