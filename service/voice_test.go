package service

import (
	"context"
	"testing"

	"bitwise74/voice-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoiceCreateAndGetMine(t *testing.T) {
	db := testDB(t)
	store := newFakeStore()
	provider := newFakeProvider()
	voices := NewVoices(db, store, provider)

	created, err := voices.Create(context.Background(), "user1", "/tmp/sample.mp3", 960*1024)
	require.NoError(t, err)

	assert.Equal(t, "voice-abc123", created.ProviderVoiceID)
	assert.Equal(t, model.VoiceStatusReady, created.Status)
	assert.Equal(t, 60, created.DurationSeconds)
	assert.Contains(t, created.AudioFileURL, "voices/user1_")

	ok, err := store.Exists(context.Background(), created.AudioFileURL)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := voices.GetMine("user1")
	require.NoError(t, err)
	assert.Equal(t, created.ProviderVoiceID, got.ProviderVoiceID)
	assert.Equal(t, created.Status, got.Status)
}

func TestVoiceCreateConflict(t *testing.T) {
	db := testDB(t)
	provider := newFakeProvider()
	voices := NewVoices(db, newFakeStore(), provider)

	_, err := voices.Create(context.Background(), "user1", "/tmp/sample.mp3", 1024)
	require.NoError(t, err)

	_, err = voices.Create(context.Background(), "user1", "/tmp/other.mp3", 1024)
	assert.ErrorIs(t, err, ErrVoiceExists)
	assert.Equal(t, 1, provider.cloneCalls)
}

func TestVoiceCreateProviderFailure(t *testing.T) {
	db := testDB(t)
	store := newFakeStore()
	provider := newFakeProvider()
	provider.cloneErr = errBoom
	voices := NewVoices(db, store, provider)

	_, err := voices.Create(context.Background(), "user1", "/tmp/sample.mp3", 1024)

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)

	// Nothing may be left behind when the clone call fails
	assert.Empty(t, store.files)

	var count int64
	require.NoError(t, db.Model(&model.Voice{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestVoiceCreateStorageFailureUndoesClone(t *testing.T) {
	db := testDB(t)
	store := newFakeStore()
	store.uploadErr = errBoom
	provider := newFakeProvider()
	voices := NewVoices(db, store, provider)

	_, err := voices.Create(context.Background(), "user1", "/tmp/sample.mp3", 1024)
	require.Error(t, err)

	assert.Equal(t, []string{"voice-abc123"}, provider.deleted)

	var count int64
	require.NoError(t, db.Model(&model.Voice{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestVoiceStatusTransitions(t *testing.T) {
	db := testDB(t)
	voices := NewVoices(db, newFakeStore(), newFakeProvider())

	status, err := voices.Status("user1")
	require.NoError(t, err)
	assert.Equal(t, "none", status.Status)
	assert.Empty(t, status.ProviderVoiceID)

	_, err = voices.Create(context.Background(), "user1", "/tmp/sample.mp3", 1024)
	require.NoError(t, err)

	status, err = voices.Status("user1")
	require.NoError(t, err)
	assert.Equal(t, model.VoiceStatusReady, status.Status)
	assert.Equal(t, "voice-abc123", status.ProviderVoiceID)
	require.NotNil(t, status.CreatedAt)
}

func TestVoiceDeleteCascades(t *testing.T) {
	db := testDB(t)
	store := newFakeStore()
	provider := newFakeProvider()
	voices := NewVoices(db, store, provider)
	audio := NewAudio(db, store, provider)
	ctx := context.Background()

	created, err := voices.Create(ctx, "user1", "/tmp/sample.mp3", 1024)
	require.NoError(t, err)

	_, err = audio.Generate(ctx, "user1", "first clip", nil, nil)
	require.NoError(t, err)
	_, err = audio.Generate(ctx, "user1", "second clip", nil, nil)
	require.NoError(t, err)

	require.NoError(t, voices.Delete(ctx, "user1"))

	// Provider clone, sample file, audio rows and audio files all gone
	assert.Equal(t, []string{created.ProviderVoiceID}, provider.deleted)
	assert.Empty(t, store.files)

	var count int64
	require.NoError(t, db.Model(&model.GeneratedAudio{}).Count(&count).Error)
	assert.Zero(t, count)

	_, err = voices.GetMine("user1")
	assert.ErrorIs(t, err, ErrVoiceNotFound)

	page, err := audio.History("user1", 50, 0)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Zero(t, page.Total)
}

func TestVoiceDeleteBestEffortCleanup(t *testing.T) {
	db := testDB(t)
	store := newFakeStore()
	provider := newFakeProvider()
	voices := NewVoices(db, store, provider)

	_, err := voices.Create(context.Background(), "user1", "/tmp/sample.mp3", 1024)
	require.NoError(t, err)

	// Provider and file store both fail, the row deletion must still run
	provider.deleteErr = errBoom
	store.deleteErr = errBoom

	require.NoError(t, voices.Delete(context.Background(), "user1"))

	_, err = voices.GetMine("user1")
	assert.ErrorIs(t, err, ErrVoiceNotFound)
}

func TestVoiceDeleteNotFound(t *testing.T) {
	db := testDB(t)
	voices := NewVoices(db, newFakeStore(), newFakeProvider())

	err := voices.Delete(context.Background(), "user1")
	assert.ErrorIs(t, err, ErrVoiceNotFound)
}

func TestVoiceSecondUserUnaffected(t *testing.T) {
	db := testDB(t)
	voices := NewVoices(db, newFakeStore(), newFakeProvider())
	ctx := context.Background()

	_, err := voices.Create(ctx, "user1", "/tmp/sample.mp3", 1024)
	require.NoError(t, err)

	// One voice per user, not one voice overall
	_, err = voices.Create(ctx, "user2", "/tmp/other.mp3", 1024)
	require.NoError(t, err)

	require.NoError(t, voices.Delete(ctx, "user1"))

	_, err = voices.GetMine("user2")
	assert.NoError(t, err)
}
