package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalStore(t *testing.T) *Local {
	t.Helper()

	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	return l
}

func sourceFile(t *testing.T, content string) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), "source.mp3")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLocalUpload(t *testing.T) {
	l := newLocalStore(t)
	ctx := context.Background()

	url, err := l.Upload(ctx, sourceFile(t, "audio bytes"), "voices/user1_123.mp3")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/voices/user1_123.mp3", url)

	data, err := os.ReadFile(filepath.Join(l.BaseDir, "voices", "user1_123.mp3"))
	require.NoError(t, err)
	assert.Equal(t, "audio bytes", string(data))

	ok, err := l.Exists(ctx, url)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLocalDelete(t *testing.T) {
	l := newLocalStore(t)
	ctx := context.Background()

	url, err := l.Upload(ctx, sourceFile(t, "audio bytes"), "audio/audio_user1_456.mp3")
	require.NoError(t, err)

	deleted, err := l.Delete(ctx, url)
	require.NoError(t, err)
	assert.True(t, deleted)

	ok, err := l.Exists(ctx, url)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalDeleteAbsentIsNotAnError(t *testing.T) {
	l := newLocalStore(t)

	deleted, err := l.Delete(context.Background(), "/uploads/voices/never_uploaded.mp3")
	require.NoError(t, err)
	assert.False(t, deleted)
}
