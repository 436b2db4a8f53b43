package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const localURLPrefix = "/uploads/"

// Local keeps files on disk under a base directory. Meant for
// development, the S3 backend is what production runs on.
type Local struct {
	BaseDir string
}

func NewLocal(baseDir string) (*Local, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory, %w", err)
	}

	return &Local{BaseDir: baseDir}, nil
}

func (l *Local) Upload(_ context.Context, sourcePath, key string) (string, error) {
	dest := filepath.Join(l.BaseDir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("failed to create destination directory, %w", err)
	}

	src, err := os.Open(sourcePath)
	if err != nil {
		return "", fmt.Errorf("failed to open source file, %w", err)
	}
	defer src.Close()

	dst, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file, %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to copy file, %w", err)
	}

	return localURLPrefix + key, nil
}

func (l *Local) Delete(ctx context.Context, fileURL string) (bool, error) {
	ok, err := l.Exists(ctx, fileURL)
	if err != nil {
		return false, err
	}

	if !ok {
		return false, nil
	}

	if err := os.Remove(l.pathFor(fileURL)); err != nil {
		return false, fmt.Errorf("failed to delete file, %w", err)
	}

	return true, nil
}

func (l *Local) Exists(_ context.Context, fileURL string) (bool, error) {
	_, err := os.Stat(l.pathFor(fileURL))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func (l *Local) pathFor(fileURL string) string {
	key := strings.TrimPrefix(fileURL, localURLPrefix)
	return filepath.Join(l.BaseDir, filepath.FromSlash(key))
}
