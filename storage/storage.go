// Package storage abstracts where audio blobs live. Files are addressed
// by key on upload and by the returned URL afterwards.
package storage

import (
	"context"
	"errors"

	"github.com/spf13/viper"
)

// Store is implemented by every storage backend.
//
// Delete is idempotent: deleting a file that's already gone returns
// (false, nil), not an error.
type Store interface {
	Upload(ctx context.Context, sourcePath, key string) (string, error)
	Delete(ctx context.Context, fileURL string) (bool, error)
	Exists(ctx context.Context, fileURL string) (bool, error)
}

// New returns the backend selected by storage.type
func New() (Store, error) {
	switch viper.GetString("storage.type") {
	case "s3":
		return NewS3()
	case "local":
		return NewLocal(viper.GetString("storage.local_path"))
	}

	return nil, errors.New("invalid storage type provided")
}
