// Package storage keeps uploaded avatars on local disk or in MinIO.
package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"
)

// AvatarStore persists avatar images and returns the URL they are served
// from.
type AvatarStore interface {
	Save(ctx context.Context, userID uint, filename, contentType string, size int64, r io.Reader) (string, error)
	// Delete removes an object previously returned by Save. URLs the store
	// does not own are ignored.
	Delete(ctx context.Context, url string) error
}

func extension(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}
