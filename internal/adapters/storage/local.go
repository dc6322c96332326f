package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// PublicPrefix is the URL path local uploads are served under.
const PublicPrefix = "/uploads"

// LocalStore writes avatars into a directory served statically by the API.
type LocalStore struct {
	dir string
	now func() time.Time
}

var _ AvatarStore = (*LocalStore)(nil)

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, now: time.Now}, nil
}

func (s *LocalStore) Dir() string {
	return s.dir
}

// Save stores the file as <unixMillis>-<name> with whitespace replaced by
// dashes.
func (s *LocalStore) Save(ctx context.Context, userID uint, filename, contentType string, size int64, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%d-%s", s.now().UnixMilli(), safeName(filename))

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create avatar file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("failed to write avatar file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close avatar file: %w", err)
	}
	return PublicPrefix + "/" + name, nil
}

func (s *LocalStore) Delete(ctx context.Context, url string) error {
	if !strings.HasPrefix(url, PublicPrefix+"/") {
		return nil
	}
	name := filepath.Base(strings.TrimPrefix(url, PublicPrefix+"/"))
	if name == "." || name == "/" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete avatar file: %w", err)
	}
	return nil
}

func safeName(filename string) string {
	filename = filepath.Base(filename)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '-'
		}
		if r == '/' || r == '\\' {
			return '-'
		}
		return r
	}, filename)
}
