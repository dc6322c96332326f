package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"campus-connect/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOStore keeps avatars in an S3 compatible bucket.
type MinIOStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

var _ AvatarStore = (*MinIOStore)(nil)

// NewMinIOStore connects and makes sure the bucket exists.
func NewMinIOStore(ctx context.Context, cfg config.StorageConfig) (*MinIOStore, error) {
	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.MinIOBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinIOBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinIOStore{
		client:  client,
		bucket:  cfg.MinIOBucket,
		baseURL: fmt.Sprintf("%s/%s", client.EndpointURL().String(), cfg.MinIOBucket),
	}, nil
}

func (s *MinIOStore) Save(ctx context.Context, userID uint, filename, contentType string, size int64, r io.Reader) (string, error) {
	object := ObjectName(userID, filename)
	_, err := s.client.PutObject(ctx, s.bucket, object, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}
	return s.baseURL + "/" + object, nil
}

func (s *MinIOStore) Delete(ctx context.Context, url string) error {
	prefix := s.baseURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, strings.TrimPrefix(url, prefix), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove avatar: %w", err)
	}
	return nil
}

// ObjectName is avatars/<userID>/<uuid><ext>.
func ObjectName(userID uint, filename string) string {
	return fmt.Sprintf("avatars/%d/%s%s", userID, uuid.NewString(), extension(filename))
}
