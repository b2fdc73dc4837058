package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"tasktracker/internal/config"
)

// ObjectStorage holds attachment bytes outside the database. Upload
// returns the public URL of the stored object.
type ObjectStorage interface {
	Upload(ctx context.Context, content []byte, filename, contentType string) (string, error)
	Delete(ctx context.Context, fileURL string) error
}

// MinIOStorage stores objects in a MinIO (S3-compatible) bucket.
type MinIOStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinIOStorage connects to the configured endpoint and verifies the
// bucket exists. A missing bucket is a deployment error, not something
// to create on the fly.
func NewMinIOStorage(ctx context.Context, cfg config.StorageConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %q does not exist", cfg.Bucket)
	}

	return &MinIOStorage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

func (s *MinIOStorage) Upload(ctx context.Context, content []byte, filename, contentType string) (string, error) {
	key := uuid.New().String() + "-" + filename
	_, err := s.client.PutObject(ctx, s.bucket, key,
		bytes.NewReader(content), int64(len(content)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", fmt.Errorf("upload object %q: %w", key, err)
	}
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key), nil
}

func (s *MinIOStorage) Delete(ctx context.Context, fileURL string) error {
	key := s.keyFromURL(fileURL)
	if key == "" {
		return fmt.Errorf("cannot derive object key from url %q", fileURL)
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete object %q: %w", key, err)
	}
	return nil
}

// keyFromURL extracts the object key from a public URL produced by
// Upload.
func (s *MinIOStorage) keyFromURL(fileURL string) string {
	marker := "/" + s.bucket + "/"
	idx := strings.LastIndex(fileURL, marker)
	if idx < 0 {
		return ""
	}
	return fileURL[idx+len(marker):]
}
