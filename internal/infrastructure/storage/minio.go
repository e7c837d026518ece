package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"pawnshop-backend/internal/config"
	domstorage "pawnshop-backend/internal/domain/storage"
)

// MinioStorage implements the document storage provider on a single bucket.
// File identifiers are full object keys (folder prefix + random name), so a
// row that references a retired contract can still fetch its file.
type MinioStorage struct {
	client *minio.Client
	bucket string
}

func NewMinioStorage(cfg *config.Minio) (*MinioStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return &MinioStorage{client: client, bucket: cfg.Bucket}, nil
}

// EnsureBucket creates the bucket if it doesn't exist
func (s *MinioStorage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

func (s *MinioStorage) Upload(ctx context.Context, folder, name string, r io.Reader, size int64, contentType string) (string, error) {
	objectName := path.Join(folder, uuid.NewString()+path.Ext(name))
	_, err := s.client.PutObject(ctx, s.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"original-name": name,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	return objectName, nil
}

func (s *MinioStorage) Download(ctx context.Context, fileID string) (*domstorage.Object, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, fileID, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	// GetObject is lazy; Stat surfaces missing keys before we stream.
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
			return nil, domstorage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to stat object: %w", err)
	}
	name := info.UserMetadata["Original-Name"]
	if name == "" {
		name = path.Base(fileID)
	}
	return &domstorage.Object{
		Reader:      obj,
		Size:        info.Size,
		ContentType: info.ContentType,
		Name:        name,
	}, nil
}

var _ domstorage.FileStorage = (*MinioStorage)(nil)
