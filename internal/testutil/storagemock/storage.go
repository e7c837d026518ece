package storagemock

import (
	"context"
	"io"

	"pawnshop-backend/internal/domain/storage"
)

// Store is a function-backed mock that satisfies storage.FileStorage.
type Store struct {
	UploadFn   func(ctx context.Context, folder, name string, r io.Reader, size int64, contentType string) (string, error)
	DownloadFn func(ctx context.Context, fileID string) (*storage.Object, error)
}

var _ storage.FileStorage = (*Store)(nil)

func (m *Store) Upload(ctx context.Context, folder, name string, r io.Reader, size int64, contentType string) (string, error) {
	if m.UploadFn != nil {
		return m.UploadFn(ctx, folder, name, r, size, contentType)
	}
	return folder + "/" + name, nil
}

func (m *Store) Download(ctx context.Context, fileID string) (*storage.Object, error) {
	if m.DownloadFn != nil {
		return m.DownloadFn(ctx, fileID)
	}
	return nil, storage.ErrNotFound
}
