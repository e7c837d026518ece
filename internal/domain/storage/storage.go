package storage

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("stored file not found")

// ProviderMinio tags LoanFile rows with the backing provider.
const ProviderMinio = "minio"

// Object is a streamed download from the provider.
type Object struct {
	Reader      io.ReadCloser
	Size        int64
	ContentType string
	Name        string
}

// FileStorage is the document storage provider: opaque file identifiers,
// grouped into per-loan folders, no built-in versioning.
type FileStorage interface {
	// Upload stores the content under the given folder and returns the
	// opaque file identifier to retrieve it by.
	Upload(ctx context.Context, folder, name string, r io.Reader, size int64, contentType string) (string, error)
	Download(ctx context.Context, fileID string) (*Object, error)
}
