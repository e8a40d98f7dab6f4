package storage

import (
	"context"
	"errors"
	"io"
)

var ErrFileNotFound = errors.New("file not found")

// FileStorage keeps uploaded files under slash-separated keys.
type FileStorage interface {
	// Upload stores file under path and returns the cleaned key and the bytes written
	Upload(ctx context.Context, file io.Reader, path string) (string, int64, error)

	// Download opens a stored file; missing files return ErrFileNotFound
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file; deleting a missing file is not an error
	Delete(ctx context.Context, path string) error
}
