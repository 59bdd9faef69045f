package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Get when no object exists at the path.
var ErrNotFound = errors.New("file not found")

// Storage stores generated documents (invoice PDFs) and uploaded images (hotel logo).
type Storage interface {
	// Save writes content under the relative path, replacing any existing object.
	Save(ctx context.Context, path string, content io.Reader, contentType string) error

	// Get opens the object at path. The caller must close the reader.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the object at path. Missing objects are not an error.
	Delete(ctx context.Context, path string) error

	// URL returns the address clients use to fetch the object.
	URL(path string) string
}
