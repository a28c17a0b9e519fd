package storage

import (
	"context"
	"io"
)

// Storage defines the interface for file storage operations
type Storage interface {
	// Save stores a file under the given key
	Save(ctx context.Context, key string, reader io.Reader) error

	// Get retrieves a file by key
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a file by key
	Delete(ctx context.Context, key string) error

	// Exists checks if a file exists
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns the public URL for the key
	GetURL(key string) string
}

// Config holds storage configuration
type Config struct {
	BasePath string // корень локального хранилища
	BaseURL  string // публичный префикс отдачи файлов
}
