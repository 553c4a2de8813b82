package ports

import (
	"context"
	"errors"

	"github.com/posa-app/posa-cli/internal/core/domain"
)

var (
	// ErrParse marks a stored collection blob that is not valid
	// serialized data. It propagates to the caller and is never retried.
	ErrParse = errors.New("stored collection is not valid JSON")

	// ErrWrite marks a failed persistence write. The prior blob's fate
	// is storage-dependent and not guaranteed.
	ErrWrite = errors.New("failed to write collection")
)

// CollectionStore defines the port for durable persistence of the whole
// cat collection as one blob.
type CollectionStore interface {
	// ReadAll returns the previously stored collection, or (nil, nil)
	// if nothing was ever written
	ReadAll(ctx context.Context) ([]domain.Cat, error)

	// WriteAll serializes the entire collection and overwrites the
	// stored blob
	WriteAll(ctx context.Context, cats []domain.Cat) error
}

// AssetStore defines the port for the managed photo directory
type AssetStore interface {
	// Dir returns the managed directory path
	Dir() string

	// Exists reports whether the file is present; it never errors
	Exists(path string) bool

	// List returns the filenames currently in the managed directory,
	// empty when the directory does not exist
	List(ctx context.Context) ([]string, error)

	// Delete removes a single file
	Delete(ctx context.Context, path string) error

	// EnsureDir creates the managed directory tree; idempotent, and
	// failures are non-fatal
	EnsureDir()
}
