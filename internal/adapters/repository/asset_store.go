package repository

import (
	"context"
	"os"
	"path/filepath"

	"github.com/apex/log"

	"github.com/posa-app/posa-cli/internal/core/ports"
	"github.com/posa-app/posa-cli/pkg/vault"
)

// FileAssetStore is the filesystem implementation of the managed photo
// directory.
type FileAssetStore struct {
	vault *vault.Vault
}

// NewFileAssetStore creates an asset store over the vault's image directory
func NewFileAssetStore(v *vault.Vault) *FileAssetStore {
	return &FileAssetStore{vault: v}
}

// Ensure it implements the interface
var _ ports.AssetStore = (*FileAssetStore)(nil)

// Dir returns the managed directory path
func (s *FileAssetStore) Dir() string {
	return s.vault.ImagesPath
}

// Exists reports whether the path names a regular file. It never errors.
func (s *FileAssetStore) Exists(path string) bool {
	info, err := os.Stat(vault.StripFileScheme(path))
	return err == nil && !info.IsDir()
}

// List returns the filenames currently present in the managed directory.
// A missing directory is an empty listing, not an error.
func (s *FileAssetStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.vault.ImagesPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// Delete removes a single file
func (s *FileAssetStore) Delete(ctx context.Context, path string) error {
	return os.Remove(vault.StripFileScheme(path))
}

// EnsureDir creates the managed directory tree. An already existing
// directory and a platform-level creation denial are both non-fatal.
func (s *FileAssetStore) EnsureDir() {
	if err := os.MkdirAll(s.vault.ImagesPath, 0755); err != nil {
		log.WithError(err).WithField("dir", s.vault.ImagesPath).Warn("could not create image directory")
	}
}

// PathFor returns the full path of a filename inside the managed directory
func (s *FileAssetStore) PathFor(filename string) string {
	return filepath.Join(s.vault.ImagesPath, filename)
}
