package mocks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/posa-app/posa-cli/internal/core/domain"
)

// MockCollectionStore is an in-memory CollectionStore for testing.
// FailRead/FailWrite inject storage errors.
type MockCollectionStore struct {
	mu        sync.RWMutex
	blob      []domain.Cat
	written   bool
	Writes    int
	FailRead  error
	FailWrite error
}

// NewMockCollectionStore creates a new empty mock store
func NewMockCollectionStore() *MockCollectionStore {
	return &MockCollectionStore{}
}

// ReadAll returns the stored collection, or (nil, nil) if never written
func (m *MockCollectionStore) ReadAll(ctx context.Context) ([]domain.Cat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.FailRead != nil {
		return nil, m.FailRead
	}
	if !m.written {
		return nil, nil
	}
	out := make([]domain.Cat, len(m.blob))
	copy(out, m.blob)
	return out, nil
}

// WriteAll overwrites the stored collection
func (m *MockCollectionStore) WriteAll(ctx context.Context, cats []domain.Cat) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Writes++
	if m.FailWrite != nil {
		return m.FailWrite
	}
	m.blob = make([]domain.Cat, len(cats))
	copy(m.blob, cats)
	m.written = true
	return nil
}

// Stored returns a copy of the last successfully written collection
func (m *MockCollectionStore) Stored() []domain.Cat {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Cat, len(m.blob))
	copy(out, m.blob)
	return out
}

// Seed sets the stored collection as if it had been written previously
func (m *MockCollectionStore) Seed(cats []domain.Cat) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blob = make([]domain.Cat, len(cats))
	copy(m.blob, cats)
	m.written = true
}

// MockAssetStore is an in-memory AssetStore for testing. Paths in
// FailDelete produce errors without removing the file.
type MockAssetStore struct {
	mu         sync.RWMutex
	dir        string
	files      map[string]bool
	Deleted    []string
	FailDelete map[string]bool
}

// NewMockAssetStore creates a mock store rooted at dir
func NewMockAssetStore(dir string) *MockAssetStore {
	return &MockAssetStore{
		dir:        dir,
		files:      make(map[string]bool),
		FailDelete: make(map[string]bool),
	}
}

// Dir returns the managed directory path
func (m *MockAssetStore) Dir() string {
	return m.dir
}

// Put records a file as present in the managed directory
func (m *MockAssetStore) Put(filename string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := filepath.Join(m.dir, filename)
	m.files[path] = true
	return path
}

// Exists reports whether the file is present
func (m *MockAssetStore) Exists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.files[path]
}

// List returns the filenames currently present
func (m *MockAssetStore) List(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var names []string
	for path := range m.files {
		names = append(names, filepath.Base(path))
	}
	return names, nil
}

// Delete removes a file, honoring injected failures
func (m *MockAssetStore) Delete(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailDelete[path] {
		return fmt.Errorf("delete %s: injected failure", path)
	}
	if !m.files[path] {
		return fmt.Errorf("delete %s: %w", path, os.ErrNotExist)
	}
	delete(m.files, path)
	m.Deleted = append(m.Deleted, path)
	return nil
}

// EnsureDir is a no-op for the mock
func (m *MockAssetStore) EnsureDir() {}
