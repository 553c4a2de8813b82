package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/posa-app/posa-cli/internal/core/domain"
	"github.com/posa-app/posa-cli/internal/core/ports"
)

// JSONStore persists the whole cat collection as a single JSON blob on
// disk. There is no schema version: fields absent from older blobs are
// defaulted by the domain layer at read time.
type JSONStore struct {
	path string
	mu   sync.RWMutex
}

// NewJSONStore creates a store backed by the file at path
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Ensure it implements the interface
var _ ports.CollectionStore = (*JSONStore)(nil)

// ReadAll loads the stored collection. A missing file means the
// collection was never written and yields (nil, nil).
func (s *JSONStore) ReadAll(ctx context.Context) ([]domain.Cat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read collection: %w", err)
	}

	var cats []domain.Cat
	if err := json.Unmarshal(data, &cats); err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrParse, err)
	}

	return cats, nil
}

// WriteAll serializes the entire collection and overwrites the blob.
// No partial writes of sub-objects ever happen.
func (s *JSONStore) WriteAll(ctx context.Context, cats []domain.Cat) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cats == nil {
		cats = []domain.Cat{}
	}

	data, err := json.MarshalIndent(cats, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ports.ErrWrite, err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", ports.ErrWrite, err)
	}

	return nil
}
