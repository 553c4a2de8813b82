package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/posa-app/posa-cli/internal/core/domain"
	"github.com/posa-app/posa-cli/internal/core/ports"
	"github.com/posa-app/posa-cli/pkg/vault"
)

// User-visible messages for the shared error slot.
const (
	loadErrMsg = "Failed to load your cats. Please restart the app."
	saveErrMsg = "Failed to save data. Please try again."
)

// CatService owns the authoritative in-memory cat collection and keeps
// it in lockstep with the persisted blob: every mutator updates memory
// first, then writes the whole collection through to the store.
// Persistence failures surface on the error slot but are not rolled
// back, so memory and disk can diverge until the next successful write.
type CatService struct {
	store      ports.CollectionStore
	cleaner    *CleanupService
	dateFormat string
	now        func() time.Time

	mu      sync.RWMutex
	cats    []domain.Cat
	loading bool
	lastErr string

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// NewCatService creates a cat service over the given persistence
// gateway and cleanup capability. dateFormat is the layout used to
// stamp new encounters.
func NewCatService(store ports.CollectionStore, cleaner *CleanupService, dateFormat string) *CatService {
	return &CatService{
		store:      store,
		cleaner:    cleaner,
		dateFormat: dateFormat,
		now:        time.Now,
		loading:    true,
		subs:       make(map[int]func()),
	}
}

// CreateCatRequest carries the fields for a new cat and its required
// first encounter.
type CreateCatRequest struct {
	Name     string
	EyeColor string
	FurColor string
	Behavior string
	ImageURI string

	// First encounter
	Location string
	Details  string
}

// UpdateCatRequest carries a partial update; nil fields are left
// untouched.
type UpdateCatRequest struct {
	Name     *string
	EyeColor *string
	FurColor *string
	Behavior *string
	ImageURI *string
}

// EncounterDraft carries the fields for a new encounter. A zero Label
// lets the cat's counter assign one.
type EncounterDraft struct {
	Location string
	Details  string
	Photo    string
	Label    int
}

// UpdateEncounterRequest carries a partial encounter update. The id and
// label are immutable and cannot appear here.
type UpdateEncounterRequest struct {
	Date     *string
	Location *string
	Details  *string
	Photo    *string
}

// Load populates the in-memory collection from the store. On failure
// the collection stays empty and the error slot carries a restart
// message; the process keeps running either way.
func (s *CatService) Load(ctx context.Context) error {
	cats, err := s.store.ReadAll(ctx)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.cats = nil
		s.lastErr = loadErrMsg
		s.mu.Unlock()
		s.notify()
		return fmt.Errorf("failed to load collection: %w", err)
	}

	for i := range cats {
		cats[i].Normalize()
	}
	s.cats = cats
	s.lastErr = ""
	s.mu.Unlock()

	s.notify()
	return nil
}

// Cats returns a snapshot of the collection
func (s *CatService) Cats() []domain.Cat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Cat, len(s.cats))
	copy(out, s.cats)
	return out
}

// Get returns the cat with the given id
func (s *CatService) Get(catID string) (domain.Cat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.cats {
		if s.cats[i].ID == catID {
			return s.cats[i], nil
		}
	}
	return domain.Cat{}, fmt.Errorf("%w: cat %s", domain.ErrNotFound, catID)
}

// Loading reports whether the initial load has finished
func (s *CatService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// LastError returns the user-visible message from the most recent
// failed load or write, or "" when the stores agree.
func (s *CatService) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Create validates the draft, appends the new cat (with its first
// encounter labeled 1) to the collection, and persists. The in-memory
// update sticks even when the write fails.
func (s *CatService) Create(ctx context.Context, req CreateCatRequest) (domain.Cat, error) {
	first, err := domain.NewEncounter(s.stamp(), req.Location, req.Details, req.ImageURI)
	if err != nil {
		return domain.Cat{}, err
	}

	cat, err := domain.NewCat(req.Name, req.EyeColor, req.FurColor, req.Behavior, req.ImageURI, first)
	if err != nil {
		return domain.Cat{}, err
	}

	s.mu.Lock()
	s.cats = append(s.cats, *cat)
	err = s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify()
	return *cat, err
}

// Delete removes the cat and best-effort reclaims its photos. The
// logical delete and the persistence write proceed regardless of the
// asset-deletion outcome.
func (s *CatService) Delete(ctx context.Context, catID string) error {
	s.mu.Lock()
	idx := s.indexOfLocked(catID)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: cat %s", domain.ErrNotFound, catID)
	}

	removed := s.cats[idx]
	s.cats = append(s.cats[:idx], s.cats[idx+1:]...)

	s.reclaimLocked(ctx, removed.PhotoReferences()...)

	err := s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify()
	return err
}

// Update merges the given fields into the cat record. Replacing the
// profile image safe-deletes the previous one, unless some encounter
// still references the same file.
func (s *CatService) Update(ctx context.Context, catID string, req UpdateCatRequest) error {
	s.mu.Lock()
	idx := s.indexOfLocked(catID)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: cat %s", domain.ErrNotFound, catID)
	}

	cat := &s.cats[idx]
	oldImage := cat.ImageURI

	if req.Name != nil {
		if err := domain.ValidateCat(*req.Name, cat.ImageURI); err != nil {
			s.mu.Unlock()
			return err
		}
		cat.Name = *req.Name
	}
	if req.EyeColor != nil {
		cat.EyeColor = *req.EyeColor
	}
	if req.FurColor != nil {
		cat.FurColor = *req.FurColor
	}
	if req.Behavior != nil {
		cat.Behavior = *req.Behavior
	}
	if req.ImageURI != nil && *req.ImageURI != "" {
		cat.ImageURI = *req.ImageURI
	}

	if cat.ImageURI != oldImage {
		s.reclaimLocked(ctx, oldImage)
	}

	err := s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify()
	return err
}

// AddEncounter appends an encounter to the cat's history, assigning its
// label from the cat's counter, and persists.
func (s *CatService) AddEncounter(ctx context.Context, catID string, draft EncounterDraft) (domain.Encounter, error) {
	enc, err := domain.NewEncounter(s.stamp(), draft.Location, draft.Details, draft.Photo)
	if err != nil {
		return domain.Encounter{}, err
	}
	enc.Label = draft.Label

	s.mu.Lock()
	idx := s.indexOfLocked(catID)
	if idx < 0 {
		s.mu.Unlock()
		return domain.Encounter{}, fmt.Errorf("%w: cat %s", domain.ErrNotFound, catID)
	}

	label := s.cats[idx].AppendEncounter(enc)
	enc.Label = label

	err = s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify()
	return enc, err
}

// UpdateEncounter replaces the matching encounter's mutable fields.
// When the photo changes, the previous one is safe-deleted once no
// other record references it.
func (s *CatService) UpdateEncounter(ctx context.Context, catID, encounterID string, req UpdateEncounterRequest) error {
	s.mu.Lock()
	idx := s.indexOfLocked(catID)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: cat %s", domain.ErrNotFound, catID)
	}

	cat := &s.cats[idx]
	encIdx := cat.FindEncounter(encounterID)
	if encIdx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: encounter %s", domain.ErrNotFound, encounterID)
	}

	enc := &cat.Encounters[encIdx]
	oldPhoto := enc.Photo

	if req.Date != nil {
		enc.Date = *req.Date
	}
	if req.Location != nil {
		enc.Location = *req.Location
	}
	if req.Details != nil {
		enc.Details = *req.Details
	}
	if req.Photo != nil && *req.Photo != "" {
		enc.Photo = *req.Photo
	}

	if enc.Photo != oldPhoto {
		s.reclaimLocked(ctx, oldPhoto)
	}

	err := s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify()
	return err
}

// DeleteEncounter removes the matching encounter and best-effort
// reclaims its photo when nothing else references it.
func (s *CatService) DeleteEncounter(ctx context.Context, catID, encounterID string) error {
	s.mu.Lock()
	idx := s.indexOfLocked(catID)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: cat %s", domain.ErrNotFound, catID)
	}

	cat := &s.cats[idx]
	encIdx := cat.FindEncounter(encounterID)
	if encIdx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: encounter %s", domain.ErrNotFound, encounterID)
	}

	photo := cat.Encounters[encIdx].Photo
	cat.Encounters = append(cat.Encounters[:encIdx], cat.Encounters[encIdx+1:]...)

	s.reclaimLocked(ctx, photo)

	err := s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify()
	return err
}

// Reap runs the orphan sweep against the current collection snapshot
func (s *CatService) Reap(ctx context.Context) int {
	return s.cleaner.ReapOrphans(ctx, s.Cats())
}

// Subscribe registers an observer called after every collection change.
// The returned function tears the observer down.
func (s *CatService) Subscribe(fn func()) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// persistLocked writes the whole collection through to the store. The
// caller holds s.mu. The in-memory change is kept even when the write
// fails; the failure is recorded on the error slot.
func (s *CatService) persistLocked(ctx context.Context) error {
	if err := s.store.WriteAll(ctx, s.cats); err != nil {
		s.lastErr = saveErrMsg
		return fmt.Errorf("failed to persist collection: %w", err)
	}
	s.lastErr = ""
	return nil
}

// reclaimLocked safe-deletes the given photo paths, skipping any that
// the collection still references. A cat's profile image and its first
// encounter photo start out as the same file, so a path dropped by one
// record can still be live through another. The caller holds s.mu, so
// the reference set reflects the mutation just applied.
func (s *CatService) reclaimLocked(ctx context.Context, paths ...string) {
	active := s.cleaner.ActiveReferences(s.cats)
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, live := active[vault.StripFileScheme(p)]; live {
			continue
		}
		s.cleaner.SafeDelete(ctx, p)
	}
}

func (s *CatService) indexOfLocked(catID string) int {
	for i := range s.cats {
		if s.cats[i].ID == catID {
			return i
		}
	}
	return -1
}

// stamp returns the capture date string for a new encounter. It is
// formatted once and stored as-is, never re-derived.
func (s *CatService) stamp() string {
	return s.now().Format(s.dateFormat)
}

func (s *CatService) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
