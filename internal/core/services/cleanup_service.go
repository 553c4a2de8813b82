package services

import (
	"context"
	"strings"

	"github.com/apex/log"

	"github.com/posa-app/posa-cli/internal/core/domain"
	"github.com/posa-app/posa-cli/internal/core/ports"
	"github.com/posa-app/posa-cli/pkg/vault"
)

// CleanupService keeps the managed photo directory consistent with the
// references held by the cat collection. Every path through it is
// best-effort: a failed deletion is logged and swallowed, never
// propagated, so record-level operations always succeed from the
// user's perspective even when disk cleanup fails.
type CleanupService struct {
	vault  *vault.Vault
	assets ports.AssetStore
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(v *vault.Vault, assets ports.AssetStore) *CleanupService {
	return &CleanupService{
		vault:  v,
		assets: assets,
	}
}

// SafeDelete removes a single photo file, guarded:
//  1. no-op on an empty reference,
//  2. no-op on paths outside the managed directory (never delete files
//     the app does not own),
//  3. no-op when the file is already gone,
//  4. failures are logged and swallowed.
func (s *CleanupService) SafeDelete(ctx context.Context, uriOrPath string) {
	if strings.TrimSpace(uriOrPath) == "" {
		return
	}
	if !s.vault.Contains(uriOrPath) {
		return
	}

	path := vault.StripFileScheme(uriOrPath)
	if !s.assets.Exists(path) {
		return
	}

	if err := s.assets.Delete(ctx, path); err != nil {
		log.WithError(err).WithField("path", path).Warn("photo cleanup failed")
	}
}

// ActiveReferences returns the set of every photo reference currently
// in use across the given collection: each cat's profile image and each
// encounter photo, normalized to plain paths. Pure, no side effects.
func (s *CleanupService) ActiveReferences(cats []domain.Cat) map[string]struct{} {
	active := make(map[string]struct{})
	for i := range cats {
		for _, ref := range cats[i].PhotoReferences() {
			active[vault.StripFileScheme(ref)] = struct{}{}
		}
	}
	return active
}

// ReapOrphans removes every file in the managed directory that no cat
// or encounter references. One failing deletion never aborts the sweep
// over the remaining files. Returns the number of files removed.
func (s *CleanupService) ReapOrphans(ctx context.Context, cats []domain.Cat) int {
	names, err := s.assets.List(ctx)
	if err != nil {
		log.WithError(err).Warn("could not list image directory, skipping sweep")
		return 0
	}
	if len(names) == 0 {
		return 0
	}

	active := s.ActiveReferences(cats)

	removed := 0
	for _, name := range names {
		path := s.vault.GetImagePath(name)
		if _, ok := active[path]; ok {
			continue
		}
		if err := s.assets.Delete(ctx, path); err != nil {
			log.WithError(err).WithField("path", path).Warn("could not remove orphaned photo")
			continue
		}
		log.WithField("path", path).Debug("removed orphaned photo")
		removed++
	}
	return removed
}
