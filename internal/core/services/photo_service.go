package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/apex/log"

	"github.com/posa-app/posa-cli/internal/core/domain"
	"github.com/posa-app/posa-cli/internal/core/ports"
	"github.com/posa-app/posa-cli/pkg/vault"
)

// PhotoSource is the opaque result of the external capture/selection
// pipeline: a displayable reference plus, optionally, raw bytes.
type PhotoSource struct {
	URI  string
	Data []byte
}

// persistStrategy is one attempt at getting the source photo onto disk.
type persistStrategy struct {
	name string
	run  func(ctx context.Context, src PhotoSource, dest string) error
}

// PhotoService copies external photos into the managed directory. It
// tries an ordered chain of strategies until one succeeds; content
// URIs, unreadable files, and flaky network sources each have a
// fallback further down the chain.
type PhotoService struct {
	vault  *vault.Vault
	assets ports.AssetStore
	client *http.Client
}

// NewPhotoService creates a new photo import service
func NewPhotoService(v *vault.Vault, assets ports.AssetStore) *PhotoService {
	return &PhotoService{
		vault:  v,
		assets: assets,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Import persists the source photo under a fresh timestamp filename in
// the managed directory and returns the new path.
func (s *PhotoService) Import(ctx context.Context, src PhotoSource) (string, error) {
	if strings.TrimSpace(src.URI) == "" && len(src.Data) == 0 {
		return "", fmt.Errorf("%w: photo source is empty", domain.ErrValidation)
	}

	s.assets.EnsureDir()
	dest := s.vault.GetImagePath(s.vault.NewImageFilename(src.URI))

	strategies := []persistStrategy{
		{"copy", s.copyFile},
		{"download", s.download},
		{"write-bytes", s.writeProvidedBytes},
		{"reread-source", s.rereadSource},
		{"fetch", s.fetchAndRewrite},
	}

	for _, strat := range strategies {
		if err := strat.run(ctx, src, dest); err != nil {
			log.WithError(err).WithField("strategy", strat.name).Debug("photo persist attempt failed")
			continue
		}
		return dest, nil
	}

	return "", fmt.Errorf("failed to persist photo from %s", src.URI)
}

// copyFile streams a local source file to the destination.
func (s *PhotoService) copyFile(ctx context.Context, src PhotoSource, dest string) error {
	path := vault.StripFileScheme(src.URI)
	if path == "" || strings.Contains(path, "://") {
		return fmt.Errorf("source %q is not a local path", src.URI)
	}

	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		os.Remove(dest)
		return err
	}
	return nil
}

// download streams an http(s) source to the destination.
func (s *PhotoService) download(ctx context.Context, src PhotoSource, dest string) error {
	if !isHTTP(src.URI) {
		return fmt.Errorf("source %q is not downloadable", src.URI)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URI, nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(dest)
		return err
	}
	return nil
}

// writeProvidedBytes writes the raw bytes the capture pipeline handed
// over, when it did.
func (s *PhotoService) writeProvidedBytes(ctx context.Context, src PhotoSource, dest string) error {
	if len(src.Data) == 0 {
		return fmt.Errorf("source carries no raw bytes")
	}
	return os.WriteFile(dest, src.Data, 0644)
}

// rereadSource slurps the whole source file and rewrites it, for
// sources that refuse streaming reads.
func (s *PhotoService) rereadSource(ctx context.Context, src PhotoSource, dest string) error {
	path := vault.StripFileScheme(src.URI)
	if path == "" || strings.Contains(path, "://") {
		return fmt.Errorf("source %q is not a local path", src.URI)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("source %q is empty", src.URI)
	}
	return os.WriteFile(dest, data, 0644)
}

// fetchAndRewrite is the last resort: pull the whole body into memory
// and write it out, accepting any 2xx status.
func (s *PhotoService) fetchAndRewrite(ctx context.Context, src PhotoSource, dest string) error {
	if !isHTTP(src.URI) {
		return fmt.Errorf("source %q is not fetchable", src.URI)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URI, nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("fetch failed with status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("fetch returned an empty body")
	}
	return os.WriteFile(dest, data, 0644)
}

func isHTTP(uri string) bool {
	return strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://")
}
