package vault

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Vault represents the managed storage directory for posa.
// It owns the collection blob and the photo directory every cat and
// encounter record points into.
type Vault struct {
	RootPath   string
	ImagesPath string
	ConfigPath string
}

// CollectionFile is the single blob holding every cat record.
const CollectionFile = "cats.json"

// ImagesDir is the managed photo directory beneath the vault root.
const ImagesDir = "cat_images"

// New creates a new Vault instance with XDG-compliant paths
func New() (*Vault, error) {
	rootPath, rootErr := getVaultRoot()
	configPath, configErr := getConfigPath()
	if rootErr != nil {
		return nil, fmt.Errorf("failed to determine vault root: %w", rootErr)
	}
	if configErr != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", configErr)
	}

	return &Vault{
		RootPath:   rootPath,
		ImagesPath: filepath.Join(rootPath, ImagesDir),
		ConfigPath: configPath,
	}, nil
}

// getVaultRoot returns the vault root directory path
// Follows XDG Base Directory specification on Unix and uses AppData on Windows
func getVaultRoot() (string, error) {
	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return filepath.Join(xdgDataHome, "posa"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "posa"), nil
	}

	return filepath.Join(homeDir, ".local", "share", "posa"), nil
}

func getConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "posa", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "posa-config", "config.yaml"), nil
	}

	return filepath.Join(homeDir, ".config", "posa", "config.yaml"), nil
}

// Initialize creates the vault directory structure if it doesn't exist
func (v *Vault) Initialize() error {
	directories := []string{
		v.RootPath,
		v.ImagesPath,
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// Exists checks if the vault has been initialized
func (v *Vault) Exists() bool {
	info, err := os.Stat(v.RootPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// CollectionPath returns the path of the persisted collection blob
func (v *Vault) CollectionPath() string {
	return filepath.Join(v.RootPath, CollectionFile)
}

// GetImagePath returns the full path for a photo file inside the
// managed directory
func (v *Vault) GetImagePath(filename string) string {
	return filepath.Join(v.ImagesPath, filename)
}

// Contains reports whether the given path or file URI lies inside the
// managed photo directory. References outside it belong to other apps'
// storage and must never be deleted by posa.
func (v *Vault) Contains(path string) bool {
	p := StripFileScheme(path)
	if p == "" {
		return false
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(v.ImagesPath, abs)
	if err != nil {
		return false
	}
	return rel != ".." && rel != "." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// NewImageFilename generates a fresh filename for an imported photo:
// millisecond timestamp plus the extension inferred from the source URI.
// Sources without a recognizable extension fall back to jpg.
func (v *Vault) NewImageFilename(srcURI string) string {
	return fmt.Sprintf("%d.%s", time.Now().UnixMilli(), inferExtension(srcURI))
}

// StripFileScheme converts a file:// URI to a plain path. Other inputs
// are returned unchanged.
func StripFileScheme(uri string) string {
	if !strings.HasPrefix(uri, "file://") {
		return uri
	}
	if u, err := url.Parse(uri); err == nil && u.Path != "" {
		return u.Path
	}
	return strings.TrimPrefix(uri, "file://")
}

func inferExtension(srcURI string) string {
	trimmed := srcURI
	if i := strings.IndexAny(trimmed, "?#"); i >= 0 {
		trimmed = trimmed[:i]
	}
	ext := strings.TrimPrefix(filepath.Ext(trimmed), ".")
	if ext == "" || len(ext) > 5 {
		return "jpg"
	}
	return strings.ToLower(ext)
}
