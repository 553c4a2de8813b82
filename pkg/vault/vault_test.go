package vault

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestVault_GetImagePath(t *testing.T) {
	v := &Vault{
		ImagesPath: "/test/vault/cat_images",
	}

	tests := []struct {
		name     string
		filename string
		expected string
	}{
		{"jpg file", "1718000000000.jpg", "/test/vault/cat_images/1718000000000.jpg"},
		{"png file", "1718000000001.png", "/test/vault/cat_images/1718000000001.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.GetImagePath(tt.filename)
			if result != tt.expected {
				t.Errorf("GetImagePath(%q) = %q, want %q", tt.filename, result, tt.expected)
			}
		})
	}
}

func TestVault_Contains(t *testing.T) {
	v := &Vault{
		RootPath:   "/test/vault",
		ImagesPath: "/test/vault/cat_images",
	}

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"managed file", "/test/vault/cat_images/1718000000000.jpg", true},
		{"managed file uri", "file:///test/vault/cat_images/1718000000000.jpg", true},
		{"sibling directory", "/test/vault/cats.json", false},
		{"other app storage", "/data/other-app/photo.jpg", false},
		{"prefix lookalike", "/test/vault/cat_images_backup/photo.jpg", false},
		{"directory itself", "/test/vault/cat_images", false},
		{"empty path", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.Contains(tt.path); got != tt.expected {
				t.Errorf("Contains(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestVault_NewImageFilename(t *testing.T) {
	v := &Vault{ImagesPath: "/test/vault/cat_images"}

	tests := []struct {
		name    string
		srcURI  string
		wantExt string
	}{
		{"png source", "file:///tmp/capture.png", "png"},
		{"jpeg source", "/tmp/capture.jpeg", "jpeg"},
		{"query string stripped", "https://example.com/photo.webp?size=large", "webp"},
		{"no extension defaults to jpg", "content://media/external/images/1234", "jpg"},
		{"uppercase normalized", "/tmp/IMG_1.JPG", "jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.NewImageFilename(tt.srcURI)
			if !strings.HasSuffix(got, "."+tt.wantExt) {
				t.Errorf("NewImageFilename(%q) = %q, want extension %q", tt.srcURI, got, tt.wantExt)
			}
		})
	}
}

func TestVault_Initialize(t *testing.T) {
	root := filepath.Join(t.TempDir(), "posa")
	v := &Vault{
		RootPath:   root,
		ImagesPath: filepath.Join(root, ImagesDir),
	}

	if v.Exists() {
		t.Fatal("vault should not exist before Initialize")
	}

	if err := v.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	if !v.Exists() {
		t.Error("vault should exist after Initialize")
	}

	// Second call must be idempotent
	if err := v.Initialize(); err != nil {
		t.Errorf("Initialize() second call error = %v", err)
	}
}

func TestStripFileScheme(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{"file uri", "file:///tmp/photo.jpg", "/tmp/photo.jpg"},
		{"plain path", "/tmp/photo.jpg", "/tmp/photo.jpg"},
		{"http uri untouched", "https://example.com/photo.jpg", "https://example.com/photo.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripFileScheme(tt.uri); got != tt.expected {
				t.Errorf("StripFileScheme(%q) = %q, want %q", tt.uri, got, tt.expected)
			}
		})
	}
}
