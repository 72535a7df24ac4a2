package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pixelgrove/simple-gallery/pkg/simplegallery"
)

// Store is a filesystem implementation of the simplegallery.ImageStore
// interface. Uploaded images are written under BaseDir and served by
// whatever static file server fronts URLPrefix.
type Store struct {
	baseDir   string
	urlPrefix string
}

// Config options for the filesystem store
type Config struct {
	BaseDir   string // Base directory for storing image files
	URLPrefix string // URL prefix under which BaseDir is served
}

// New creates a new filesystem image store
func New(config Config) (*Store, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}
	if config.URLPrefix == "" {
		return nil, errors.New("url prefix is required")
	}

	if err := os.MkdirAll(config.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &Store{
		baseDir:   config.BaseDir,
		urlPrefix: strings.TrimSuffix(config.URLPrefix, "/"),
	}, nil
}

// Upload writes the image to the filesystem and returns its public URL
func (s *Store) Upload(ctx context.Context, reader io.Reader, params simplegallery.UploadParams) (string, error) {
	filePath := filepath.Join(s.baseDir, params.ObjectKey)

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return s.urlPrefix + "/" + params.ObjectKey, nil
}

// Delete removes the image file from the filesystem
func (s *Store) Delete(ctx context.Context, objectKey string) error {
	filePath := filepath.Join(s.baseDir, objectKey)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return errors.New("image not found")
	}

	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	s.cleanupEmptyDirectories(filepath.Dir(filePath))

	return nil
}

// KeyFromURL reports the object key behind a URL under this store's prefix
func (s *Store) KeyFromURL(url string) (string, bool) {
	if !strings.HasPrefix(url, s.urlPrefix+"/") {
		return "", false
	}
	return strings.TrimPrefix(url, s.urlPrefix+"/"), true
}

// cleanupEmptyDirectories recursively removes empty directories up to baseDir
func (s *Store) cleanupEmptyDirectories(dir string) {
	if dir == s.baseDir {
		return
	}

	if entries, err := os.ReadDir(dir); err == nil && len(entries) == 0 {
		if os.Remove(dir) == nil {
			s.cleanupEmptyDirectories(filepath.Dir(dir))
		}
	}
}
