package memory

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/pixelgrove/simple-gallery/pkg/simplegallery"
)

const urlScheme = "memory://"

// Store is an in-memory implementation of the simplegallery.ImageStore
// interface, used in tests and development.
type Store struct {
	mu        sync.RWMutex
	blobs     map[string][]byte
	mimeTypes map[string]string
}

// New creates a new in-memory image store
func New() *Store {
	return &Store{
		blobs:     make(map[string][]byte),
		mimeTypes: make(map[string]string),
	}
}

// Upload stores the image bytes and returns a memory:// URL for them
func (s *Store) Upload(ctx context.Context, reader io.Reader, params simplegallery.UploadParams) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[params.ObjectKey] = data
	mimeType := params.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	s.mimeTypes[params.ObjectKey] = mimeType

	return urlScheme + params.ObjectKey, nil
}

// Delete removes the image stored under objectKey
func (s *Store) Delete(ctx context.Context, objectKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.blobs[objectKey]; !exists {
		return errors.New("image not found")
	}

	delete(s.blobs, objectKey)
	delete(s.mimeTypes, objectKey)
	return nil
}

// KeyFromURL reports the object key behind a memory:// URL
func (s *Store) KeyFromURL(url string) (string, bool) {
	if !strings.HasPrefix(url, urlScheme) {
		return "", false
	}
	return strings.TrimPrefix(url, urlScheme), true
}

// Get returns the stored bytes and MIME type for objectKey. Tests use it to
// verify uploads landed.
func (s *Store) Get(objectKey string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, exists := s.blobs[objectKey]
	if !exists {
		return nil, "", false
	}
	return data, s.mimeTypes[objectKey], true
}
