package simplegallery

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path"

	"github.com/google/uuid"
)

// generateShortCode returns a fixed-length hex code from a cryptographically
// random byte source. Uniqueness is enforced by the registry, not here.
func generateShortCode() (string, error) {
	buf := make([]byte, ShortCodeLength/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// NewObjectKey builds a storage key for an uploaded image, preserving the
// original file extension when present.
func NewObjectKey(fileName string) string {
	return "gallery-images/" + uuid.New().String() + path.Ext(fileName)
}
