package simplegallery

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error types
var (
	// ErrPageNotFound indicates a page was not found
	ErrPageNotFound = errors.New("page not found")

	// ErrRowNotFound indicates a row was not found
	ErrRowNotFound = errors.New("row not found")

	// ErrImageNotFound indicates an image was not found
	ErrImageNotFound = errors.New("image not found")

	// ErrShareLinkNotFound indicates a share link was not found
	ErrShareLinkNotFound = errors.New("share link not found")

	// ErrShareLinkExists indicates a share link already exists for the page
	ErrShareLinkExists = errors.New("share link already exists for page")

	// ErrShortCodeTaken indicates the generated short code collided with an
	// existing one
	ErrShortCodeTaken = errors.New("short code already taken")

	// ErrShortCodeExhausted indicates unique code generation gave up after
	// the retry budget
	ErrShortCodeExhausted = errors.New("failed to generate unique short code")

	// ErrOrderConflict indicates an order slot was claimed concurrently;
	// repositories retry this internally and never surface it to callers
	ErrOrderConflict = errors.New("order slot conflict")

	// ErrNoImageStore indicates no image store is configured for uploads
	ErrNoImageStore = errors.New("no image store configured")
)

// ValidationError describes a malformed or missing request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PageError represents an error related to page operations
type PageError struct {
	PageID uuid.UUID
	Op     string
	Err    error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page operation %s failed for page %s: %v", e.Op, e.PageID, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}

// RowError represents an error related to row operations
type RowError struct {
	RowID uuid.UUID
	Op    string
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row operation %s failed for row %s: %v", e.Op, e.RowID, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// ImageError represents an error related to image operations
type ImageError struct {
	ImageID uuid.UUID
	Op      string
	Err     error
}

func (e *ImageError) Error() string {
	return fmt.Sprintf("image operation %s failed for image %s: %v", e.Op, e.ImageID, e.Err)
}

func (e *ImageError) Unwrap() error {
	return e.Err
}

// ShareLinkError represents an error related to share link operations
type ShareLinkError struct {
	PageID uuid.UUID
	Op     string
	Err    error
}

func (e *ShareLinkError) Error() string {
	return fmt.Sprintf("share link operation %s failed for page %s: %v", e.Op, e.PageID, e.Err)
}

func (e *ShareLinkError) Unwrap() error {
	return e.Err
}
