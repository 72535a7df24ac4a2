package simplegallery

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// Repository defines the interface for gallery persistence.
//
// Create operations own order assignment: the repository computes
// max(order)+1 within the sibling scope (0 when the scope is empty) as a
// single atomic step, so two concurrent creates can never claim the same
// slot. Update operations never change Order or the parent reference.
// Delete operations are idempotent and cascade atomically: deleting a page
// removes its rows, their images, and its share link as one unit; deleting a
// row removes its images the same way.
type Repository interface {
	// Page operations
	ListPages(ctx context.Context) ([]*Page, error)
	GetPage(ctx context.Context, id uuid.UUID) (*Page, error)
	CreatePage(ctx context.Context, page *Page) error
	UpdatePage(ctx context.Context, page *Page) error
	DeletePage(ctx context.Context, id uuid.UUID) error

	// Row operations
	ListRowsByPage(ctx context.Context, pageID uuid.UUID) ([]*Row, error)
	GetRow(ctx context.Context, id uuid.UUID) (*Row, error)
	CreateRow(ctx context.Context, row *Row) error
	UpdateRow(ctx context.Context, row *Row) error
	DeleteRow(ctx context.Context, id uuid.UUID) error

	// Image operations
	ListImagesByRow(ctx context.Context, rowID uuid.UUID) ([]*GalleryImage, error)
	GetImage(ctx context.Context, id uuid.UUID) (*GalleryImage, error)
	CreateImage(ctx context.Context, image *GalleryImage) error
	UpdateImage(ctx context.Context, image *GalleryImage) error
	DeleteImage(ctx context.Context, id uuid.UUID) error

	// Share link operations. CreateShareLink returns ErrShareLinkExists when
	// the page already has a link and ErrShortCodeTaken when the code is in
	// use; callers handle both (re-fetch, or regenerate and retry).
	GetShareLinkByPage(ctx context.Context, pageID uuid.UUID) (*ShareLink, error)
	GetShareLinkByCode(ctx context.Context, shortCode string) (*ShareLink, error)
	CreateShareLink(ctx context.Context, link *ShareLink) error
}

// ImageStore is the external image host the gallery delegates uploads to.
// The core never inspects image bytes; it stores only the returned URL.
type ImageStore interface {
	// Upload stores the image bytes under objectKey and returns a publicly
	// fetchable URL for them.
	Upload(ctx context.Context, reader io.Reader, params UploadParams) (string, error)

	// Delete removes the image stored under objectKey.
	Delete(ctx context.Context, objectKey string) error

	// KeyFromURL reports the object key behind a URL previously returned by
	// Upload, and false for URLs this store did not produce.
	KeyFromURL(url string) (string, bool)
}

// UploadParams contains parameters for uploading an image
type UploadParams struct {
	ObjectKey string
	MimeType  string
	FileName  string
}
