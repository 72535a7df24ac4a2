package simplegallery

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// Service defines the main interface for the simple-gallery library
type Service interface {
	// Page operations
	ListPages(ctx context.Context) ([]*Page, error)
	GetPage(ctx context.Context, id uuid.UUID) (*Page, error)
	CreatePage(ctx context.Context, req CreatePageRequest) (*Page, error)
	UpdatePage(ctx context.Context, req UpdatePageRequest) (*Page, error)
	DeletePage(ctx context.Context, id uuid.UUID) error

	// Row operations
	ListRowsByPage(ctx context.Context, pageID uuid.UUID) ([]*Row, error)
	GetRow(ctx context.Context, id uuid.UUID) (*Row, error)
	CreateRow(ctx context.Context, req CreateRowRequest) (*Row, error)
	UpdateRow(ctx context.Context, req UpdateRowRequest) (*Row, error)
	DeleteRow(ctx context.Context, id uuid.UUID) error

	// Image operations
	ListImagesByRow(ctx context.Context, rowID uuid.UUID) ([]*GalleryImage, error)
	GetImage(ctx context.Context, id uuid.UUID) (*GalleryImage, error)
	CreateImage(ctx context.Context, req CreateImageRequest) (*GalleryImage, error)
	UpdateImage(ctx context.Context, req UpdateImageRequest) (*GalleryImage, error)
	DeleteImage(ctx context.Context, id uuid.UUID) error

	// Share link operations. CreateOrGetShareLink is idempotent per page:
	// the second call returns the existing link with created=false.
	CreateOrGetShareLink(ctx context.Context, pageID uuid.UUID) (link *ShareLink, created bool, err error)
	ResolveShareLink(ctx context.Context, shortCode string) (*ShareLink, error)
	GetSharedPage(ctx context.Context, shortCode string) (*SharedPage, error)

	// Image hosting
	UploadImageData(ctx context.Context, reader io.Reader, params UploadParams) (string, error)
}
