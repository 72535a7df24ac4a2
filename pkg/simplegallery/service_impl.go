package simplegallery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// maxShortCodeAttempts bounds the collision-retry loop during share link
// issuance. Collisions on 4 random bytes are vanishingly rare; the bound
// exists so a broken repository cannot spin forever.
const maxShortCodeAttempts = 5

// service implements the Service interface
type service struct {
	repository Repository
	images     ImageStore
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithImageStore sets the image host used for uploads and blob cleanup
func WithImageStore(store ImageStore) Option {
	return func(s *service) {
		s.images = store
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}

	return s, nil
}

// Page operations

func (s *service) ListPages(ctx context.Context) ([]*Page, error) {
	return s.repository.ListPages(ctx)
}

func (s *service) GetPage(ctx context.Context, id uuid.UUID) (*Page, error) {
	return s.repository.GetPage(ctx, id)
}

func (s *service) CreatePage(ctx context.Context, req CreatePageRequest) (*Page, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	page := &Page{
		ID:   uuid.New(),
		Name: req.Name,
	}

	if err := s.repository.CreatePage(ctx, page); err != nil {
		return nil, &PageError{PageID: page.ID, Op: "create", Err: err}
	}

	return page, nil
}

func (s *service) UpdatePage(ctx context.Context, req UpdatePageRequest) (*Page, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	page, err := s.repository.GetPage(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		page.Name = *req.Name
	}

	if err := s.repository.UpdatePage(ctx, page); err != nil {
		return nil, &PageError{PageID: req.ID, Op: "update", Err: err}
	}

	return page, nil
}

func (s *service) DeletePage(ctx context.Context, id uuid.UUID) error {
	if err := s.repository.DeletePage(ctx, id); err != nil {
		return &PageError{PageID: id, Op: "delete", Err: err}
	}
	return nil
}

// Row operations

func (s *service) ListRowsByPage(ctx context.Context, pageID uuid.UUID) ([]*Row, error) {
	return s.repository.ListRowsByPage(ctx, pageID)
}

func (s *service) GetRow(ctx context.Context, id uuid.UUID) (*Row, error) {
	return s.repository.GetRow(ctx, id)
}

func (s *service) CreateRow(ctx context.Context, req CreateRowRequest) (*Row, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Not-found is checked before the dependent create
	if _, err := s.repository.GetPage(ctx, req.PageID); err != nil {
		return nil, err
	}

	row := &Row{
		ID:     uuid.New(),
		PageID: req.PageID,
		Title:  req.Title,
	}

	if err := s.repository.CreateRow(ctx, row); err != nil {
		return nil, &RowError{RowID: row.ID, Op: "create", Err: err}
	}

	return row, nil
}

func (s *service) UpdateRow(ctx context.Context, req UpdateRowRequest) (*Row, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repository.GetRow(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		row.Title = *req.Title
	}

	if err := s.repository.UpdateRow(ctx, row); err != nil {
		return nil, &RowError{RowID: req.ID, Op: "update", Err: err}
	}

	return row, nil
}

func (s *service) DeleteRow(ctx context.Context, id uuid.UUID) error {
	if err := s.repository.DeleteRow(ctx, id); err != nil {
		return &RowError{RowID: id, Op: "delete", Err: err}
	}
	return nil
}

// Image operations

func (s *service) ListImagesByRow(ctx context.Context, rowID uuid.UUID) ([]*GalleryImage, error) {
	return s.repository.ListImagesByRow(ctx, rowID)
}

func (s *service) GetImage(ctx context.Context, id uuid.UUID) (*GalleryImage, error) {
	return s.repository.GetImage(ctx, id)
}

func (s *service) CreateImage(ctx context.Context, req CreateImageRequest) (*GalleryImage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repository.GetRow(ctx, req.RowID); err != nil {
		return nil, err
	}

	image := &GalleryImage{
		ID:       uuid.New(),
		RowID:    req.RowID,
		URL:      req.URL,
		Title:    req.Title,
		Subtitle: req.Subtitle,
	}

	if err := s.repository.CreateImage(ctx, image); err != nil {
		return nil, &ImageError{ImageID: image.ID, Op: "create", Err: err}
	}

	return image, nil
}

func (s *service) UpdateImage(ctx context.Context, req UpdateImageRequest) (*GalleryImage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	image, err := s.repository.GetImage(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.URL != nil {
		image.URL = *req.URL
	}
	if req.Title != nil {
		image.Title = *req.Title
	}
	if req.Subtitle != nil {
		image.Subtitle = req.Subtitle
	}

	if err := s.repository.UpdateImage(ctx, image); err != nil {
		return nil, &ImageError{ImageID: req.ID, Op: "update", Err: err}
	}

	return image, nil
}

func (s *service) DeleteImage(ctx context.Context, id uuid.UUID) error {
	// Fetch first so the hosted blob can be released after the record goes.
	image, err := s.repository.GetImage(ctx, id)
	if err != nil {
		if errors.Is(err, ErrImageNotFound) {
			return nil
		}
		return &ImageError{ImageID: id, Op: "delete", Err: err}
	}

	if err := s.repository.DeleteImage(ctx, id); err != nil {
		return &ImageError{ImageID: id, Op: "delete", Err: err}
	}

	// Blob cleanup is best effort: the record is gone either way, and URLs
	// from foreign hosts are not ours to delete.
	if s.images != nil {
		if key, ok := s.images.KeyFromURL(image.URL); ok {
			_ = s.images.Delete(ctx, key)
		}
	}

	return nil
}

// Share link operations

func (s *service) CreateOrGetShareLink(ctx context.Context, pageID uuid.UUID) (*ShareLink, bool, error) {
	if _, err := s.repository.GetPage(ctx, pageID); err != nil {
		return nil, false, err
	}

	existing, err := s.repository.GetShareLinkByPage(ctx, pageID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrShareLinkNotFound) {
		return nil, false, &ShareLinkError{PageID: pageID, Op: "get", Err: err}
	}

	for attempt := 0; attempt < maxShortCodeAttempts; attempt++ {
		code, err := generateShortCode()
		if err != nil {
			return nil, false, &ShareLinkError{PageID: pageID, Op: "generate", Err: err}
		}

		link := &ShareLink{
			ID:        uuid.New(),
			PageID:    pageID,
			ShortCode: code,
			CreatedAt: time.Now().UTC(),
		}

		err = s.repository.CreateShareLink(ctx, link)
		if err == nil {
			return link, true, nil
		}
		if errors.Is(err, ErrShareLinkExists) {
			// Lost the issuance race: return the winner's record.
			winner, getErr := s.repository.GetShareLinkByPage(ctx, pageID)
			if getErr != nil {
				return nil, false, &ShareLinkError{PageID: pageID, Op: "get", Err: getErr}
			}
			return winner, false, nil
		}
		if errors.Is(err, ErrShortCodeTaken) {
			continue
		}
		return nil, false, &ShareLinkError{PageID: pageID, Op: "create", Err: err}
	}

	return nil, false, &ShareLinkError{PageID: pageID, Op: "create", Err: ErrShortCodeExhausted}
}

func (s *service) ResolveShareLink(ctx context.Context, shortCode string) (*ShareLink, error) {
	return s.repository.GetShareLinkByCode(ctx, shortCode)
}

func (s *service) GetSharedPage(ctx context.Context, shortCode string) (*SharedPage, error) {
	link, err := s.repository.GetShareLinkByCode(ctx, shortCode)
	if err != nil {
		return nil, err
	}

	page, err := s.repository.GetPage(ctx, link.PageID)
	if err != nil {
		return nil, err
	}

	rows, err := s.repository.ListRowsByPage(ctx, page.ID)
	if err != nil {
		return nil, err
	}

	shared := &SharedPage{Page: page, Rows: make([]*SharedRow, 0, len(rows))}
	for _, row := range rows {
		images, err := s.repository.ListImagesByRow(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		shared.Rows = append(shared.Rows, &SharedRow{Row: row, Images: images})
	}

	return shared, nil
}

// Image hosting

func (s *service) UploadImageData(ctx context.Context, reader io.Reader, params UploadParams) (string, error) {
	if s.images == nil {
		return "", ErrNoImageStore
	}
	return s.images.Upload(ctx, reader, params)
}
