package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/pixelgrove/simple-gallery/pkg/simplegallery"
)

// Repository implements simplegallery.Repository using in-memory storage.
// A single write lock covers every mutation, so order assignment and the
// cascade deletes are atomic with respect to concurrent readers.
type Repository struct {
	mu          sync.RWMutex
	pages       map[uuid.UUID]*simplegallery.Page
	rows        map[uuid.UUID]*simplegallery.Row
	images      map[uuid.UUID]*simplegallery.GalleryImage
	shareLinks  map[uuid.UUID]*simplegallery.ShareLink
	linksByPage map[uuid.UUID]uuid.UUID // page_id -> link_id
	linksByCode map[string]uuid.UUID    // short_code -> link_id
}

// New creates a new in-memory repository
func New() simplegallery.Repository {
	return &Repository{
		pages:       make(map[uuid.UUID]*simplegallery.Page),
		rows:        make(map[uuid.UUID]*simplegallery.Row),
		images:      make(map[uuid.UUID]*simplegallery.GalleryImage),
		shareLinks:  make(map[uuid.UUID]*simplegallery.ShareLink),
		linksByPage: make(map[uuid.UUID]uuid.UUID),
		linksByCode: make(map[string]uuid.UUID),
	}
}

// Page operations

func (r *Repository) ListPages(ctx context.Context) ([]*simplegallery.Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*simplegallery.Page, 0, len(r.pages))
	for _, page := range r.pages {
		pageCopy := *page
		result = append(result, &pageCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Order < result[j].Order
	})

	return result, nil
}

func (r *Repository) GetPage(ctx context.Context, id uuid.UUID) (*simplegallery.Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	page, exists := r.pages[id]
	if !exists {
		return nil, simplegallery.ErrPageNotFound
	}

	// Return a copy to prevent external modifications
	pageCopy := *page
	return &pageCopy, nil
}

func (r *Repository) CreatePage(ctx context.Context, page *simplegallery.Page) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Order assignment happens under the write lock: max across all pages
	// plus one, zero for the first page.
	next := 0
	for _, existing := range r.pages {
		if existing.Order >= next {
			next = existing.Order + 1
		}
	}
	page.Order = next

	pageCopy := *page
	r.pages[page.ID] = &pageCopy

	return nil
}

func (r *Repository) UpdatePage(ctx context.Context, page *simplegallery.Page) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.pages[page.ID]
	if !exists {
		return simplegallery.ErrPageNotFound
	}

	// Order is not part of the update surface
	pageCopy := *page
	pageCopy.Order = current.Order
	r.pages[page.ID] = &pageCopy
	page.Order = current.Order

	return nil
}

func (r *Repository) DeletePage(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.pages[id]; !exists {
		// Idempotent: deleting an absent page is a no-op
		return nil
	}

	delete(r.pages, id)
	for rowID, row := range r.rows {
		if row.PageID != id {
			continue
		}
		delete(r.rows, rowID)
		r.deleteImagesByRowLocked(rowID)
	}
	r.deleteShareLinkByPageLocked(id)

	return nil
}

// Row operations

func (r *Repository) ListRowsByPage(ctx context.Context, pageID uuid.UUID) ([]*simplegallery.Row, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*simplegallery.Row, 0)
	for _, row := range r.rows {
		if row.PageID == pageID {
			rowCopy := *row
			result = append(result, &rowCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Order < result[j].Order
	})

	return result, nil
}

func (r *Repository) GetRow(ctx context.Context, id uuid.UUID) (*simplegallery.Row, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, exists := r.rows[id]
	if !exists {
		return nil, simplegallery.ErrRowNotFound
	}

	rowCopy := *row
	return &rowCopy, nil
}

func (r *Repository) CreateRow(ctx context.Context, row *simplegallery.Row) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.pages[row.PageID]; !exists {
		return simplegallery.ErrPageNotFound
	}

	// Order is local to the parent page
	next := 0
	for _, existing := range r.rows {
		if existing.PageID == row.PageID && existing.Order >= next {
			next = existing.Order + 1
		}
	}
	row.Order = next

	rowCopy := *row
	r.rows[row.ID] = &rowCopy

	return nil
}

func (r *Repository) UpdateRow(ctx context.Context, row *simplegallery.Row) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.rows[row.ID]
	if !exists {
		return simplegallery.ErrRowNotFound
	}

	// Order and parent are immutable through updates
	rowCopy := *row
	rowCopy.Order = current.Order
	rowCopy.PageID = current.PageID
	r.rows[row.ID] = &rowCopy
	row.Order = current.Order
	row.PageID = current.PageID

	return nil
}

func (r *Repository) DeleteRow(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rows[id]; !exists {
		return nil
	}

	delete(r.rows, id)
	r.deleteImagesByRowLocked(id)

	return nil
}

// Image operations

func (r *Repository) ListImagesByRow(ctx context.Context, rowID uuid.UUID) ([]*simplegallery.GalleryImage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*simplegallery.GalleryImage, 0)
	for _, image := range r.images {
		if image.RowID == rowID {
			imageCopy := *image
			result = append(result, &imageCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Order < result[j].Order
	})

	return result, nil
}

func (r *Repository) GetImage(ctx context.Context, id uuid.UUID) (*simplegallery.GalleryImage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	image, exists := r.images[id]
	if !exists {
		return nil, simplegallery.ErrImageNotFound
	}

	imageCopy := *image
	return &imageCopy, nil
}

func (r *Repository) CreateImage(ctx context.Context, image *simplegallery.GalleryImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rows[image.RowID]; !exists {
		return simplegallery.ErrRowNotFound
	}

	next := 0
	for _, existing := range r.images {
		if existing.RowID == image.RowID && existing.Order >= next {
			next = existing.Order + 1
		}
	}
	image.Order = next

	imageCopy := *image
	r.images[image.ID] = &imageCopy

	return nil
}

func (r *Repository) UpdateImage(ctx context.Context, image *simplegallery.GalleryImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.images[image.ID]
	if !exists {
		return simplegallery.ErrImageNotFound
	}

	imageCopy := *image
	imageCopy.Order = current.Order
	imageCopy.RowID = current.RowID
	r.images[image.ID] = &imageCopy
	image.Order = current.Order
	image.RowID = current.RowID

	return nil
}

func (r *Repository) DeleteImage(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.images, id)
	return nil
}

// Share link operations

func (r *Repository) GetShareLinkByPage(ctx context.Context, pageID uuid.UUID) (*simplegallery.ShareLink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	linkID, exists := r.linksByPage[pageID]
	if !exists {
		return nil, simplegallery.ErrShareLinkNotFound
	}

	linkCopy := *r.shareLinks[linkID]
	return &linkCopy, nil
}

func (r *Repository) GetShareLinkByCode(ctx context.Context, shortCode string) (*simplegallery.ShareLink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	linkID, exists := r.linksByCode[shortCode]
	if !exists {
		return nil, simplegallery.ErrShareLinkNotFound
	}

	linkCopy := *r.shareLinks[linkID]
	return &linkCopy, nil
}

func (r *Repository) CreateShareLink(ctx context.Context, link *simplegallery.ShareLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Both uniqueness checks and the insert share one critical section, so
	// concurrent first-time issuance collapses to a single persisted link.
	if _, exists := r.linksByPage[link.PageID]; exists {
		return simplegallery.ErrShareLinkExists
	}
	if _, exists := r.linksByCode[link.ShortCode]; exists {
		return simplegallery.ErrShortCodeTaken
	}

	linkCopy := *link
	r.shareLinks[link.ID] = &linkCopy
	r.linksByPage[link.PageID] = link.ID
	r.linksByCode[link.ShortCode] = link.ID

	return nil
}

// deleteImagesByRowLocked removes every image under rowID. Callers hold the
// write lock.
func (r *Repository) deleteImagesByRowLocked(rowID uuid.UUID) {
	for imageID, image := range r.images {
		if image.RowID == rowID {
			delete(r.images, imageID)
		}
	}
}

// deleteShareLinkByPageLocked removes the page's share link, if any. Callers
// hold the write lock.
func (r *Repository) deleteShareLinkByPageLocked(pageID uuid.UUID) {
	linkID, exists := r.linksByPage[pageID]
	if !exists {
		return
	}
	link := r.shareLinks[linkID]
	delete(r.linksByCode, link.ShortCode)
	delete(r.linksByPage, pageID)
	delete(r.shareLinks, linkID)
}
