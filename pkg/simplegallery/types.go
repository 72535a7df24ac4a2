package simplegallery

import (
	"time"

	"github.com/google/uuid"
)

// ShortCodeLength is the fixed length of share link short codes
// (4 random bytes, hex encoded).
const ShortCodeLength = 8

// Page is a top-level named container of rows. Order is unique across all
// pages and assigned by the repository on create.
type Page struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Order int       `json:"order"`
}

// Row is an ordered container of images scoped to one page. Order is unique
// among rows sharing the same PageID.
type Row struct {
	ID     uuid.UUID `json:"id"`
	PageID uuid.UUID `json:"page_id"`
	Title  string    `json:"title"`
	Order  int       `json:"order"`
}

// GalleryImage is a hosted image URL with a title and optional subtitle,
// scoped to one row. Order is unique among images sharing the same RowID.
type GalleryImage struct {
	ID       uuid.UUID `json:"id"`
	RowID    uuid.UUID `json:"row_id"`
	URL      string    `json:"url"`
	Title    string    `json:"title"`
	Subtitle *string   `json:"subtitle,omitempty"`
	Order    int       `json:"order"`
}

// ShareLink maps a short random code to a page. At most one link exists per
// page; the short code is globally unique.
type ShareLink struct {
	ID        uuid.UUID `json:"id"`
	PageID    uuid.UUID `json:"page_id"`
	ShortCode string    `json:"short_code"`
	CreatedAt time.Time `json:"created_at"`
}

// SharedRow is a row together with its ordered images, as rendered by the
// read-only preview.
type SharedRow struct {
	Row    *Row            `json:"row"`
	Images []*GalleryImage `json:"images"`
}

// SharedPage is the full read-only composition behind a share link: the page
// and its rows in order, each with its images in order.
type SharedPage struct {
	Page *Page        `json:"page"`
	Rows []*SharedRow `json:"rows"`
}
