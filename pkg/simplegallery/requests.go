package simplegallery

import (
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// CreatePageRequest contains parameters for creating a page. Order is never
// client-supplied; the repository assigns it.
type CreatePageRequest struct {
	Name string
}

// Validate checks the request fields.
func (r CreatePageRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	return nil
}

// UpdatePageRequest contains the updatable page fields. Only Name is part of
// the public update surface: order changes are deliberately excluded.
type UpdatePageRequest struct {
	ID   uuid.UUID
	Name *string
}

func (r UpdatePageRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	return nil
}

// CreateRowRequest contains parameters for creating a row under a page.
type CreateRowRequest struct {
	PageID uuid.UUID
	Title  string
}

func (r CreateRowRequest) Validate() error {
	if r.PageID == uuid.Nil {
		return &ValidationError{Field: "page_id", Reason: "is required"}
	}
	if strings.TrimSpace(r.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	return nil
}

// UpdateRowRequest contains the updatable row fields (title only).
type UpdateRowRequest struct {
	ID    uuid.UUID
	Title *string
}

func (r UpdateRowRequest) Validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	return nil
}

// CreateImageRequest contains parameters for creating an image under a row.
type CreateImageRequest struct {
	RowID    uuid.UUID
	URL      string
	Title    string
	Subtitle *string
}

func (r CreateImageRequest) Validate() error {
	if r.RowID == uuid.Nil {
		return &ValidationError{Field: "row_id", Reason: "is required"}
	}
	if err := validateImageURL(r.URL); err != nil {
		return err
	}
	if strings.TrimSpace(r.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	return nil
}

// UpdateImageRequest contains the updatable image fields.
type UpdateImageRequest struct {
	ID       uuid.UUID
	URL      *string
	Title    *string
	Subtitle *string
}

func (r UpdateImageRequest) Validate() error {
	if r.URL != nil {
		if err := validateImageURL(*r.URL); err != nil {
			return err
		}
	}
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	return nil
}

func validateImageURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return &ValidationError{Field: "url", Reason: "must not be empty"}
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return &ValidationError{Field: "url", Reason: "must be a valid URL"}
	}
	return nil
}
