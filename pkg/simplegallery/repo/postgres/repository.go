package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pixelgrove/simple-gallery/pkg/simplegallery"
)

// maxOrderRetries bounds the retry loop around order assignment. Two
// concurrent appends to the same scope can both compute the same next order;
// the unique index rejects one and it recomputes.
const maxOrderRetries = 5

// Repository implements simplegallery.Repository using PostgreSQL
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new PostgreSQL repository backed by a connection pool
func New(pool *pgxpool.Pool) simplegallery.Repository {
	return &Repository{pool: pool}
}

// mapError translates pgconn error codes into domain errors.
func mapError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if strings.Contains(pgErr.ConstraintName, "order") {
				return simplegallery.ErrOrderConflict
			}
			if strings.Contains(pgErr.ConstraintName, "short_code") {
				return simplegallery.ErrShortCodeTaken
			}
			if strings.Contains(pgErr.ConstraintName, "page_id") {
				return simplegallery.ErrShareLinkExists
			}
			return fmt.Errorf("duplicate entry in %s", operation)
		case "23503": // foreign_key_violation
			if strings.Contains(pgErr.ConstraintName, "rows_page_id") {
				return simplegallery.ErrPageNotFound
			}
			if strings.Contains(pgErr.ConstraintName, "images_row_id") {
				return simplegallery.ErrRowNotFound
			}
			if strings.Contains(pgErr.ConstraintName, "share_links_page_id") {
				return simplegallery.ErrPageNotFound
			}
			return fmt.Errorf("referenced record not found in %s", operation)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

// Page operations

func (r *Repository) ListPages(ctx context.Context) ([]*simplegallery.Page, error) {
	query := `SELECT id, name, "order" FROM pages ORDER BY "order"`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, mapError("list pages", err)
	}
	defer rows.Close()

	pages := make([]*simplegallery.Page, 0)
	for rows.Next() {
		var page simplegallery.Page
		if err := rows.Scan(&page.ID, &page.Name, &page.Order); err != nil {
			return nil, err
		}
		pages = append(pages, &page)
	}

	return pages, rows.Err()
}

func (r *Repository) GetPage(ctx context.Context, id uuid.UUID) (*simplegallery.Page, error) {
	query := `SELECT id, name, "order" FROM pages WHERE id = $1`

	var page simplegallery.Page
	err := r.pool.QueryRow(ctx, query, id).Scan(&page.ID, &page.Name, &page.Order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, simplegallery.ErrPageNotFound
		}
		return nil, mapError("get page", err)
	}

	return &page, nil
}

func (r *Repository) CreatePage(ctx context.Context, page *simplegallery.Page) error {
	// A single INSERT..SELECT computes and claims the next order slot; the
	// unique index on "order" catches the race between concurrent appends.
	query := `
		INSERT INTO pages (id, name, "order")
		SELECT $1, $2, COALESCE(MAX("order") + 1, 0) FROM pages
		RETURNING "order"`

	for attempt := 0; ; attempt++ {
		err := r.pool.QueryRow(ctx, query, page.ID, page.Name).Scan(&page.Order)
		if err == nil {
			return nil
		}
		mapped := mapError("create page", err)
		if errors.Is(mapped, simplegallery.ErrOrderConflict) && attempt < maxOrderRetries {
			continue
		}
		return mapped
	}
}

func (r *Repository) UpdatePage(ctx context.Context, page *simplegallery.Page) error {
	// Order is deliberately absent from the SET list
	query := `UPDATE pages SET name = $2 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, page.ID, page.Name)
	if err != nil {
		return mapError("update page", err)
	}
	if tag.RowsAffected() == 0 {
		return simplegallery.ErrPageNotFound
	}

	return nil
}

func (r *Repository) DeletePage(ctx context.Context, id uuid.UUID) error {
	// The whole cascade runs in one transaction so readers never observe a
	// page without its rows or vice versa. Absent ids delete zero rows and
	// succeed.
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return mapError("delete page", err)
	}
	defer tx.Rollback(ctx)

	statements := []string{
		`DELETE FROM images WHERE row_id IN (SELECT id FROM rows WHERE page_id = $1)`,
		`DELETE FROM rows WHERE page_id = $1`,
		`DELETE FROM share_links WHERE page_id = $1`,
		`DELETE FROM pages WHERE id = $1`,
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt, id); err != nil {
			return mapError("delete page", err)
		}
	}

	return tx.Commit(ctx)
}

// Row operations

func (r *Repository) ListRowsByPage(ctx context.Context, pageID uuid.UUID) ([]*simplegallery.Row, error) {
	query := `SELECT id, page_id, title, "order" FROM rows WHERE page_id = $1 ORDER BY "order"`

	rows, err := r.pool.Query(ctx, query, pageID)
	if err != nil {
		return nil, mapError("list rows", err)
	}
	defer rows.Close()

	result := make([]*simplegallery.Row, 0)
	for rows.Next() {
		var row simplegallery.Row
		if err := rows.Scan(&row.ID, &row.PageID, &row.Title, &row.Order); err != nil {
			return nil, err
		}
		result = append(result, &row)
	}

	return result, rows.Err()
}

func (r *Repository) GetRow(ctx context.Context, id uuid.UUID) (*simplegallery.Row, error) {
	query := `SELECT id, page_id, title, "order" FROM rows WHERE id = $1`

	var row simplegallery.Row
	err := r.pool.QueryRow(ctx, query, id).Scan(&row.ID, &row.PageID, &row.Title, &row.Order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, simplegallery.ErrRowNotFound
		}
		return nil, mapError("get row", err)
	}

	return &row, nil
}

func (r *Repository) CreateRow(ctx context.Context, row *simplegallery.Row) error {
	query := `
		INSERT INTO rows (id, page_id, title, "order")
		SELECT $1, $2, $3, COALESCE(MAX("order") + 1, 0) FROM rows WHERE page_id = $2
		RETURNING "order"`

	for attempt := 0; ; attempt++ {
		err := r.pool.QueryRow(ctx, query, row.ID, row.PageID, row.Title).Scan(&row.Order)
		if err == nil {
			return nil
		}
		mapped := mapError("create row", err)
		if errors.Is(mapped, simplegallery.ErrOrderConflict) && attempt < maxOrderRetries {
			continue
		}
		return mapped
	}
}

func (r *Repository) UpdateRow(ctx context.Context, row *simplegallery.Row) error {
	query := `UPDATE rows SET title = $2 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, row.ID, row.Title)
	if err != nil {
		return mapError("update row", err)
	}
	if tag.RowsAffected() == 0 {
		return simplegallery.ErrRowNotFound
	}

	return nil
}

func (r *Repository) DeleteRow(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return mapError("delete row", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM images WHERE row_id = $1`, id); err != nil {
		return mapError("delete row", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM rows WHERE id = $1`, id); err != nil {
		return mapError("delete row", err)
	}

	return tx.Commit(ctx)
}

// Image operations

func (r *Repository) ListImagesByRow(ctx context.Context, rowID uuid.UUID) ([]*simplegallery.GalleryImage, error) {
	query := `SELECT id, row_id, url, title, subtitle, "order" FROM images WHERE row_id = $1 ORDER BY "order"`

	rows, err := r.pool.Query(ctx, query, rowID)
	if err != nil {
		return nil, mapError("list images", err)
	}
	defer rows.Close()

	result := make([]*simplegallery.GalleryImage, 0)
	for rows.Next() {
		var image simplegallery.GalleryImage
		if err := rows.Scan(&image.ID, &image.RowID, &image.URL, &image.Title, &image.Subtitle, &image.Order); err != nil {
			return nil, err
		}
		result = append(result, &image)
	}

	return result, rows.Err()
}

func (r *Repository) GetImage(ctx context.Context, id uuid.UUID) (*simplegallery.GalleryImage, error) {
	query := `SELECT id, row_id, url, title, subtitle, "order" FROM images WHERE id = $1`

	var image simplegallery.GalleryImage
	err := r.pool.QueryRow(ctx, query, id).Scan(&image.ID, &image.RowID, &image.URL, &image.Title, &image.Subtitle, &image.Order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, simplegallery.ErrImageNotFound
		}
		return nil, mapError("get image", err)
	}

	return &image, nil
}

func (r *Repository) CreateImage(ctx context.Context, image *simplegallery.GalleryImage) error {
	query := `
		INSERT INTO images (id, row_id, url, title, subtitle, "order")
		SELECT $1, $2, $3, $4, $5, COALESCE(MAX("order") + 1, 0) FROM images WHERE row_id = $2
		RETURNING "order"`

	for attempt := 0; ; attempt++ {
		err := r.pool.QueryRow(ctx, query,
			image.ID, image.RowID, image.URL, image.Title, image.Subtitle).Scan(&image.Order)
		if err == nil {
			return nil
		}
		mapped := mapError("create image", err)
		if errors.Is(mapped, simplegallery.ErrOrderConflict) && attempt < maxOrderRetries {
			continue
		}
		return mapped
	}
}

func (r *Repository) UpdateImage(ctx context.Context, image *simplegallery.GalleryImage) error {
	query := `UPDATE images SET url = $2, title = $3, subtitle = $4 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, image.ID, image.URL, image.Title, image.Subtitle)
	if err != nil {
		return mapError("update image", err)
	}
	if tag.RowsAffected() == 0 {
		return simplegallery.ErrImageNotFound
	}

	return nil
}

func (r *Repository) DeleteImage(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM images WHERE id = $1`, id); err != nil {
		return mapError("delete image", err)
	}
	return nil
}

// Share link operations

func (r *Repository) GetShareLinkByPage(ctx context.Context, pageID uuid.UUID) (*simplegallery.ShareLink, error) {
	query := `SELECT id, page_id, short_code, created_at FROM share_links WHERE page_id = $1`
	return r.scanShareLink(r.pool.QueryRow(ctx, query, pageID))
}

func (r *Repository) GetShareLinkByCode(ctx context.Context, shortCode string) (*simplegallery.ShareLink, error) {
	query := `SELECT id, page_id, short_code, created_at FROM share_links WHERE short_code = $1`
	return r.scanShareLink(r.pool.QueryRow(ctx, query, shortCode))
}

func (r *Repository) scanShareLink(row pgx.Row) (*simplegallery.ShareLink, error) {
	var link simplegallery.ShareLink
	err := row.Scan(&link.ID, &link.PageID, &link.ShortCode, &link.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, simplegallery.ErrShareLinkNotFound
		}
		return nil, mapError("get share link", err)
	}
	return &link, nil
}

func (r *Repository) CreateShareLink(ctx context.Context, link *simplegallery.ShareLink) error {
	// The unique constraints on page_id and short_code arbitrate concurrent
	// issuance; mapError turns them into the sentinels the service handles.
	query := `INSERT INTO share_links (id, page_id, short_code, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.pool.Exec(ctx, query, link.ID, link.PageID, link.ShortCode, link.CreatedAt)
	if err != nil {
		return mapError("create share link", err)
	}

	return nil
}
