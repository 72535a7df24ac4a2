package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/pixelgrove/simple-gallery/pkg/simplegallery"
)

// RowsHandler handles HTTP requests for rows using pkg/simplegallery
type RowsHandler struct {
	service simplegallery.Service
}

// NewRowsHandler creates a new rows handler
func NewRowsHandler(service simplegallery.Service) *RowsHandler {
	return &RowsHandler{service: service}
}

// Routes returns the routes for rows
func (h *RowsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateRow)
	r.Get("/{id}", h.GetRow)
	r.Patch("/{id}", h.UpdateRow)
	r.Delete("/{id}", h.DeleteRow)

	r.Get("/{id}/images", h.ListImages)

	return r
}

// CreateRowRequest is the request body for creating a row
type CreateRowRequest struct {
	PageID string `json:"page_id"`
	Title  string `json:"title"`
}

// UpdateRowRequest is the request body for retitling a row
type UpdateRowRequest struct {
	Title *string `json:"title"`
}

// CreateRow creates a new row at the end of its page
func (h *RowsHandler) CreateRow(w http.ResponseWriter, r *http.Request) {
	var req CreateRowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalid(w, r, "invalid request body")
		return
	}

	pageID, err := uuid.Parse(req.PageID)
	if err != nil {
		slog.Error("Invalid page ID", "page_id", req.PageID, "error", err)
		writeInvalid(w, r, "invalid page ID")
		return
	}

	row, err := h.service.CreateRow(r.Context(), simplegallery.CreateRowRequest{
		PageID: pageID,
		Title:  req.Title,
	})
	if err != nil {
		slog.Error("Failed to create row", "page_id", req.PageID, "error", err)
		writeError(w, r, err)
		return
	}

	slog.Info("Row created", "row_id", row.ID.String(), "page_id", req.PageID)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, row)
}

// GetRow retrieves a row by ID
func (h *RowsHandler) GetRow(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		slog.Error("Invalid row ID", "row_id", idStr, "error", err)
		writeInvalid(w, r, "invalid row ID")
		return
	}

	row, err := h.service.GetRow(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, row)
}

// UpdateRow retitles a row. Order and page are not part of the update surface.
func (h *RowsHandler) UpdateRow(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		slog.Error("Invalid row ID", "row_id", idStr, "error", err)
		writeInvalid(w, r, "invalid row ID")
		return
	}

	var req UpdateRowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalid(w, r, "invalid request body")
		return
	}

	row, err := h.service.UpdateRow(r.Context(), simplegallery.UpdateRowRequest{
		ID:    id,
		Title: req.Title,
	})
	if err != nil {
		slog.Error("Failed to update row", "row_id", idStr, "error", err)
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, row)
}

// DeleteRow deletes a row and all of its images
func (h *RowsHandler) DeleteRow(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		slog.Error("Invalid row ID", "row_id", idStr, "error", err)
		writeInvalid(w, r, "invalid row ID")
		return
	}

	if err := h.service.DeleteRow(r.Context(), id); err != nil {
		slog.Error("Failed to delete row", "row_id", idStr, "error", err)
		writeError(w, r, err)
		return
	}

	slog.Info("Row deleted", "row_id", idStr)
	w.WriteHeader(http.StatusNoContent)
}

// ListImages returns the images of a row sorted by order
func (h *RowsHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		slog.Error("Invalid row ID", "row_id", idStr, "error", err)
		writeInvalid(w, r, "invalid row ID")
		return
	}

	images, err := h.service.ListImagesByRow(r.Context(), id)
	if err != nil {
		slog.Error("Failed to list images", "row_id", idStr, "error", err)
		writeError(w, r, err)
		return
	}
	if images == nil {
		images = []*simplegallery.GalleryImage{}
	}
	render.JSON(w, r, images)
}
