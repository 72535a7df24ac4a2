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

// PagesHandler handles HTTP requests for pages using pkg/simplegallery
type PagesHandler struct {
	service simplegallery.Service
}

// NewPagesHandler creates a new pages handler
func NewPagesHandler(service simplegallery.Service) *PagesHandler {
	return &PagesHandler{service: service}
}

// Routes returns the routes for pages
func (h *PagesHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListPages)
	r.Post("/", h.CreatePage)
	r.Get("/{id}", h.GetPage)
	r.Patch("/{id}", h.UpdatePage)
	r.Delete("/{id}", h.DeletePage)

	r.Get("/{id}/rows", h.ListRows)

	return r
}

// CreatePageRequest is the request body for creating a page
type CreatePageRequest struct {
	Name string `json:"name"`
}

// UpdatePageRequest is the request body for renaming a page
type UpdatePageRequest struct {
	Name *string `json:"name"`
}

// ListPages returns all pages sorted by order
func (h *PagesHandler) ListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.service.ListPages(r.Context())
	if err != nil {
		slog.Error("Failed to list pages", "error", err)
		writeError(w, r, err)
		return
	}
	if pages == nil {
		pages = []*simplegallery.Page{}
	}
	render.JSON(w, r, pages)
}

// CreatePage creates a new page at the end of the page order
func (h *PagesHandler) CreatePage(w http.ResponseWriter, r *http.Request) {
	var req CreatePageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalid(w, r, "invalid request body")
		return
	}

	page, err := h.service.CreatePage(r.Context(), simplegallery.CreatePageRequest{
		Name: req.Name,
	})
	if err != nil {
		slog.Error("Failed to create page", "error", err)
		writeError(w, r, err)
		return
	}

	slog.Info("Page created", "page_id", page.ID.String())
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, page)
}

// GetPage retrieves a page by ID
func (h *PagesHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		slog.Error("Invalid page ID", "page_id", idStr, "error", err)
		writeInvalid(w, r, "invalid page ID")
		return
	}

	page, err := h.service.GetPage(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, page)
}

// UpdatePage renames a page. Order is not part of the update surface.
func (h *PagesHandler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		slog.Error("Invalid page ID", "page_id", idStr, "error", err)
		writeInvalid(w, r, "invalid page ID")
		return
	}

	var req UpdatePageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalid(w, r, "invalid request body")
		return
	}

	page, err := h.service.UpdatePage(r.Context(), simplegallery.UpdatePageRequest{
		ID:   id,
		Name: req.Name,
	})
	if err != nil {
		slog.Error("Failed to update page", "page_id", idStr, "error", err)
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, page)
}

// DeletePage deletes a page and all of its rows and images
func (h *PagesHandler) DeletePage(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		slog.Error("Invalid page ID", "page_id", idStr, "error", err)
		writeInvalid(w, r, "invalid page ID")
		return
	}

	if err := h.service.DeletePage(r.Context(), id); err != nil {
		slog.Error("Failed to delete page", "page_id", idStr, "error", err)
		writeError(w, r, err)
		return
	}

	slog.Info("Page deleted", "page_id", idStr)
	w.WriteHeader(http.StatusNoContent)
}

// ListRows returns the rows of a page sorted by order
func (h *PagesHandler) ListRows(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		slog.Error("Invalid page ID", "page_id", idStr, "error", err)
		writeInvalid(w, r, "invalid page ID")
		return
	}

	rows, err := h.service.ListRowsByPage(r.Context(), id)
	if err != nil {
		slog.Error("Failed to list rows", "page_id", idStr, "error", err)
		writeError(w, r, err)
		return
	}
	if rows == nil {
		rows = []*simplegallery.Row{}
	}
	render.JSON(w, r, rows)
}
