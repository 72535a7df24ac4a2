package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/pixelgrove/simple-gallery/pkg/simplegallery"
)

// ShareLinksHandler handles HTTP requests for share links using pkg/simplegallery
type ShareLinksHandler struct {
	service simplegallery.Service
}

// NewShareLinksHandler creates a new share links handler
func NewShareLinksHandler(service simplegallery.Service) *ShareLinksHandler {
	return &ShareLinksHandler{service: service}
}

// Routes returns the routes for share links
func (h *ShareLinksHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/{pageID}", h.CreateOrGetShareLink)
	r.Get("/{shortCode}", h.ResolveShareLink)
	r.Get("/{shortCode}/page", h.GetSharedPage)

	return r
}

// CreateOrGetShareLink issues a share link for a page. A second request for
// the same page returns the existing link with status 200 instead of 201.
func (h *ShareLinksHandler) CreateOrGetShareLink(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "pageID")
	pageID, err := uuid.Parse(idStr)
	if err != nil {
		slog.Error("Invalid page ID", "page_id", idStr, "error", err)
		writeInvalid(w, r, "invalid page ID")
		return
	}

	link, created, err := h.service.CreateOrGetShareLink(r.Context(), pageID)
	if err != nil {
		slog.Error("Failed to create share link", "page_id", idStr, "error", err)
		writeError(w, r, err)
		return
	}

	if created {
		slog.Info("Share link created", "page_id", idStr, "short_code", link.ShortCode)
		render.Status(r, http.StatusCreated)
	}
	render.JSON(w, r, link)
}

// ResolveShareLink retrieves a share link by its short code
func (h *ShareLinksHandler) ResolveShareLink(w http.ResponseWriter, r *http.Request) {
	shortCode := chi.URLParam(r, "shortCode")

	link, err := h.service.ResolveShareLink(r.Context(), shortCode)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, link)
}

// GetSharedPage returns the read-only composition behind a short code: the
// page with its rows and their images, each sorted by order
func (h *ShareLinksHandler) GetSharedPage(w http.ResponseWriter, r *http.Request) {
	shortCode := chi.URLParam(r, "shortCode")

	shared, err := h.service.GetSharedPage(r.Context(), shortCode)
	if err != nil {
		slog.Error("Failed to get shared page", "short_code", shortCode, "error", err)
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, shared)
}
