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

// ImagesHandler handles HTTP requests for images using pkg/simplegallery
type ImagesHandler struct {
	service simplegallery.Service
}

// NewImagesHandler creates a new images handler
func NewImagesHandler(service simplegallery.Service) *ImagesHandler {
	return &ImagesHandler{service: service}
}

// Routes returns the routes for images
func (h *ImagesHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateImage)
	r.Get("/{id}", h.GetImage)
	r.Patch("/{id}", h.UpdateImage)
	r.Delete("/{id}", h.DeleteImage)

	return r
}

// CreateImageRequest is the request body for creating an image
type CreateImageRequest struct {
	RowID    string  `json:"row_id"`
	URL      string  `json:"url"`
	Title    string  `json:"title"`
	Subtitle *string `json:"subtitle,omitempty"`
}

// UpdateImageRequest is the request body for updating an image
type UpdateImageRequest struct {
	URL      *string `json:"url"`
	Title    *string `json:"title"`
	Subtitle *string `json:"subtitle"`
}

// CreateImage creates a new image at the end of its row
func (h *ImagesHandler) CreateImage(w http.ResponseWriter, r *http.Request) {
	var req CreateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalid(w, r, "invalid request body")
		return
	}

	rowID, err := uuid.Parse(req.RowID)
	if err != nil {
		slog.Error("Invalid row ID", "row_id", req.RowID, "error", err)
		writeInvalid(w, r, "invalid row ID")
		return
	}

	image, err := h.service.CreateImage(r.Context(), simplegallery.CreateImageRequest{
		RowID:    rowID,
		URL:      req.URL,
		Title:    req.Title,
		Subtitle: req.Subtitle,
	})
	if err != nil {
		slog.Error("Failed to create image", "row_id", req.RowID, "error", err)
		writeError(w, r, err)
		return
	}

	slog.Info("Image created", "image_id", image.ID.String(), "row_id", req.RowID)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, image)
}

// GetImage retrieves an image by ID
func (h *ImagesHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		slog.Error("Invalid image ID", "image_id", idStr, "error", err)
		writeInvalid(w, r, "invalid image ID")
		return
	}

	image, err := h.service.GetImage(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, image)
}

// UpdateImage updates an image's url, title or subtitle. Order and row are
// not part of the update surface.
func (h *ImagesHandler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		slog.Error("Invalid image ID", "image_id", idStr, "error", err)
		writeInvalid(w, r, "invalid image ID")
		return
	}

	var req UpdateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalid(w, r, "invalid request body")
		return
	}

	image, err := h.service.UpdateImage(r.Context(), simplegallery.UpdateImageRequest{
		ID:       id,
		URL:      req.URL,
		Title:    req.Title,
		Subtitle: req.Subtitle,
	})
	if err != nil {
		slog.Error("Failed to update image", "image_id", idStr, "error", err)
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, image)
}

// DeleteImage deletes an image and, when hosted by the configured store,
// its underlying blob
func (h *ImagesHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		slog.Error("Invalid image ID", "image_id", idStr, "error", err)
		writeInvalid(w, r, "invalid image ID")
		return
	}

	if err := h.service.DeleteImage(r.Context(), id); err != nil {
		slog.Error("Failed to delete image", "image_id", idStr, "error", err)
		writeError(w, r, err)
		return
	}

	slog.Info("Image deleted", "image_id", idStr)
	w.WriteHeader(http.StatusNoContent)
}
