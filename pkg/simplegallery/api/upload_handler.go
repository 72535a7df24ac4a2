package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/pixelgrove/simple-gallery/pkg/simplegallery"
)

const maxUploadBytes = 10 << 20 // 10 MB

// UploadHandler handles image uploads to the configured image store
type UploadHandler struct {
	service simplegallery.Service
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(service simplegallery.Service) *UploadHandler {
	return &UploadHandler{service: service}
}

// Routes returns the routes for uploads
func (h *UploadHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.UploadImage)
	return r
}

// UploadResponse is the response body for a completed upload
type UploadResponse struct {
	URL string `json:"url"`
}

// UploadImage accepts a multipart form with an "image" field and returns the
// public URL of the stored blob. The gallery persists only the URL.
func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("image")
	if err != nil {
		slog.Error("Missing image file", "error", err)
		writeInvalid(w, r, "missing image file")
		return
	}
	defer file.Close()

	url, err := h.service.UploadImageData(r.Context(), file, simplegallery.UploadParams{
		ObjectKey: simplegallery.NewObjectKey(header.Filename),
		MimeType:  header.Header.Get("Content-Type"),
		FileName:  header.Filename,
	})
	if err != nil {
		slog.Error("Failed to upload image", "file_name", header.Filename, "error", err)
		writeError(w, r, err)
		return
	}

	slog.Info("Image uploaded", "file_name", header.Filename, "url", url)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, UploadResponse{URL: url})
}
