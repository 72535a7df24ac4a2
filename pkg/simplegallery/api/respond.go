package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/pixelgrove/simple-gallery/pkg/simplegallery"
)

// ErrorResponse is the JSON body returned on request failure
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// writeError maps service errors to HTTP status codes
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *simplegallery.ValidationError
	if errors.As(err, &verr) {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: verr.Reason, Field: verr.Field})
		return
	}

	switch {
	case errors.Is(err, simplegallery.ErrPageNotFound),
		errors.Is(err, simplegallery.ErrRowNotFound),
		errors.Is(err, simplegallery.ErrImageNotFound),
		errors.Is(err, simplegallery.ErrShareLinkNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, ErrorResponse{Error: err.Error()})
	default:
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: err.Error()})
	}
}

func writeInvalid(w http.ResponseWriter, r *http.Request, message string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, ErrorResponse{Error: message})
}
