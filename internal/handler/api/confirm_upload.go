package api

import (
	"encoding/json"
	"net/http"

	"github.com/fiveflix/videos-ms-go/internal/usecase/catalog"
	"github.com/fiveflix/videos-ms-go/internal/validation"
)

type confirmUploadRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Genre       string  `json:"genre" validate:"required,max=100"`
	Description *string `json:"description"`
	Duration    int     `json:"duration" validate:"required,gt=0"`
	Year        int     `json:"year" validate:"required,gte=1900,lte=2030"`
	IsFeatured  any     `json:"is_featured"`
	VideoKey    string  `json:"video_key" validate:"required"`
	ThumbKey    string  `json:"thumb_key" validate:"required"`
}

// ConfirmUploadHandler registers a record for objects the client already
// pushed through presigned upload URLs.
func ConfirmUploadHandler(svc catalog.UploadConfirmer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req confirmUploadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid JSON payload", nil)
			return
		}
		if err := validation.ValidateStruct(req); err != nil {
			WriteValidationError(w, validation.ErrorsToMap(err))
			return
		}

		out, err := svc.ConfirmUpload(r.Context(), catalog.ConfirmUploadInput{
			Title:       req.Title,
			Genre:       req.Genre,
			Description: req.Description,
			Duration:    req.Duration,
			Year:        req.Year,
			IsFeatured:  catalog.CoerceBool(req.IsFeatured),
			VideoKey:    req.VideoKey,
			ThumbKey:    req.ThumbKey,
		})
		if err != nil {
			writeCatalogError(w, err)
			return
		}
		WriteSuccess(w, http.StatusCreated, "Video registered successfully", out)
	}
}
