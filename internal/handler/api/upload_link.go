package api

import (
	"encoding/json"
	"net/http"

	"github.com/fiveflix/videos-ms-go/internal/usecase/catalog"
	"github.com/fiveflix/videos-ms-go/internal/validation"
)

type uploadLinkRequest struct {
	VideoFilename    string `json:"video_filename" validate:"required,max=255"`
	ThumbFilename    string `json:"thumb_filename" validate:"required,max=255"`
	VideoContentType string `json:"video_content_type"`
	ThumbContentType string `json:"thumb_content_type"`
}

// UploadLinkHandler issues a pair of presigned PUT URLs so large binaries
// bypass the API entirely.
func UploadLinkHandler(svc catalog.UploadLinkGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req uploadLinkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid JSON payload", nil)
			return
		}
		if err := validation.ValidateStruct(req); err != nil {
			WriteValidationError(w, validation.ErrorsToMap(err))
			return
		}

		out, err := svc.GenerateUploadURLs(r.Context(), catalog.GenerateUploadURLsInput{
			VideoFilename:    req.VideoFilename,
			ThumbFilename:    req.ThumbFilename,
			VideoContentType: req.VideoContentType,
			ThumbContentType: req.ThumbContentType,
		})
		if err != nil {
			writeCatalogError(w, err)
			return
		}
		WriteSuccess(w, http.StatusOK, "", out)
	}
}
