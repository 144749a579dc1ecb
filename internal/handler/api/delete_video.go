package api

import (
	"net/http"

	"github.com/fiveflix/videos-ms-go/internal/usecase/catalog"
)

// DeleteVideoHandler removes the record and both stored objects.
func DeleteVideoHandler(svc catalog.Deleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathVideoID(w, r)
		if !ok {
			return
		}
		if err := svc.DeleteVideo(r.Context(), id); err != nil {
			writeCatalogError(w, err)
			return
		}
		WriteSuccess(w, http.StatusOK, "Video deleted successfully", nil)
	}
}
