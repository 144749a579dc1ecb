package api

import (
	"net/http"

	"github.com/fiveflix/videos-ms-go/internal/usecase/catalog"
)

// VideoInfoHandler answers the playback bootstrap call: metadata plus
// short-lived signed URLs for the player.
func VideoInfoHandler(svc catalog.InfoGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathVideoID(w, r)
		if !ok {
			return
		}
		out, err := svc.GetVideoInfo(r.Context(), id)
		if err != nil {
			writeCatalogError(w, err)
			return
		}
		WriteSuccess(w, http.StatusOK, "", out)
	}
}
