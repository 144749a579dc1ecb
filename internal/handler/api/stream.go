package api

import (
	"net/http"

	"github.com/fiveflix/videos-ms-go/internal/usecase/catalog"
)

// StreamHandler redirects to a freshly signed object URL. With ?json=1 it
// returns the URL and its lifetime instead of redirecting. thumbnail selects
// which of the record's two objects is signed.
func StreamHandler(svc catalog.Streamer, thumbnail bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathVideoID(w, r)
		if !ok {
			return
		}

		in := catalog.StreamInput{ID: id, TTL: queryTTL(r)}
		var (
			out catalog.StreamOutput
			err error
		)
		if thumbnail {
			out, err = svc.ThumbnailURL(r.Context(), in)
		} else {
			out, err = svc.StreamURL(r.Context(), in)
		}
		if err != nil {
			writeCatalogError(w, err)
			return
		}

		if asJSON, _ := queryBool(r, "json"); asJSON {
			WriteSuccess(w, http.StatusOK, "", out)
			return
		}
		w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
		http.Redirect(w, r, out.URL, http.StatusFound)
	}
}
