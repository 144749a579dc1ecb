package api

import (
	"net/http"

	"github.com/fiveflix/videos-ms-go/internal/usecase/catalog"
)

// DownloadVideoHandler hands out attachment-disposition links. The thumbnail
// is included unless ?include_thumbnail says otherwise.
func DownloadVideoHandler(svc catalog.Downloader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathVideoID(w, r)
		if !ok {
			return
		}

		includeThumb := true
		if v, present := queryBool(r, "include_thumbnail"); present {
			includeThumb = v
		}

		out, err := svc.DownloadVideo(r.Context(), catalog.DownloadVideoInput{
			ID:               id,
			TTL:              queryTTL(r),
			IncludeThumbnail: includeThumb,
		})
		if err != nil {
			writeCatalogError(w, err)
			return
		}
		WriteSuccess(w, http.StatusOK, "", out)
	}
}
