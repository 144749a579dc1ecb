package api

import (
	"net/http"

	"github.com/fiveflix/videos-ms-go/internal/usecase/catalog"
)

// GetVideoHandler shows a single record. ?embed_signed=1 additionally embeds
// presigned URLs, signed for ?ttl= seconds.
func GetVideoHandler(svc catalog.Getter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathVideoID(w, r)
		if !ok {
			return
		}
		embed, _ := queryBool(r, "embed_signed")

		out, err := svc.GetVideo(r.Context(), catalog.GetVideoInput{
			ID:          id,
			TTL:         queryTTL(r),
			EmbedSigned: embed,
		})
		if err != nil {
			writeCatalogError(w, err)
			return
		}
		WriteSuccess(w, http.StatusOK, "", out)
	}
}
