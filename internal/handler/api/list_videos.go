package api

import (
	"net/http"

	"github.com/fiveflix/videos-ms-go/internal/usecase/catalog"
)

// ListVideosHandler serves the catalog listing. The same handler backs the
// featured-only route.
func ListVideosHandler(svc catalog.Lister, featuredOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListVideos(r.Context(), catalog.ListVideosInput{FeaturedOnly: featuredOnly})
		if err != nil {
			writeCatalogError(w, err)
			return
		}
		WriteSuccess(w, http.StatusOK, "", items)
	}
}
