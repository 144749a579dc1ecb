package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fiveflix/videos-ms-go/internal/api_context"
	"github.com/fiveflix/videos-ms-go/internal/usecase/catalog"
)

// pathVideoID reads the id the WithVideoID middleware stashed.
func pathVideoID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := api_context.VideoIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid video id", nil)
		return 0, false
	}
	return id, true
}

// queryTTL parses the ?ttl= seconds parameter. Absent or unparsable values
// yield zero, which the catalog layer maps to its default.
func queryTTL(r *http.Request) time.Duration {
	raw := r.URL.Query().Get("ttl")
	if raw == "" {
		return 0
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// queryBool reports the coerced value and whether the parameter was present.
func queryBool(r *http.Request, name string) (bool, bool) {
	if !r.URL.Query().Has(name) {
		return false, false
	}
	return catalog.CoerceBool(r.URL.Query().Get(name)), true
}

// writeCatalogError maps catalog sentinel errors onto the HTTP surface.
func writeCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		WriteError(w, http.StatusNotFound, "Video not found", nil)
	case errors.Is(err, catalog.ErrNoChanges):
		WriteError(w, http.StatusBadRequest, "No valid fields to update", nil)
	case errors.Is(err, catalog.ErrInvalidKey):
		WriteError(w, http.StatusBadRequest, "Video has no stored object key", nil)
	case errors.Is(err, catalog.ErrObjectNotFound):
		WriteError(w, http.StatusNotFound, "File not found in storage", nil)
	case errors.Is(err, catalog.ErrUploadIncomplete):
		WriteError(w, http.StatusBadRequest, "Video upload not completed", nil)
	case errors.Is(err, catalog.ErrBucketNotFound),
		errors.Is(err, catalog.ErrStorageForbidden),
		errors.Is(err, catalog.ErrStorageInternal):
		WriteError(w, http.StatusBadGateway, "Storage error", err)
	default:
		WriteError(w, http.StatusInternalServerError, "Internal server error", err)
	}
}
