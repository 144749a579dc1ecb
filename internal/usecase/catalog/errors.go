package catalog

import "errors"

var (
	// ErrNotFound marks an unknown video id. It maps to a 404 at the boundary,
	// never to a generic failure.
	ErrNotFound = errors.New("video not found")
	// ErrNoChanges rejects an update request that produced no valid change.
	ErrNoChanges = errors.New("no valid fields to update")
	// ErrInvalidKey marks a stored reference that does not normalize to an
	// object key.
	ErrInvalidKey = errors.New("invalid object key")
	// ErrUploadIncomplete rejects a confirm step whose object never arrived.
	ErrUploadIncomplete = errors.New("upload not completed")

	ErrObjectNotFound   = errors.New("storage: object not found")
	ErrBucketNotFound   = errors.New("storage: bucket not found")
	ErrStorageForbidden = errors.New("storage: unauthorized")
	ErrStorageInternal  = errors.New("storage: internal error")
)
