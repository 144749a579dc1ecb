// Package objectkey turns stored video/thumbnail references into canonical
// bucket-relative object keys. Columns may hold a bare key ("videos/abc.mp4"),
// a virtual-host S3 URL or a path-style S3 URL; all three normalize to the
// same key.
package objectkey

import (
	"net/url"
	"strings"
)

// Normalize maps an arbitrary stored reference to a canonical object key.
// It returns "" when the reference is blank or cannot be resolved to a key.
// The bucket name decides whether a URL path is path-style (bucket prefix is
// stripped) or virtual-host style (path is already the key). Normalize is
// idempotent and never fails.
func Normalize(bucket, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		// already a relative key
		return strings.TrimPrefix(raw, "/")
	}

	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		return ""
	}

	path := strings.TrimPrefix(u.Path, "/")
	if bucket != "" && strings.HasPrefix(path, bucket+"/") {
		// path-style: "<bucket>/videos/abc.mp4"
		return path[len(bucket)+1:]
	}
	// virtual-host style: path is the key itself
	return path
}
