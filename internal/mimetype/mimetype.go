// Package mimetype resolves object keys to the content types used to annotate
// presigned responses. Lookups are pure extension-table matches with a safe
// fallback; they never touch the stored object.
package mimetype

import (
	"path"
	"strings"
)

var videoMimes = map[string]string{
	"mp4":  "video/mp4",
	"m4v":  "video/x-m4v",
	"mkv":  "video/x-matroska",
	"webm": "video/webm",
	"avi":  "video/x-msvideo",
	"mov":  "video/quicktime",
	"3gp":  "video/3gpp",
	"ts":   "video/mp2t",
	"flv":  "video/x-flv",
}

var imageMimes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"webp": "image/webp",
}

// Ext returns the lower-cased extension of an object key, without the dot.
func Ext(key string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(key), "."))
}

// GuessVideo maps an object key to a video content type.
// Unknown extensions fall back to application/octet-stream.
func GuessVideo(key string) string {
	if mt, ok := videoMimes[Ext(key)]; ok {
		return mt
	}
	return "application/octet-stream"
}

// GuessImage maps an object key to an image content type.
// Unknown extensions fall back to image/jpeg.
func GuessImage(key string) string {
	if mt, ok := imageMimes[Ext(key)]; ok {
		return mt
	}
	return "image/jpeg"
}
