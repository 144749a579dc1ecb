package model

import "time"

// Video is a catalog record. VideoKey and ThumbnailKey hold references into
// the object store; as persisted they may be bare keys or full S3 URLs, both
// of which normalize to the same canonical key.
type Video struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Genre        string    `json:"genre"`
	Description  *string   `json:"description"`
	Duration     int       `json:"duration"`
	Year         int       `json:"year"`
	IsFeatured   bool      `json:"is_featured"`
	VideoKey     *string   `json:"video_key"`
	ThumbnailKey *string   `json:"thumbnail_key"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
