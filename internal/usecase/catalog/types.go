package catalog

import (
	"fmt"
	"math"
	"strings"

	"github.com/fiveflix/videos-ms-go/internal/model"
)

// VideoOutput is the record shape shared by every catalog read.
type VideoOutput struct {
	ID                int64   `json:"id"`
	Title             string  `json:"title"`
	Genre             string  `json:"genre"`
	Description       *string `json:"description"`
	Duration          int     `json:"duration"`
	DurationMinutes   float64 `json:"duration_minutes"`
	DurationFormatted string  `json:"duration_formatted"`
	Year              int     `json:"year"`
	IsFeatured        bool    `json:"is_featured"`
}

func videoOutputOf(v *model.Video) VideoOutput {
	return VideoOutput{
		ID:                v.ID,
		Title:             v.Title,
		Genre:             v.Genre,
		Description:       v.Description,
		Duration:          v.Duration,
		DurationMinutes:   DurationMinutes(v.Duration),
		DurationFormatted: FormatDuration(v.Duration),
		Year:              v.Year,
		IsFeatured:        v.IsFeatured,
	}
}

// FormatDuration renders seconds as "MM:SS", or "H:MM:SS" past the hour.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// DurationMinutes converts seconds to minutes rounded to one decimal.
func DurationMinutes(seconds int) float64 {
	if seconds < 0 {
		seconds = 0
	}
	return math.Round(float64(seconds)/60*10) / 10
}

// Slugify flattens a title into a filename-safe slug. Anything that is not
// an ASCII letter or digit becomes a hyphen; runs collapse to one.
func Slugify(title string) string {
	var b strings.Builder
	prevHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevHyphen = false
		default:
			if !prevHyphen {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "video"
	}
	return slug
}

// CoerceBool applies the permissive truthiness used by form-style payloads:
// only true, "true", 1 and "1" count as true.
func CoerceBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true" || t == "1"
	case int:
		return t == 1
	case float64:
		return t == 1
	default:
		return false
	}
}

func streamEndpoint(id int64) string {
	return fmt.Sprintf("/videos/%d/stream", id)
}

func thumbnailEndpoint(id int64) string {
	return fmt.Sprintf("/videos/%d/thumbnail", id)
}

func keyOrNil(key string) *string {
	if key == "" {
		return nil
	}
	return &key
}
