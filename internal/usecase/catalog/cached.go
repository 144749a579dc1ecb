package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"

	"github.com/fiveflix/videos-ms-go/internal/model"
	"github.com/fiveflix/videos-ms-go/internal/port"
)

// loadVideo is the read-through path for a single record: cache hit wins,
// otherwise the repository loads and the successful result is stored back.
// Loader failures are never cached.
func loadVideo(ctx context.Context, c port.Cache, repo port.VideoRepository, id int64) (*model.Video, error) {
	raw, err := c.GetVideo(ctx, id)
	if err != nil {
		log.Printf("cache read failed for video #%d: %v", id, err)
	} else if raw != nil {
		var video model.Video
		if err := json.Unmarshal(raw, &video); err == nil {
			return &video, nil
		}
		log.Printf("discarding corrupt cache entry for video #%d", id)
	}

	video, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if raw, err := json.Marshal(video); err == nil {
		c.SetVideo(ctx, id, raw)
	}
	return video, nil
}

// loadList is the read-through path for the index and featured regions.
func loadList(ctx context.Context, c port.Cache, repo port.VideoRepository, featured bool) ([]model.Video, error) {
	raw, err := c.GetList(ctx, featured)
	if err != nil {
		log.Printf("cache read failed for video list (featured: %t): %v", featured, err)
	} else if raw != nil {
		var videos []model.Video
		if err := json.Unmarshal(raw, &videos); err == nil {
			return videos, nil
		}
		log.Printf("discarding corrupt cache entry for video list (featured: %t)", featured)
	}

	videos, err := repo.List(ctx, featured)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(videos); err == nil {
		c.SetList(ctx, featured, raw)
	}
	return videos, nil
}
