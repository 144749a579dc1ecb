package mariadb

import (
	"context"
	"database/sql"
	"log"

	"github.com/fiveflix/videos-ms-go/internal/model"
	"github.com/fiveflix/videos-ms-go/internal/port"
)

type VideoRepository struct {
	db *sql.DB
}

// compile-time check: *VideoRepository must satisfy port.VideoRepository
var _ port.VideoRepository = (*VideoRepository)(nil)

func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	log.Printf("creating database record for video %q...", video.Title)

	const query = `
      INSERT INTO videos
        (title, genre, description, duration, year, is_featured, video_key, thumbnail_key)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `
	res, err := r.db.ExecContext(ctx, query,
		video.Title, video.Genre, video.Description,
		video.Duration, video.Year, video.IsFeatured,
		video.VideoKey, video.ThumbnailKey,
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	video.ID = id
	return nil
}

func (r *VideoRepository) Update(ctx context.Context, video *model.Video) error {
	log.Printf("updating database record for video #%d...", video.ID)

	const query = `
      UPDATE videos
      SET
        title         = ?,
        genre         = ?,
        description   = ?,
        duration      = ?,
        year          = ?,
        is_featured   = ?,
        video_key     = ?,
        thumbnail_key = ?
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query,
		video.Title,
		video.Genre,
		video.Description,
		video.Duration,
		video.Year,
		video.IsFeatured,
		video.VideoKey,
		video.ThumbnailKey,
		video.ID, // WHERE clause
	)
	return err
}

func (r *VideoRepository) Delete(ctx context.Context, id int64) error {
	log.Printf("deleting database record for video #%d...", id)

	const query = `DELETE FROM videos WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *VideoRepository) GetByID(ctx context.Context, id int64) (*model.Video, error) {
	log.Printf("fetching video #%d from the database...", id)

	const query = `
      SELECT id, title, genre, description, duration, year, is_featured, video_key, thumbnail_key, created_at, updated_at
      FROM videos
      WHERE id = ?
    `
	row := r.db.QueryRowContext(ctx, query, id)
	var video model.Video
	if err := row.Scan(
		&video.ID, &video.Title, &video.Genre, &video.Description,
		&video.Duration, &video.Year, &video.IsFeatured,
		&video.VideoKey, &video.ThumbnailKey,
		&video.CreatedAt, &video.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &video, nil
}

func (r *VideoRepository) List(ctx context.Context, featuredOnly bool) ([]model.Video, error) {
	log.Printf("fetching video list from the database (featured only: %t)...", featuredOnly)

	query := `
      SELECT id, title, genre, description, duration, year, is_featured, video_key, thumbnail_key, created_at, updated_at
      FROM videos
    `
	if featuredOnly {
		query += ` WHERE is_featured = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}()

	var videos []model.Video
	for rows.Next() {
		var video model.Video
		if err := rows.Scan(
			&video.ID, &video.Title, &video.Genre, &video.Description,
			&video.Duration, &video.Year, &video.IsFeatured,
			&video.VideoKey, &video.ThumbnailKey,
			&video.CreatedAt, &video.UpdatedAt,
		); err != nil {
			return nil, err
		}
		videos = append(videos, video)
	}
	return videos, rows.Err()
}
