package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/OzanKEreal/EndlleesTube/internal/video/domain"
)

// DB is the slice of pgxpool.Pool the repositories need; pgxmock's pool
// satisfies it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

const videoColumns = `
	v.id, v.user_id, v.title, v.description, v.tags, v.visibility, v.status,
	v.file_size, v.duration, v.video_path, v.thumbnail_path,
	v.view_count, v.like_count, v.comment_count, v.created_at, v.updated_at,
	u.username, u.display_name`

type VideoRepository struct {
	db DB
}

func NewVideoRepository(db DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) Create(ctx context.Context, video *domain.Video) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO videos (id, user_id, title, description, tags, visibility, status,
			file_size, duration, video_path, thumbnail_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, video.ID, video.UserID, video.Title, video.Description, video.Tags,
		video.Visibility, video.Status, video.FileSize, video.Duration,
		video.VideoPath, video.ThumbnailPath, video.CreatedAt, video.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}
	return nil
}

func (r *VideoRepository) GetByID(ctx context.Context, id string) (*domain.Video, error) {
	query := `
		SELECT ` + videoColumns + `
		FROM videos v
		JOIN users u ON u.id = v.user_id
		WHERE v.id = $1 AND v.is_deleted = FALSE
		LIMIT 1;
	`
	video, err := scanVideo(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	return video, nil
}

func (r *VideoRepository) List(ctx context.Context, params domain.ListParams) ([]*domain.Video, int, error) {
	filter := `
		FROM videos v
		JOIN users u ON u.id = v.user_id
		WHERE v.is_deleted = FALSE AND v.status = 'READY'
		  AND ($1 = 'ALL' OR v.visibility = $1)
		  AND ($2 = '' OR v.title ILIKE '%' || $2 || '%'
			OR v.description ILIKE '%' || $2 || '%'
			OR u.display_name ILIKE '%' || $2 || '%')`

	var total int
	err := r.db.QueryRow(ctx, `SELECT count(*) `+filter, params.Visibility, params.Search).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count videos: %w", err)
	}

	offset := (params.Page - 1) * params.Limit
	rows, err := r.db.Query(ctx, `SELECT `+videoColumns+filter+`
		ORDER BY v.created_at DESC
		LIMIT $3 OFFSET $4`, params.Visibility, params.Search, params.Limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	videos, err := collectVideos(rows)
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

func (r *VideoRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Video, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+videoColumns+`
		FROM videos v
		JOIN users u ON u.id = v.user_id
		WHERE v.user_id = $1 AND v.is_deleted = FALSE
		ORDER BY v.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user videos: %w", err)
	}
	defer rows.Close()

	return collectVideos(rows)
}

func scanVideo(row pgx.Row) (*domain.Video, error) {
	var v domain.Video
	err := row.Scan(&v.ID, &v.UserID, &v.Title, &v.Description, &v.Tags,
		&v.Visibility, &v.Status, &v.FileSize, &v.Duration, &v.VideoPath,
		&v.ThumbnailPath, &v.ViewCount, &v.LikeCount, &v.CommentCount,
		&v.CreatedAt, &v.UpdatedAt, &v.UploaderUsername, &v.UploaderDisplayName)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func collectVideos(rows pgx.Rows) ([]*domain.Video, error) {
	var videos []*domain.Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, video)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read videos: %w", err)
	}
	return videos, nil
}
