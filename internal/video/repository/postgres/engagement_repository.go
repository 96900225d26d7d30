package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// EngagementRepository covers likes and view tracking. Both mutate a
// per-video counter together with their own row, so every operation runs in
// one transaction.
type EngagementRepository struct {
	db DB
}

func NewEngagementRepository(db DB) *EngagementRepository {
	return &EngagementRepository{db: db}
}

func (r *EngagementRepository) ToggleLike(ctx context.Context, videoID, userID string) (bool, int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, 0, fmt.Errorf("failed to begin like toggle: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var likeID string
	err = tx.QueryRow(ctx,
		`SELECT id FROM likes WHERE video_id = $1 AND user_id = $2`,
		videoID, userID).Scan(&likeID)

	var liked bool
	var likeCount int

	switch {
	case err == nil:
		// Unlike.
		if _, err := tx.Exec(ctx, `DELETE FROM likes WHERE id = $1`, likeID); err != nil {
			return false, 0, fmt.Errorf("failed to delete like: %w", err)
		}
		err = tx.QueryRow(ctx,
			`UPDATE videos SET like_count = like_count - 1 WHERE id = $1 RETURNING like_count`,
			videoID).Scan(&likeCount)
		if err != nil {
			return false, 0, fmt.Errorf("failed to decrement like count: %w", err)
		}

	case errors.Is(err, pgx.ErrNoRows):
		// Like.
		_, err = tx.Exec(ctx,
			`INSERT INTO likes (id, video_id, user_id, created_at) VALUES ($1, $2, $3, $4)`,
			uuid.NewString(), videoID, userID, time.Now())
		if err != nil {
			return false, 0, fmt.Errorf("failed to insert like: %w", err)
		}
		err = tx.QueryRow(ctx,
			`UPDATE videos SET like_count = like_count + 1 WHERE id = $1 RETURNING like_count`,
			videoID).Scan(&likeCount)
		if err != nil {
			return false, 0, fmt.Errorf("failed to increment like count: %w", err)
		}
		liked = true

	default:
		return false, 0, fmt.Errorf("failed to look up like: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, 0, fmt.Errorf("failed to commit like toggle: %w", err)
	}

	return liked, likeCount, nil
}

func (r *EngagementRepository) RecordView(ctx context.Context, videoID, userID, ipHash string) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin view insert: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Anonymous viewers carry a NULL user_id; dedupe then falls back to the
	// ip hash alone.
	var viewerID any
	if userID != "" {
		viewerID = userID
	}

	var exists bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM views
			WHERE video_id = $1
			  AND (ip_hash = $2 OR ($3::uuid IS NOT NULL AND user_id = $3::uuid))
		)`, videoID, ipHash, viewerID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check existing view: %w", err)
	}

	if exists {
		return false, tx.Commit(ctx)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO views (id, video_id, user_id, ip_hash, created_at) VALUES ($1, $2, $3, $4, $5)`,
		uuid.NewString(), videoID, viewerID, ipHash, time.Now())
	if err != nil {
		return false, fmt.Errorf("failed to insert view: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE videos SET view_count = view_count + 1 WHERE id = $1`, videoID)
	if err != nil {
		return false, fmt.Errorf("failed to increment view count: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit view: %w", err)
	}

	return true, nil
}
