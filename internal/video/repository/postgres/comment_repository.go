package postgres

import (
	"context"
	"fmt"

	"github.com/OzanKEreal/EndlleesTube/internal/video/domain"
)

type CommentRepository struct {
	db DB
}

func NewCommentRepository(db DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin comment insert: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO comments (id, video_id, user_id, parent_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, comment.ID, comment.VideoID, comment.UserID, comment.ParentID,
		comment.Content, comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE videos SET comment_count = comment_count + 1 WHERE id = $1`,
		comment.VideoID)
	if err != nil {
		return fmt.Errorf("failed to bump comment count: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *CommentRepository) ListByVideoID(ctx context.Context, videoID string) ([]*domain.Comment, error) {
	// Threads sort by their top-level comment, newest thread first; within a
	// thread the parent comes first and replies run oldest first.
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.video_id, c.user_id, c.parent_id, c.content, c.created_at,
			u.username, u.display_name
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.video_id = $1 AND c.is_deleted = FALSE AND c.is_hidden = FALSE
		ORDER BY
			COALESCE((SELECT pc.created_at FROM comments pc WHERE pc.id = c.parent_id), c.created_at) DESC,
			(c.parent_id IS NOT NULL) ASC,
			c.created_at ASC`, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		var c domain.Comment
		err := rows.Scan(&c.ID, &c.VideoID, &c.UserID, &c.ParentID, &c.Content,
			&c.CreatedAt, &c.AuthorUsername, &c.AuthorDisplayName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read comments: %w", err)
	}

	return comments, nil
}
