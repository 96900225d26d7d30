package domain

//go:generate mockgen -destination=../../mocks/mock_video_repositories.go -package=mocks github.com/OzanKEreal/EndlleesTube/internal/video/domain VideoRepository,CommentRepository,EngagementRepository

import "context"

// ListParams narrows the public catalogue query. Search matches title,
// description and uploader display name case-insensitively.
type ListParams struct {
	Page       int
	Limit      int
	Search     string
	Visibility string
}

type VideoRepository interface {
	Create(ctx context.Context, video *Video) error
	// GetByID returns (nil, nil) for missing or soft-deleted videos.
	GetByID(ctx context.Context, id string) (*Video, error)
	// List returns one page of READY, non-deleted videos plus the total count.
	List(ctx context.Context, params ListParams) ([]*Video, int, error)
	ListByUserID(ctx context.Context, userID string) ([]*Video, error)
}

type CommentRepository interface {
	// Create inserts the comment and bumps the video's comment_count in the
	// same transaction.
	Create(ctx context.Context, comment *Comment) error
	// ListByVideoID returns visible comments, top-level newest first and
	// replies oldest first.
	ListByVideoID(ctx context.Context, videoID string) ([]*Comment, error)
}

type EngagementRepository interface {
	// ToggleLike flips the user's like and returns the new state plus the
	// resulting like count.
	ToggleLike(ctx context.Context, videoID, userID string) (bool, int, error)
	// RecordView inserts a view unless one already exists for the same ip
	// hash or user. It reports whether a new view was counted.
	RecordView(ctx context.Context, videoID, userID, ipHash string) (bool, error)
}
