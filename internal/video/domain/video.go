package domain

import "time"

const (
	VisibilityPublic   = "PUBLIC"
	VisibilityUnlisted = "UNLISTED"
	VisibilityPrivate  = "PRIVATE"
)

const (
	StatusProcessing = "PROCESSING"
	StatusReady      = "READY"
	StatusFailed     = "FAILED"
)

type Video struct {
	ID            string
	UserID        string
	Title         string
	Description   string
	Tags          string
	Visibility    string
	Status        string
	FileSize      int64
	Duration      int
	VideoPath     string
	ThumbnailPath string
	ViewCount     int
	LikeCount     int
	CommentCount  int
	IsDeleted     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Uploader fields joined from users for list views.
	UploaderUsername    string
	UploaderDisplayName string
}

type Comment struct {
	ID        string
	VideoID   string
	UserID    string
	ParentID  *string
	Content   string
	IsDeleted bool
	IsHidden  bool
	CreatedAt time.Time

	AuthorUsername    string
	AuthorDisplayName string
}
