package dto

import (
	"time"

	"github.com/OzanKEreal/EndlleesTube/internal/video/domain"
)

type UploadInput struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Visibility  string `json:"visibility" validate:"omitempty,oneof=PUBLIC UNLISTED PRIVATE"`
	Tags        string `json:"tags"`
}

type UploaderOutput struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

type VideoOutput struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Tags          string         `json:"tags,omitempty"`
	VideoPath     string         `json:"videoPath"`
	ThumbnailPath string         `json:"thumbnailPath"`
	Duration      int            `json:"duration"`
	ViewCount     int            `json:"viewCount"`
	LikeCount     int            `json:"likeCount"`
	CommentCount  int            `json:"commentCount"`
	Visibility    string         `json:"visibility"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	User          UploaderOutput `json:"user"`
}

func NewVideoOutput(v *domain.Video) *VideoOutput {
	return &VideoOutput{
		ID:            v.ID,
		Title:         v.Title,
		Description:   v.Description,
		Tags:          v.Tags,
		VideoPath:     v.VideoPath,
		ThumbnailPath: v.ThumbnailPath,
		Duration:      v.Duration,
		ViewCount:     v.ViewCount,
		LikeCount:     v.LikeCount,
		CommentCount:  v.CommentCount,
		Visibility:    v.Visibility,
		Status:        v.Status,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
		User: UploaderOutput{
			ID:          v.UserID,
			Username:    v.UploaderUsername,
			DisplayName: v.UploaderDisplayName,
		},
	}
}

// Pagination mirrors the envelope the catalogue listing returns.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type VideoPage struct {
	Videos     []*VideoOutput `json:"videos"`
	Pagination Pagination     `json:"pagination"`
}
