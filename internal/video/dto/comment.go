package dto

import (
	"time"

	"github.com/OzanKEreal/EndlleesTube/internal/video/domain"
)

type CommentInput struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

type CommentOutput struct {
	ID        string           `json:"id"`
	Content   string           `json:"content"`
	CreatedAt time.Time        `json:"createdAt"`
	User      UploaderOutput   `json:"user"`
	Replies   []*CommentOutput `json:"replies"`
}

func NewCommentOutput(c *domain.Comment) *CommentOutput {
	return &CommentOutput{
		ID:        c.ID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		User: UploaderOutput{
			ID:          c.UserID,
			Username:    c.AuthorUsername,
			DisplayName: c.AuthorDisplayName,
		},
		Replies: []*CommentOutput{},
	}
}

// AssembleCommentThread turns a flat comment list into top-level comments
// with nested replies. Replies to replies attach to their direct parent.
func AssembleCommentThread(comments []*domain.Comment) []*CommentOutput {
	byID := make(map[string]*CommentOutput, len(comments))
	topLevel := make([]*CommentOutput, 0, len(comments))

	for _, c := range comments {
		byID[c.ID] = NewCommentOutput(c)
	}

	for _, c := range comments {
		out := byID[c.ID]
		if c.ParentID == nil {
			topLevel = append(topLevel, out)
			continue
		}
		if parent, ok := byID[*c.ParentID]; ok {
			parent.Replies = append(parent.Replies, out)
		}
	}

	return topLevel
}
