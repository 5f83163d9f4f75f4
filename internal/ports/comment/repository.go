package comment

import (
	"context"
	"time"

	"postboard/internal/core/comment"
)

// CommentRepository is the storage port for comments.
type CommentRepository interface {
	Create(ctx context.Context, postID string, in CommentCreate) (*comment.Comment, error)
	GetByID(ctx context.Context, id string) (*comment.Comment, error)
	Update(ctx context.Context, id string, in CommentUpdate) (*comment.Comment, error)
	Delete(ctx context.Context, id string) (*comment.Comment, error)
	ListForPost(ctx context.Context, postID string) ([]*comment.Comment, error)
}

type CommentCreate struct {
	Content string
	UserID  string
}

// CommentUpdate is a partial update: nil fields are left untouched.
type CommentUpdate struct {
	Content *string
}

type CommentDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PostID    string    `json:"post_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentWithUserDTO is a comment row joined with its author's name.
type CommentWithUserDTO struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	PostID   string `json:"post_id"`
	Content  string `json:"content"`
	UserName string `json:"user_name"`
}

func NewCommentDTO(c *comment.Comment) *CommentDTO {
	return &CommentDTO{
		ID:        c.ID,
		UserID:    c.UserID,
		PostID:    c.PostID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func NewCommentDTOs(comments []*comment.Comment) []*CommentDTO {
	dtos := make([]*CommentDTO, 0, len(comments))
	for _, c := range comments {
		dtos = append(dtos, NewCommentDTO(c))
	}
	return dtos
}
