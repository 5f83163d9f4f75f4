package post

import (
	"context"
	"time"

	"postboard/internal/core/comment"
	"postboard/internal/core/post"
)

// PostRepository is the storage port for posts.
// Create does not check that the owning user exists; callers do.
type PostRepository interface {
	Create(ctx context.Context, in PostCreate) (*post.Post, error)
	List(ctx context.Context) ([]*post.Post, error)
	GetByID(ctx context.Context, id string) (*post.Post, error)
	Update(ctx context.Context, id string, in PostUpdate) (*post.Post, error)
	Delete(ctx context.Context, id string) (*post.Post, error)
	ListComments(ctx context.Context, postID string) ([]*comment.Comment, error)
}

type PostCreate struct {
	Title   string
	Content string
	UserID  string
}

// PostUpdate replaces every mutable field, including ones left empty.
type PostUpdate struct {
	Title   string
	Content string
	UserID  string
}

type PostDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewPostDTO(p *post.Post) *PostDTO {
	return &PostDTO{
		ID:        p.ID,
		UserID:    p.UserID,
		Title:     p.Title,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func NewPostDTOs(posts []*post.Post) []*PostDTO {
	dtos := make([]*PostDTO, 0, len(posts))
	for _, p := range posts {
		dtos = append(dtos, NewPostDTO(p))
	}
	return dtos
}
