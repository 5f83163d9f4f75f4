package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"postboard/internal/core/comment"
	commentPort "postboard/internal/ports/comment"
)

// CommentRepositoryDatabase implements commentPort.CommentRepository with gorm.
type CommentRepositoryDatabase struct {
	db *gorm.DB
}

func NewCommentRepositoryDatabase(db *gorm.DB) *CommentRepositoryDatabase {
	return &CommentRepositoryDatabase{db: db}
}

func (repo *CommentRepositoryDatabase) Create(ctx context.Context, postID string, in commentPort.CommentCreate) (*comment.Comment, error) {
	id, err := newID()
	if err != nil {
		return nil, fmt.Errorf("generate comment id: %w", err)
	}
	c := &comment.Comment{
		ID:      id,
		UserID:  in.UserID,
		PostID:  postID,
		Content: in.Content,
	}
	if err := repo.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (repo *CommentRepositoryDatabase) GetByID(ctx context.Context, id string) (*comment.Comment, error) {
	var c comment.Comment
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// Update applies only the fields present in in; user_id and post_id never change.
func (repo *CommentRepositoryDatabase) Update(ctx context.Context, id string, in commentPort.CommentUpdate) (*comment.Comment, error) {
	c, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("update comment %s: %w", id, gorm.ErrRecordNotFound)
	}
	if in.Content == nil {
		return c, nil
	}

	c.Content = *in.Content
	if err := repo.db.WithContext(ctx).Model(c).Select("content", "updated_at").Updates(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (repo *CommentRepositoryDatabase) Delete(ctx context.Context, id string) (*comment.Comment, error) {
	c, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("delete comment %s: %w", id, gorm.ErrRecordNotFound)
	}
	if err := repo.db.WithContext(ctx).Delete(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (repo *CommentRepositoryDatabase) ListForPost(ctx context.Context, postID string) ([]*comment.Comment, error) {
	var comments []*comment.Comment
	if err := repo.db.WithContext(ctx).Where("post_id = ?", postID).Order("created_at").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}
