package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"postboard/internal/core/comment"
	"postboard/internal/core/post"
	postPort "postboard/internal/ports/post"
)

// PostRepositoryDatabase implements postPort.PostRepository with gorm.
type PostRepositoryDatabase struct {
	db *gorm.DB
}

func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, in postPort.PostCreate) (*post.Post, error) {
	id, err := newID()
	if err != nil {
		return nil, fmt.Errorf("generate post id: %w", err)
	}
	p := &post.Post{
		ID:      id,
		UserID:  in.UserID,
		Title:   in.Title,
		Content: in.Content,
	}
	if err := repo.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (repo *PostRepositoryDatabase) List(ctx context.Context) ([]*post.Post, error) {
	var posts []*post.Post
	if err := repo.db.WithContext(ctx).Order("created_at").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (repo *PostRepositoryDatabase) GetByID(ctx context.Context, id string) (*post.Post, error) {
	var p post.Post
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Update overwrites title, content and user_id from in, even when they are
// empty or unchanged.
func (repo *PostRepositoryDatabase) Update(ctx context.Context, id string, in postPort.PostUpdate) (*post.Post, error) {
	p, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("update post %s: %w", id, gorm.ErrRecordNotFound)
	}

	p.Title = in.Title
	p.Content = in.Content
	p.UserID = in.UserID
	if err := repo.db.WithContext(ctx).Model(p).
		Select("title", "content", "user_id", "updated_at").
		Updates(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (repo *PostRepositoryDatabase) Delete(ctx context.Context, id string) (*post.Post, error) {
	p, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("delete post %s: %w", id, gorm.ErrRecordNotFound)
	}
	if err := repo.db.WithContext(ctx).Delete(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (repo *PostRepositoryDatabase) ListComments(ctx context.Context, postID string) ([]*comment.Comment, error) {
	var comments []*comment.Comment
	if err := repo.db.WithContext(ctx).Where("post_id = ?", postID).Order("created_at").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}
