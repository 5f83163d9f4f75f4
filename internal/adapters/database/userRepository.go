package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"postboard/internal/core/post"
	"postboard/internal/core/user"
	userPort "postboard/internal/ports/user"
)

// UserRepositoryDatabase implements userPort.UserRepository with gorm.
type UserRepositoryDatabase struct {
	db *gorm.DB
}

func NewUserRepositoryDatabase(db *gorm.DB) *UserRepositoryDatabase {
	return &UserRepositoryDatabase{db: db}
}

func (repo *UserRepositoryDatabase) Create(ctx context.Context, in userPort.UserCreate) (*user.User, error) {
	id, err := newID()
	if err != nil {
		return nil, fmt.Errorf("generate user id: %w", err)
	}
	u := &user.User{ID: id, Name: user.DefaultName}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if err := repo.db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func (repo *UserRepositoryDatabase) List(ctx context.Context) ([]*user.User, error) {
	var users []*user.User
	if err := repo.db.WithContext(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (repo *UserRepositoryDatabase) GetByID(ctx context.Context, id string) (*user.User, error) {
	var u user.User
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Update writes the supplied fields and always refreshes updated_at.
func (repo *UserRepositoryDatabase) Update(ctx context.Context, id string, in userPort.UserUpdate) (*user.User, error) {
	u, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("update user %s: %w", id, gorm.ErrRecordNotFound)
	}

	columns := []string{"updated_at"}
	if in.Name != nil {
		u.Name = *in.Name
		columns = append(columns, "name")
	}
	if err := repo.db.WithContext(ctx).Model(u).Select(columns).Updates(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes the user and returns it as it was before removal.
func (repo *UserRepositoryDatabase) Delete(ctx context.Context, id string) (*user.User, error) {
	u, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("delete user %s: %w", id, gorm.ErrRecordNotFound)
	}
	if err := repo.db.WithContext(ctx).Delete(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func (repo *UserRepositoryDatabase) ListPosts(ctx context.Context, userID string) ([]*post.Post, error) {
	var posts []*post.Post
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}
