package user

import (
	"context"
	"time"

	"postboard/internal/core/post"
	"postboard/internal/core/user"
)

// UserRepository is the storage port for users.
// GetByID returns (nil, nil) when no user has the given id.
type UserRepository interface {
	Create(ctx context.Context, in UserCreate) (*user.User, error)
	List(ctx context.Context) ([]*user.User, error)
	GetByID(ctx context.Context, id string) (*user.User, error)
	Update(ctx context.Context, id string, in UserUpdate) (*user.User, error)
	Delete(ctx context.Context, id string) (*user.User, error)
	ListPosts(ctx context.Context, userID string) ([]*post.Post, error)
}

// NameCache keeps user display names close to the comment listing.
// A miss is reported as ("", false, nil). Readers fill it with
// SetNameIfAbsent so a name read before a rename never replaces the one the
// rename wrote with SetName.
type NameCache interface {
	GetName(ctx context.Context, userID string) (string, bool, error)
	SetName(ctx context.Context, userID, name string) error
	SetNameIfAbsent(ctx context.Context, userID, name string) error
	Forget(ctx context.Context, userID string) error
}

// UserCreate carries the optional name of a new user.
type UserCreate struct {
	Name *string
}

// UserUpdate is a partial update: nil fields are left untouched.
type UserUpdate struct {
	Name *string
}

type UserDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewUserDTO(u *user.User) *UserDTO {
	return &UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func NewUserDTOs(users []*user.User) []*UserDTO {
	dtos := make([]*UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, NewUserDTO(u))
	}
	return dtos
}
