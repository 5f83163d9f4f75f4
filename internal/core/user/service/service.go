package userapp

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"postboard/internal/core/errs"
	postPort "postboard/internal/ports/post"
	userPort "postboard/internal/ports/user"
)

const entityUser = "User"

// UserService holds the user use cases.
type UserService struct {
	UserRepository userPort.UserRepository
	NameCache      userPort.NameCache // nil when Redis is disabled
	logger         *zap.Logger
}

func NewUserService(repo userPort.UserRepository, cache userPort.NameCache, logger *zap.Logger) *UserService {
	return &UserService{
		UserRepository: repo,
		NameCache:      cache,
		logger:         logger,
	}
}

// CreateUser stores a new user. A nil name falls back to the default name.
func (s *UserService) CreateUser(ctx context.Context, name *string) (*userPort.UserDTO, error) {
	u, err := s.UserRepository.Create(ctx, userPort.UserCreate{Name: name})
	if err != nil {
		s.logger.Error("create user failed", zap.Error(err))
		return nil, errs.CreationRejected(entityUser, err)
	}
	if u == nil {
		return nil, errs.CreationRejected(entityUser, nil)
	}
	s.logger.Info("user created", zap.String("userID", u.ID))
	return userPort.NewUserDTO(u), nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*userPort.UserDTO, error) {
	users, err := s.UserRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return userPort.NewUserDTOs(users), nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*userPort.UserDTO, error) {
	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	if u == nil {
		return nil, errs.NotFound(entityUser)
	}
	return userPort.NewUserDTO(u), nil
}

// UpdateUser merges the supplied fields. updated_at is refreshed even when
// nothing else is.
func (s *UserService) UpdateUser(ctx context.Context, id string, name *string) (*userPort.UserDTO, error) {
	if err := s.mustExist(ctx, id); err != nil {
		return nil, err
	}
	u, err := s.UserRepository.Update(ctx, id, userPort.UserUpdate{Name: name})
	if err != nil {
		return nil, fmt.Errorf("update user %s: %w", id, err)
	}
	s.cacheName(ctx, u.ID, u.Name)
	return userPort.NewUserDTO(u), nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) (*userPort.UserDTO, error) {
	if err := s.mustExist(ctx, id); err != nil {
		return nil, err
	}
	u, err := s.UserRepository.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete user %s: %w", id, err)
	}
	s.forgetName(ctx, id)
	s.logger.Info("user deleted", zap.String("userID", id))
	return userPort.NewUserDTO(u), nil
}

func (s *UserService) ListUserPosts(ctx context.Context, id string) ([]*postPort.PostDTO, error) {
	if err := s.mustExist(ctx, id); err != nil {
		return nil, err
	}
	posts, err := s.UserRepository.ListPosts(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list posts of user %s: %w", id, err)
	}
	return postPort.NewPostDTOs(posts), nil
}

func (s *UserService) mustExist(ctx context.Context, id string) error {
	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get user %s: %w", id, err)
	}
	if u == nil {
		return errs.NotFound(entityUser)
	}
	return nil
}

// cacheName overwrites the cached display name after a rename. Readers only
// fill absent keys, so the stored name wins over one they read earlier.
func (s *UserService) cacheName(ctx context.Context, id, name string) {
	if s.NameCache == nil {
		return
	}
	if err := s.NameCache.SetName(ctx, id, name); err != nil {
		s.logger.Warn("user name cache update failed", zap.String("userID", id), zap.Error(err))
	}
}

// forgetName drops the cached display name. Cache failures only cost a
// stale name until the TTL runs out, so they are logged and ignored.
func (s *UserService) forgetName(ctx context.Context, id string) {
	if s.NameCache == nil {
		return
	}
	if err := s.NameCache.Forget(ctx, id); err != nil {
		s.logger.Warn("user name cache invalidation failed", zap.String("userID", id), zap.Error(err))
	}
}
