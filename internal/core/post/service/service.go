package postapp

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"postboard/internal/core/errs"
	commentPort "postboard/internal/ports/comment"
	postPort "postboard/internal/ports/post"
	userPort "postboard/internal/ports/user"
)

const (
	entityPost = "Post"
	entityUser = "User"
)

type PostService struct {
	PostRepository postPort.PostRepository
	UserRepository userPort.UserRepository // owner lookups
	logger         *zap.Logger
}

func NewPostService(postRepo postPort.PostRepository, userRepo userPort.UserRepository, logger *zap.Logger) *PostService {
	return &PostService{
		PostRepository: postRepo,
		UserRepository: userRepo,
		logger:         logger,
	}
}

// CreatePost stores a post for an existing user. Nothing is written when the
// user is missing.
func (s *PostService) CreatePost(ctx context.Context, in postPort.PostCreate) (*postPort.PostDTO, error) {
	if err := s.userMustExist(ctx, in.UserID); err != nil {
		return nil, err
	}

	p, err := s.PostRepository.Create(ctx, in)
	if err != nil {
		s.logger.Error("create post failed", zap.String("userID", in.UserID), zap.Error(err))
		return nil, errs.CreationRejected(entityPost, err)
	}
	if p == nil {
		return nil, errs.CreationRejected(entityPost, nil)
	}
	s.logger.Info("post created", zap.String("postID", p.ID), zap.String("userID", p.UserID))
	return postPort.NewPostDTO(p), nil
}

func (s *PostService) ListPosts(ctx context.Context) ([]*postPort.PostDTO, error) {
	posts, err := s.PostRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return postPort.NewPostDTOs(posts), nil
}

func (s *PostService) GetPost(ctx context.Context, id string) (*postPort.PostDTO, error) {
	p, err := s.PostRepository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get post %s: %w", id, err)
	}
	if p == nil {
		return nil, errs.NotFound(entityPost)
	}
	return postPort.NewPostDTO(p), nil
}

// UpdatePost replaces title, content and user_id. Moving the post to another
// owner requires that owner to exist.
func (s *PostService) UpdatePost(ctx context.Context, id string, in postPort.PostUpdate) (*postPort.PostDTO, error) {
	current, err := s.PostRepository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get post %s: %w", id, err)
	}
	if current == nil {
		return nil, errs.NotFound(entityPost)
	}
	if in.UserID != "" && in.UserID != current.UserID {
		if err := s.userMustExist(ctx, in.UserID); err != nil {
			return nil, err
		}
	}

	p, err := s.PostRepository.Update(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("update post %s: %w", id, err)
	}
	return postPort.NewPostDTO(p), nil
}

func (s *PostService) DeletePost(ctx context.Context, id string) (*postPort.PostDTO, error) {
	existing, err := s.PostRepository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get post %s: %w", id, err)
	}
	if existing == nil {
		return nil, errs.NotFound(entityPost)
	}

	p, err := s.PostRepository.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete post %s: %w", id, err)
	}
	s.logger.Info("post deleted", zap.String("postID", id))
	return postPort.NewPostDTO(p), nil
}

func (s *PostService) userMustExist(ctx context.Context, userID string) error {
	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user %s: %w", userID, err)
	}
	if u == nil {
		return errs.NotFound(entityUser)
	}
	return nil
}

// ListPostComments returns the raw comments under a post, without author names.
func (s *PostService) ListPostComments(ctx context.Context, id string) ([]*commentPort.CommentDTO, error) {
	existing, err := s.PostRepository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get post %s: %w", id, err)
	}
	if existing == nil {
		return nil, errs.NotFound(entityPost)
	}

	comments, err := s.PostRepository.ListComments(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list comments of post %s: %w", id, err)
	}
	return commentPort.NewCommentDTOs(comments), nil
}
