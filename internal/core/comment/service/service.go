package commentapp

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
	entityComment = "Comment"
	entityPost    = "Post"
	entityUser    = "User"
)

type CommentService struct {
	CommentRepository commentPort.CommentRepository
	PostRepository    postPort.PostRepository
	UserRepository    userPort.UserRepository
	NameCache         userPort.NameCache // optional
	logger            *zap.Logger
}

func NewCommentService(
	commentRepo commentPort.CommentRepository,
	postRepo postPort.PostRepository,
	userRepo userPort.UserRepository,
	cache userPort.NameCache,
	logger *zap.Logger,
) *CommentService {
	return &CommentService{
		CommentRepository: commentRepo,
		PostRepository:    postRepo,
		UserRepository:    userRepo,
		NameCache:         cache,
		logger:            logger,
	}
}

// CreateCommentForPost stores a comment under postID. Both the post and the
// commenting user must exist; nothing is written otherwise.
func (s *CommentService) CreateCommentForPost(ctx context.Context, postID string, in commentPort.CommentCreate) (*commentPort.CommentDTO, error) {
	if err := s.postMustExist(ctx, postID); err != nil {
		return nil, err
	}
	u, err := s.UserRepository.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", in.UserID, err)
	}
	if u == nil {
		return nil, errs.NotFound(entityUser)
	}

	c, err := s.CommentRepository.Create(ctx, postID, in)
	if err != nil {
		s.logger.Error("create comment failed", zap.String("postID", postID), zap.Error(err))
		return nil, errs.CreationRejected(entityComment, err)
	}
	if c == nil {
		return nil, errs.CreationRejected(entityComment, nil)
	}
	s.logger.Info("comment created", zap.String("commentID", c.ID), zap.String("postID", postID))
	return commentPort.NewCommentDTO(c), nil
}

// ListCommentsForPost returns the comments under postID, each joined with its
// author's name. Authors that no longer exist get an empty name.
func (s *CommentService) ListCommentsForPost(ctx context.Context, postID string) ([]*commentPort.CommentWithUserDTO, error) {
	if err := s.postMustExist(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.CommentRepository.ListForPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments of post %s: %w", postID, err)
	}

	names := make(map[string]string)
	out := make([]*commentPort.CommentWithUserDTO, 0, len(comments))
	for _, c := range comments {
		name, ok := names[c.UserID]
		if !ok {
			name, err = s.userName(ctx, c.UserID)
			if err != nil {
				return nil, err
			}
			names[c.UserID] = name
		}
		out = append(out, &commentPort.CommentWithUserDTO{
			ID:       c.ID,
			UserID:   c.UserID,
			PostID:   c.PostID,
			Content:  c.Content,
			UserName: name,
		})
	}
	return out, nil
}

// UpdateComment merges the supplied fields into an existing comment.
func (s *CommentService) UpdateComment(ctx context.Context, id string, in commentPort.CommentUpdate) (*commentPort.CommentDTO, error) {
	if err := s.commentMustExist(ctx, id); err != nil {
		return nil, err
	}
	c, err := s.CommentRepository.Update(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("update comment %s: %w", id, err)
	}
	return commentPort.NewCommentDTO(c), nil
}

func (s *CommentService) DeleteComment(ctx context.Context, id string) (*commentPort.CommentDTO, error) {
	if err := s.commentMustExist(ctx, id); err != nil {
		return nil, err
	}
	c, err := s.CommentRepository.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete comment %s: %w", id, err)
	}
	s.logger.Info("comment deleted", zap.String("commentID", id))
	return commentPort.NewCommentDTO(c), nil
}

// userName resolves a display name through the cache, falling back to the
// user repository. Cache errors degrade to a repository lookup. The fill
// never overwrites, since a rename may have cached a newer name meanwhile.
func (s *CommentService) userName(ctx context.Context, userID string) (string, error) {
	if s.NameCache != nil {
		name, hit, err := s.NameCache.GetName(ctx, userID)
		if err != nil {
			s.logger.Warn("user name cache read failed", zap.String("userID", userID), zap.Error(err))
		} else if hit {
			return name, nil
		}
	}

	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("get user %s: %w", userID, err)
	}
	if u == nil {
		return "", nil
	}

	if s.NameCache != nil {
		if err := s.NameCache.SetNameIfAbsent(ctx, userID, u.Name); err != nil {
			s.logger.Warn("user name cache write failed", zap.String("userID", userID), zap.Error(err))
		}
	}
	return u.Name, nil
}

func (s *CommentService) postMustExist(ctx context.Context, postID string) error {
	p, err := s.PostRepository.GetByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("get post %s: %w", postID, err)
	}
	if p == nil {
		return errs.NotFound(entityPost)
	}
	return nil
}

func (s *CommentService) commentMustExist(ctx context.Context, id string) error {
	c, err := s.CommentRepository.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get comment %s: %w", id, err)
	}
	if c == nil {
		return errs.NotFound(entityComment)
	}
	return nil
}
