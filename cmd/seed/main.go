// Command seed fills a database with users, posts and comments through the
// same use-case services the HTTP API uses.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"go.uber.org/zap"

	dbadapter "postboard/internal/adapters/database"
	"postboard/internal/config"
	commentapp "postboard/internal/core/comment/service"
	postapp "postboard/internal/core/post/service"
	userapp "postboard/internal/core/user/service"
	commentPort "postboard/internal/ports/comment"
	postPort "postboard/internal/ports/post"
)

func main() {
	numUsers := flag.Int("users", 10, "number of users to create")
	postsPerUser := flag.Int("posts", 3, "posts per user")
	commentsPerPost := flag.Int("comments", 2, "comments per post")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := config.InitLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := config.InitDB(cfg, logger)
	if err != nil {
		logger.Fatal("Database connection failed", zap.Error(err))
	}
	if err := dbadapter.Migrate(db); err != nil {
		logger.Fatal("Error during migrations", zap.Error(err))
	}

	userRepo := dbadapter.NewUserRepositoryDatabase(db)
	postRepo := dbadapter.NewPostRepositoryDatabase(db)
	commentRepo := dbadapter.NewCommentRepositoryDatabase(db)

	s := seeder{
		users:    userapp.NewUserService(userRepo, nil, logger),
		posts:    postapp.NewPostService(postRepo, userRepo, logger),
		comments: commentapp.NewCommentService(commentRepo, postRepo, userRepo, nil, logger),
		logger:   logger,
	}

	res := s.run(context.Background(), *numUsers, *postsPerUser, *commentsPerPost)
	logger.Info("Seeding completed",
		zap.Int("users", res.users),
		zap.Int("posts", res.posts),
		zap.Int("comments", res.comments),
		zap.Int("failures", res.failures),
	)
}

type seeder struct {
	users    *userapp.UserService
	posts    *postapp.PostService
	comments *commentapp.CommentService
	logger   *zap.Logger
}

type seedResult struct {
	users, posts, comments, failures int
}

// run creates numUsers users, postsPerUser posts each and commentsPerPost
// comments under every post, authored round-robin by the seeded users.
// Individual failures are logged and counted, not fatal.
func (s *seeder) run(ctx context.Context, numUsers, postsPerUser, commentsPerPost int) seedResult {
	var res seedResult

	userIDs := make([]string, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		name := fmt.Sprintf("user%d", i)
		u, err := s.users.CreateUser(ctx, &name)
		if err != nil {
			s.logger.Error("Error creating user", zap.String("name", name), zap.Error(err))
			res.failures++
			continue
		}
		userIDs = append(userIDs, u.ID)
	}
	res.users = len(userIDs)
	if len(userIDs) == 0 {
		return res
	}

	author := 0
	for _, uid := range userIDs {
		for p := 1; p <= postsPerUser; p++ {
			post, err := s.posts.CreatePost(ctx, postPort.PostCreate{
				Title:   fmt.Sprintf("Post %d", p),
				Content: fmt.Sprintf("Post %d by user %s", p, uid),
				UserID:  uid,
			})
			if err != nil {
				s.logger.Error("Error creating post", zap.String("userID", uid), zap.Error(err))
				res.failures++
				continue
			}
			res.posts++

			for c := 1; c <= commentsPerPost; c++ {
				commenter := userIDs[author%len(userIDs)]
				author++
				if _, err := s.comments.CreateCommentForPost(ctx, post.ID, commentPort.CommentCreate{
					Content: fmt.Sprintf("Comment %d on %s", c, post.ID),
					UserID:  commenter,
				}); err != nil {
					s.logger.Error("Error creating comment", zap.String("postID", post.ID), zap.Error(err))
					res.failures++
					continue
				}
				res.comments++
			}

			stored, err := s.posts.ListPostComments(ctx, post.ID)
			if err == nil && len(stored) != commentsPerPost {
				s.logger.Warn("Comment count mismatch", zap.String("postID", post.ID), zap.Int("stored", len(stored)))
			}
		}
	}
	return res
}
