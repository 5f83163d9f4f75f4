package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"postboard/internal/adapters/httpapi/middleware"
	commentPort "postboard/internal/ports/comment"
	postPort "postboard/internal/ports/post"
	userPort "postboard/internal/ports/user"
)

// UserUseCase is the inbound port the user routes depend on.
type UserUseCase interface {
	CreateUser(ctx context.Context, name *string) (*userPort.UserDTO, error)
	ListUsers(ctx context.Context) ([]*userPort.UserDTO, error)
	GetUser(ctx context.Context, id string) (*userPort.UserDTO, error)
	UpdateUser(ctx context.Context, id string, name *string) (*userPort.UserDTO, error)
	DeleteUser(ctx context.Context, id string) (*userPort.UserDTO, error)
	ListUserPosts(ctx context.Context, id string) ([]*postPort.PostDTO, error)
}

type PostUseCase interface {
	CreatePost(ctx context.Context, in postPort.PostCreate) (*postPort.PostDTO, error)
	ListPosts(ctx context.Context) ([]*postPort.PostDTO, error)
	GetPost(ctx context.Context, id string) (*postPort.PostDTO, error)
	UpdatePost(ctx context.Context, id string, in postPort.PostUpdate) (*postPort.PostDTO, error)
	DeletePost(ctx context.Context, id string) (*postPort.PostDTO, error)
}

type CommentUseCase interface {
	CreateCommentForPost(ctx context.Context, postID string, in commentPort.CommentCreate) (*commentPort.CommentDTO, error)
	ListCommentsForPost(ctx context.Context, postID string) ([]*commentPort.CommentWithUserDTO, error)
	UpdateComment(ctx context.Context, id string, in commentPort.CommentUpdate) (*commentPort.CommentDTO, error)
	DeleteComment(ctx context.Context, id string) (*commentPort.CommentDTO, error)
}

// SetupRoutes wires the use cases into a gin engine. Resource routes live
// under prefix; the health check is always at "/".
func SetupRoutes(
	prefix string,
	logger *zap.Logger,
	userUC UserUseCase,
	postUC PostUseCase,
	commentUC CommentUseCase,
) *gin.Engine {
	useJSONFieldNames()

	r := gin.New()
	r.Use(middleware.Logger(logger), middleware.Recovery(logger))

	uc := NewUserController(userUC)
	pc := NewPostController(postUC)
	cc := NewCommentController(commentUC)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group(prefix)

	users := api.Group("/users")
	users.POST("", uc.CreateUser)
	users.GET("", uc.ListUsers)
	users.GET("/:id", uc.GetUser)
	users.PATCH("/:id", uc.UpdateUser)
	users.DELETE("/:id", uc.DeleteUser)
	users.GET("/:id/posts", uc.ListUserPosts)

	posts := api.Group("/posts")
	posts.POST("", pc.CreatePost)
	posts.GET("", pc.ListPosts)
	posts.GET("/:id", pc.GetPost)
	posts.PATCH("/:id", pc.UpdatePost)
	posts.DELETE("/:id", pc.DeletePost)
	posts.POST("/:id/comments", cc.CreateCommentForPost)
	posts.GET("/:id/comments", cc.ListCommentsForPost)

	comments := api.Group("/comments")
	comments.PATCH("/:id", cc.UpdateComment)
	comments.DELETE("/:id", cc.DeleteComment)

	return r
}
