package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	postPort "postboard/internal/ports/post"
)

type PostController struct{ pc PostUseCase }

func NewPostController(pc PostUseCase) *PostController { return &PostController{pc: pc} }

func (ctl *PostController) CreatePost(c *gin.Context) {
	var req struct {
		Title   string `json:"title" binding:"required,max=100"`
		Content string `json:"content" binding:"required,max=1000"`
		UserID  string `json:"user_id" binding:"required"`
	}
	if !bindJSON(c, &req, false) {
		return
	}
	res, err := ctl.pc.CreatePost(c.Request.Context(), postPort.PostCreate{
		Title:   req.Title,
		Content: req.Content,
		UserID:  req.UserID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (ctl *PostController) ListPosts(c *gin.Context) {
	posts, err := ctl.pc.ListPosts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (ctl *PostController) GetPost(c *gin.Context) {
	p, err := ctl.pc.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdatePost is a full replace: omitted fields are stored empty.
func (ctl *PostController) UpdatePost(c *gin.Context) {
	var req struct {
		Title   string `json:"title" binding:"max=100"`
		Content string `json:"content" binding:"max=1000"`
		UserID  string `json:"user_id"`
	}
	if !bindJSON(c, &req, false) {
		return
	}
	p, err := ctl.pc.UpdatePost(c.Request.Context(), c.Param("id"), postPort.PostUpdate{
		Title:   req.Title,
		Content: req.Content,
		UserID:  req.UserID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (ctl *PostController) DeletePost(c *gin.Context) {
	p, err := ctl.pc.DeletePost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
