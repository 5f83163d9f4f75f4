package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	commentPort "postboard/internal/ports/comment"
)

type CommentController struct{ cc CommentUseCase }

func NewCommentController(cc CommentUseCase) *CommentController {
	return &CommentController{cc: cc}
}

func (ctl *CommentController) CreateCommentForPost(c *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
		UserID  string `json:"user_id" binding:"required"`
	}
	if !bindJSON(c, &req, false) {
		return
	}
	res, err := ctl.cc.CreateCommentForPost(c.Request.Context(), c.Param("id"), commentPort.CommentCreate{
		Content: req.Content,
		UserID:  req.UserID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (ctl *CommentController) ListCommentsForPost(c *gin.Context) {
	comments, err := ctl.cc.ListCommentsForPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (ctl *CommentController) UpdateComment(c *gin.Context) {
	var req struct {
		Content *string `json:"content" binding:"omitnil,min=1"`
	}
	if !bindJSON(c, &req, true) {
		return
	}
	res, err := ctl.cc.UpdateComment(c.Request.Context(), c.Param("id"), commentPort.CommentUpdate{Content: req.Content})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *CommentController) DeleteComment(c *gin.Context) {
	res, err := ctl.cc.DeleteComment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
