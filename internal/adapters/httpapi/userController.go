package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type UserController struct{ uc UserUseCase }

func NewUserController(uc UserUseCase) *UserController { return &UserController{uc: uc} }

func (ctl *UserController) CreateUser(c *gin.Context) {
	var req struct {
		Name *string `json:"name" binding:"omitnil,max=20"`
	}
	if !bindJSON(c, &req, true) {
		return
	}
	u, err := ctl.uc.CreateUser(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (ctl *UserController) ListUsers(c *gin.Context) {
	users, err := ctl.uc.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (ctl *UserController) GetUser(c *gin.Context) {
	u, err := ctl.uc.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (ctl *UserController) UpdateUser(c *gin.Context) {
	var req struct {
		Name *string `json:"name" binding:"omitnil,max=20"`
	}
	if !bindJSON(c, &req, true) {
		return
	}
	u, err := ctl.uc.UpdateUser(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (ctl *UserController) DeleteUser(c *gin.Context) {
	u, err := ctl.uc.DeleteUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (ctl *UserController) ListUserPosts(c *gin.Context) {
	posts, err := ctl.uc.ListUserPosts(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}
