package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/internal/api/middleware"
	"github.com/d60-Lab/microblog/internal/service"
)

// Follow 建立关注；自关注渲染提示页而不是报错
func (h *Handler) Follow(c *gin.Context) {
	user, _ := middleware.UserFrom(c)
	author, err := h.users.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.fail(c, err)
		return
	}

	err = h.relations.Follow(c.Request.Context(), user.ID, author.ID)
	if errors.Is(err, service.ErrFollowSelf) {
		c.HTML(http.StatusOK, "self_follow_unavailable.tmpl", gin.H{"Author": author})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/posts/profile/"+author.Username+"/")
}

// Unfollow 删边；边不存在也照常跳转
func (h *Handler) Unfollow(c *gin.Context) {
	user, _ := middleware.UserFrom(c)
	author, err := h.users.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.relations.Unfollow(c.Request.Context(), user.ID, author.ID); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/posts/profile/"+author.Username+"/")
}
