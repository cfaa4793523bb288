package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/internal/api/middleware"
)

// AddComment 评论提交；无论校验是否通过都回到详情页（空文本不落库）
func (h *Handler) AddComment(c *gin.Context) {
	user, _ := middleware.UserFrom(c)
	postID := c.Param("id")

	if _, err := h.comments.Add(c.Request.Context(), postID, user.ID, c.PostForm("text")); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/posts/"+postID+"/")
}
