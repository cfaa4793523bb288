package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/internal/api/middleware"
	"github.com/d60-Lab/microblog/internal/pagination"
)

// Index 全站信息流（经过页面缓存中间件）
func (h *Handler) Index(c *gin.Context) {
	page := pagination.ParsePage(c.Query("page"))
	feed, err := h.feeds.Global(c.Request.Context(), page)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "index.tmpl", gin.H{
		"Feed": feed,
	})
}

// GroupPosts 分组信息流；未知 slug 返回 404
func (h *Handler) GroupPosts(c *gin.Context) {
	page := pagination.ParsePage(c.Query("page"))
	group, feed, err := h.feeds.ByGroup(c.Request.Context(), c.Param("slug"), page)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "group_list.tmpl", gin.H{
		"Group": group,
		"Feed":  feed,
	})
}

// Profile 作者信息流；登录用户附带 is-following 标记
func (h *Handler) Profile(c *gin.Context) {
	page := pagination.ParsePage(c.Query("page"))
	author, feed, err := h.feeds.ByAuthor(c.Request.Context(), c.Param("username"), page)
	if err != nil {
		h.fail(c, err)
		return
	}

	following := false
	if user, ok := middleware.UserFrom(c); ok {
		following, err = h.relations.IsFollowing(c.Request.Context(), user.ID, author.ID)
		if err != nil {
			h.fail(c, err)
			return
		}
	}

	c.HTML(http.StatusOK, "profile.tmpl", gin.H{
		"Author":    author,
		"Feed":      feed,
		"Following": following,
	})
}

// FollowIndex 关注作者的聚合信息流（需登录，守卫在路由层）
func (h *Handler) FollowIndex(c *gin.Context) {
	user, _ := middleware.UserFrom(c)
	page := pagination.ParsePage(c.Query("page"))
	feed, err := h.feeds.Followed(c.Request.Context(), user.ID, page)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "follow.tmpl", gin.H{
		"Feed": feed,
	})
}
