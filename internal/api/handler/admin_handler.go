package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ClearPageCache 管理 / 测试用：整体清空页面缓存
func (h *Handler) ClearPageCache(c *gin.Context) {
	if err := h.pageCache.Clear(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	c.String(http.StatusOK, "page cache cleared")
}
