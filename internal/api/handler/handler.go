package handler

import (
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/cache"
	"github.com/d60-Lab/microblog/internal/config"
	"github.com/d60-Lab/microblog/internal/repository"
	"github.com/d60-Lab/microblog/internal/service"
	"github.com/d60-Lab/microblog/pkg/logger"
)

type Handler struct {
	cfg       *config.Config
	feeds     *service.FeedService
	posts     *service.PostService
	comments  *service.CommentService
	relations service.RelationshipService
	users     repository.UserRepository
	groups    repository.GroupRepository
	pageCache *cache.PageCache
}

func New(
	cfg *config.Config,
	feeds *service.FeedService,
	posts *service.PostService,
	comments *service.CommentService,
	relations service.RelationshipService,
	users repository.UserRepository,
	groups repository.GroupRepository,
	pageCache *cache.PageCache,
) *Handler {
	return &Handler{
		cfg:       cfg,
		feeds:     feeds,
		posts:     posts,
		comments:  comments,
		relations: relations,
		users:     users,
		groups:    groups,
		pageCache: pageCache,
	}
}

// NotFound 统一 404 页面
func (h *Handler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "not_found.tmpl", gin.H{})
}

// fail 把底层错误映射到页面：记录不存在 -> 404，其余 -> 500 并上报
func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		h.NotFound(c)
		return
	}
	sentry.CaptureException(err)
	logger.Error("request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.String(http.StatusInternalServerError, "internal server error")
}
