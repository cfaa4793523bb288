package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/time/rate"

	"github.com/d60-Lab/microblog/internal/api/middleware"
	"github.com/d60-Lab/microblog/internal/config"
	"github.com/d60-Lab/microblog/internal/repository"
)

// NewRouter 装配全部路由与中间件
func NewRouter(cfg *config.Config, h *Handler, users repository.UserRepository) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	if cfg.Telemetry.Enabled {
		r.Use(otelgin.Middleware("microblog"))
	}
	r.Use(middleware.CurrentUser(users, cfg.Auth.Secret))

	r.LoadHTMLGlob(cfg.Templates.Glob)
	r.Static("/media", cfg.Media.Root)

	requireLogin := middleware.RequireLogin()

	posts := r.Group("/posts")
	{
		posts.GET("/", h.pageCache.Middleware("index"), h.Index)
		posts.GET("/group/:slug/", h.GroupPosts)
		posts.GET("/profile/:username/", h.Profile)
		posts.GET("/profile/:username/follow/", requireLogin, h.Follow)
		posts.GET("/profile/:username/unfollow/", requireLogin, h.Unfollow)
		posts.GET("/follow/", requireLogin, h.FollowIndex)
		posts.GET("/create/", requireLogin, h.CreatePostForm)
		posts.POST("/create/", requireLogin, h.CreatePost)
		posts.GET("/:id/", h.PostDetail)
		posts.GET("/:id/edit/", requireLogin, h.EditPostForm)
		posts.POST("/:id/edit/", requireLogin, h.EditPost)
		posts.POST("/:id/comment/", requireLogin, h.AddComment)
	}

	loginLimiter := middleware.NewRateLimiter(rate.Every(time.Second), 5)
	auth := r.Group("/auth")
	{
		auth.GET("/login/", h.LoginForm)
		auth.POST("/login/", loginLimiter.Middleware(), h.Login)
		auth.GET("/signup/", h.SignupForm)
		auth.POST("/signup/", h.Signup)
		auth.GET("/logout/", h.Logout)
	}

	r.POST("/admin/cache/clear/", middleware.RequireAdmin(), h.ClearPageCache)

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/posts/")
	})
	r.NoRoute(h.NotFound)

	return r
}
