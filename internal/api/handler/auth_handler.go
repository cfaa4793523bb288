package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/api/middleware"
	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/service"
)

// LoginForm 登录页，透传 next
func (h *Handler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.tmpl", gin.H{
		"Next": c.Query("next"),
	})
}

// Login 登录提交；成功后跳回 next（仅限站内路径）
func (h *Handler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	next := c.PostForm("next")

	user, err := h.users.GetByUsername(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.loginFailed(c, next)
			return
		}
		h.fail(c, err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		h.loginFailed(c, next)
		return
	}

	if err := h.setSession(c, user); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, safeNext(next))
}

func (h *Handler) loginFailed(c *gin.Context, next string) {
	c.HTML(http.StatusOK, "login.tmpl", gin.H{
		"Next":  next,
		"Error": "invalid username or password",
	})
}

// SignupForm 注册页
func (h *Handler) SignupForm(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.tmpl", gin.H{})
}

// Signup 注册提交；用户名唯一性先查后插，数据库唯一索引兜底
func (h *Handler) Signup(c *gin.Context) {
	in := service.SignupInput{
		Username:    c.PostForm("username"),
		DisplayName: c.PostForm("display_name"),
		Password:    c.PostForm("password"),
	}

	fields := service.ValidateSignupInput(in)
	if fields == nil {
		if _, err := h.users.GetByUsername(c.Request.Context(), in.Username); err == nil {
			fields = map[string]string{"Username": "this username is already taken"}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			h.fail(c, err)
			return
		}
	}
	if fields != nil {
		c.HTML(http.StatusOK, "signup.tmpl", gin.H{
			"Errors":      fields,
			"Username":    in.Username,
			"DisplayName": in.DisplayName,
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		h.fail(c, err)
		return
	}
	user := &model.User{
		Username:     in.Username,
		DisplayName:  in.DisplayName,
		PasswordHash: string(hash),
	}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		h.fail(c, err)
		return
	}

	if err := h.setSession(c, user); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/posts/")
}

// Logout 清除会话
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/posts/")
}

func (h *Handler) setSession(c *gin.Context, user *model.User) error {
	token, err := middleware.SignSession(user.ID, h.cfg.Auth.Secret, h.cfg.Auth.SessionTTL)
	if err != nil {
		return err
	}
	c.SetCookie(middleware.SessionCookie, token, int(h.cfg.Auth.SessionTTL.Seconds()), "/", "", false, true)
	return nil
}

// safeNext 只跳转站内路径，避免开放重定向
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/posts/"
}
