package middleware

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
)

const (
	// SessionCookie 会话 cookie，内容为签名 JWT
	SessionCookie = "mb_session"
	// LoginPath 未登录跳转目标；原始地址通过 next 保留
	LoginPath = "/auth/login/"

	ctxUserKey = "current_user"
)

// SignSession 为用户签发会话令牌
func SignSession(userID, secret string, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func parseSession(token, secret string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return claims.Subject, nil
}

// CurrentUser 尝试从会话 cookie 解析当前用户并放入请求上下文；
// 解析失败按未登录处理，不中断请求。
func CurrentUser(users repository.UserRepository, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}
		userID, err := parseSession(token, secret)
		if err != nil {
			c.Next()
			return
		}
		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.Next()
			return
		}
		c.Set(ctxUserKey, user)
		c.Next()
	}
}

// UserFrom 取出 CurrentUser 放入的用户
func UserFrom(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok
}

// RequireAdmin 管理口守卫；非管理员一律 404，不暴露入口
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := UserFrom(c)
		if !ok || !user.IsAdmin {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		c.Next()
	}
}

// RequireLogin 显式登录守卫：未登录重定向到登录页并保留原始目标
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserFrom(c); ok {
			c.Next()
			return
		}
		target := LoginPath + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
		c.Redirect(http.StatusFound, target)
		c.Abort()
	}
}
