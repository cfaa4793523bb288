package cache

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/microblog/internal/pagination"
	"github.com/d60-Lab/microblog/pkg/logger"
)

const keyPrefix = "page:"

// PageCache 渲染结果的定时缓存：key = (列表类型, 页码)，到期前不感知新写入。
// 写操作不主动失效，Clear 供测试 / 管理端整体清空。
type PageCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewPageCache(rdb *redis.Client, ttl time.Duration) *PageCache {
	return &PageCache{rdb: rdb, ttl: ttl}
}

func key(kind string, page int) string {
	return fmt.Sprintf("%s%s:%d", keyPrefix, kind, page)
}

func (p *PageCache) Get(ctx context.Context, kind string, page int) ([]byte, bool) {
	data, err := p.rdb.Get(ctx, key(kind, page)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (p *PageCache) Set(ctx context.Context, kind string, page int, body []byte) {
	if err := p.rdb.Set(ctx, key(kind, page), body, p.ttl).Err(); err != nil {
		logger.Warn("page cache set failed", zap.String("kind", kind), zap.Error(err))
	}
}

// Clear 清空全部页面缓存
func (p *PageCache) Clear(ctx context.Context) error {
	keys, err := p.rdb.Keys(ctx, keyPrefix+"*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return p.rdb.Del(ctx, keys...).Err()
}

// Middleware 命中时直接回放缓存字节，未命中时截获响应体写入缓存。
// 只缓存 GET 200。
func (p *PageCache) Middleware(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		page := pagination.ParsePage(c.Query("page"))
		ctx := c.Request.Context()

		if body, ok := p.Get(ctx, kind, page); ok {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "text/html; charset=utf-8", body)
			c.Abort()
			return
		}

		writer := &captureWriter{ResponseWriter: c.Writer, status: http.StatusOK, body: &bytes.Buffer{}}
		c.Writer = writer
		c.Header("X-Cache", "MISS")

		c.Next()

		if writer.status == http.StatusOK && writer.body.Len() > 0 {
			p.Set(ctx, kind, page, writer.body.Bytes())
		}
	}
}

type captureWriter struct {
	gin.ResponseWriter
	status int
	body   *bytes.Buffer
}

func (w *captureWriter) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

func (w *captureWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
