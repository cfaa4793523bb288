package main

import (
	"context"
	"flag"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/microblog/internal/api/handler"
	"github.com/d60-Lab/microblog/internal/cache"
	"github.com/d60-Lab/microblog/internal/config"
	"github.com/d60-Lab/microblog/internal/db"
	"github.com/d60-Lab/microblog/internal/repository"
	"github.com/d60-Lab/microblog/internal/service"
	"github.com/d60-Lab/microblog/pkg/logger"
	"github.com/d60-Lab/microblog/pkg/telemetry"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Server.Mode); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Init(context.Background(), cfg.Telemetry.Endpoint, "microblog")
		if err != nil {
			logger.Warn("telemetry init failed", zap.Error(err))
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = shutdown(ctx)
			}()
		}
	}

	gormDB, err := db.Open(cfg.Database)
	if err != nil {
		logger.Error("open database", zap.Error(err))
		panic(err)
	}
	if err := db.Migrate(gormDB); err != nil {
		logger.Error("migrate database", zap.Error(err))
		panic(err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	userRepo := repository.NewUserRepository(gormDB)
	groupRepo := repository.NewGroupRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)
	followRepo := repository.NewFollowRepository(gormDB)

	pageCache := cache.NewPageCache(rdb, cfg.Cache.FeedTTL)
	feeds := service.NewFeedService(postRepo, userRepo, groupRepo)
	posts := service.NewPostService(postRepo)
	comments := service.NewCommentService(postRepo, commentRepo)
	relations := service.NewRelationshipService(followRepo)

	h := handler.New(cfg, feeds, posts, comments, relations, userRepo, groupRepo, pageCache)
	r := handler.NewRouter(cfg, h, userRepo)

	logger.Info("server starting", zap.String("addr", cfg.Server.Addr))
	if err := r.Run(cfg.Server.Addr); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
}
