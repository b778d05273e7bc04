package main

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/qs-lzh/movie-catalog/config"
	"github.com/qs-lzh/movie-catalog/internal/app"
	"github.com/qs-lzh/movie-catalog/internal/cache"
	"github.com/qs-lzh/movie-catalog/internal/database"
	"github.com/qs-lzh/movie-catalog/internal/mq"
	"github.com/qs-lzh/movie-catalog/internal/server"
	"github.com/qs-lzh/movie-catalog/internal/util"

	amqp "github.com/rabbitmq/amqp091-go"
)

// runner carries what every command needs besides the app itself.
type runner struct {
	output io.Writer
	serve  func(ctx context.Context, a *app.App, addr string) error
}

func newRunner(output io.Writer) *runner {
	return &runner{
		output: output,
		serve:  server.Run,
	}
}

// bootstrap loads the config, opens and migrates the database and connects
// the optional cache and message queue. An unreachable cache or queue only
// produces a warning.
func (r *runner) bootstrap(ctx context.Context) (*app.App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := util.NewLogger(cfg.IsProduction())
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := database.Open(cfg.DatabaseType, cfg.DatabaseDSN, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		database.Close(db)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	var redisCache *cache.RedisCache
	if cfg.CacheURL != "" {
		redisCache, err = connectCache(ctx, cfg.CacheURL)
		if err != nil {
			logger.Warn("sidebar cache disabled", zap.Error(err))
			redisCache = nil
		}
	}

	var mqConn *amqp.Connection
	if cfg.MQURL != "" {
		mqConn, err = mq.NewMQConn(cfg.MQURL)
		if err != nil {
			logger.Warn("catalog events disabled", zap.Error(err))
			mqConn = nil
		}
	}

	return app.New(cfg, db, redisCache, mqConn, logger), nil
}

func connectCache(ctx context.Context, url string) (*cache.RedisCache, error) {
	redisCache, err := cache.NewRedisCache(url)
	if err != nil {
		return nil, err
	}
	if err := redisCache.Ping(ctx); err != nil {
		redisCache.Close()
		return nil, err
	}
	return redisCache, nil
}
