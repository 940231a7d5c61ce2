package redis

import (
	"context"
	"fmt"
	"time"

	"likering/internal/config"
	"likering/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var client *redis.Client

// NewClient builds a client without contacting the server.
func NewClient(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

// Init connects and pings. The client carries message events between API
// instances; on failure no global client is kept.
func Init(cfg *config.RedisConfig) error {
	rdb := NewClient(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr(), err)
	}

	client = rdb
	logger.Info("Redis connected", zap.String("addr", cfg.Addr()), zap.String("channel", cfg.Channel))
	return nil
}

// Close releases the global client, if any.
func Close() error {
	if client == nil {
		return nil
	}
	err := client.Close()
	client = nil
	return err
}

// Get returns the connected client, or nil before a successful Init.
func Get() *redis.Client {
	return client
}
