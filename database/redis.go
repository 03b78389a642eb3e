package database

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient connects to the session store. The storefront cannot mint or
// resolve sessions without it, so a failed connection is fatal at startup.
func NewRedisClient(redisURL string, log *zap.Logger) *redis.Client {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Invalid Redis URL", zap.Error(err))
	}

	client := redis.NewClient(opts)

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis", zap.String("addr", opts.Addr), zap.Error(err))
	}

	log.Info("Connected to Redis", zap.String("addr", opts.Addr))
	return client
}
