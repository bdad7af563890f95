package database

import (
	"context"

	"github.com/go-redis/redis/v8"

	"shoppingapp-backend/config"
)

var (
	RedisClient *redis.Client
	Ctx         = context.Background()
)

// ConnectRedis connects the shared redis client. Redis is optional: it backs
// the additive-analysis cache and the token denylist, both of which degrade
// gracefully when the client stays nil.
func ConnectRedis(cfg *config.Config) error {
	if cfg.RedisAddr == "" {
		return nil
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	_, err := RedisClient.Ping(Ctx).Result()
	return err
}
