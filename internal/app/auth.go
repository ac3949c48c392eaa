// internal/app/auth.go
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shrimpsizemoose/trekker/logger"
)

// ErrInvalidCredentials is the uniform signal for any portal auth failure:
// unknown email, wrong access code, non-approved status or wrong module all
// look identical to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

var ErrRateLimited = errors.New("too many requests")

type Auth struct {
	enabled        bool
	redis          *redis.Client
	limitPerMinute int
}

func NewAuth(config *Config) (*Auth, error) {
	if !config.Server.EnableAuth {
		return &Auth{enabled: false}, nil
	}

	opt, err := redis.ParseURL(config.Auth.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	limit := config.Auth.RateLimitPerMinute
	if limit <= 0 {
		limit = 30
	}

	return &Auth{
		enabled:        true,
		redis:          client,
		limitPerMinute: limit,
	}, nil
}

func (a *Auth) Close() error {
	if a.redis != nil {
		return a.redis.Close()
	}
	return nil
}

func (a *Auth) Redis() *redis.Client {
	return a.redis
}

// AllowRequest applies a fixed one-minute rate-limit window per client key.
// The counter lives in redis with a TTL, so limits survive restarts and are
// shared across instances.
func (a *Auth) AllowRequest(ctx context.Context, key string) error {
	if !a.enabled {
		return nil
	}

	counterKey := fmt.Sprintf("ratelimit:%s", key)
	count, err := a.redis.Incr(ctx, counterKey).Result()
	if err != nil {
		logger.Debug.Printf("Redis error on rate limit for %s: %v", key, err)
		return fmt.Errorf("redis error: %w", err)
	}
	if count == 1 {
		a.redis.Expire(ctx, counterKey, time.Minute)
	}

	if count > int64(a.limitPerMinute) {
		logger.Debug.Printf("Rate limit hit for %s: %d/min", key, count)
		return ErrRateLimited
	}
	return nil
}
