package app

import (
	"context"
	"crypto/rand"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/memalihaider/techverse-portal/internal/models"
)

const (
	timeFormat  = "2006-01-02 15:04:05"
	loginKeyTpl = "portal:login:%s" // portal:login:${email}

	// No 0/O and no 1/I/L in the alphabet.
	accessCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	accessCodeLength   = 8
)

// NewAccessCode issues the 8-character capability token handed out at
// registration time. Convenience credential, not a cryptographic secret.
func NewAccessCode() (string, error) {
	buf := make([]byte, accessCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	for i, b := range buf {
		buf[i] = accessCodeAlphabet[int(b)%len(accessCodeAlphabet)]
	}
	return string(buf), nil
}

// LoginTracker keeps per-participant portal login bookkeeping in redis.
type LoginTracker struct {
	redis *redis.Client
}

func NewLoginTracker(redis *redis.Client) *LoginTracker {
	return &LoginTracker{redis: redis}
}

// RecordLogin bumps the login counter for email and returns the updated info.
func (lt *LoginTracker) RecordLogin(ctx context.Context, email string) (*models.LoginInfo, error) {
	if lt.redis == nil {
		return &models.LoginInfo{Email: email, LoginCount: 1}, nil
	}

	key := fmt.Sprintf(loginKeyTpl, email)
	now := time.Now().UTC()

	pipe := lt.redis.Pipeline()
	pipe.HIncrBy(ctx, key, "login_count", 1)
	pipe.HSet(ctx, key, "last_login_dttm_utc", now.Format(timeFormat))
	pipe.HSetNX(ctx, key, "first_login_dttm_utc", now.Format(timeFormat))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	values, err := lt.redis.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get login info: %w", err)
	}

	loginCount, _ := strconv.Atoi(values["login_count"])
	lastLogin, _ := time.Parse(timeFormat, values["last_login_dttm_utc"])
	firstLogin, _ := time.Parse(timeFormat, values["first_login_dttm_utc"])

	return &models.LoginInfo{
		Email:          email,
		LoginCount:     loginCount,
		LastLoginTime:  lastLogin,
		FirstLoginTime: firstLogin,
	}, nil
}
