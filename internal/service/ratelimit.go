package service

import (
	"context"
	"errors"
	"fmt"

	"makemeet/internal/config"

	"github.com/redis/go-redis/v9"
)

var ErrTooManyAttempts = errors.New("too many attempts")

// RateLimiter throttles credential guessing per meeting identity. A nil redis
// client disables it, so deployments without redis keep working.
type RateLimiter struct {
	redis *redis.Client
	cfg   config.RateLimitConfig
}

func NewRateLimiter(redisClient *redis.Client, cfg config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		redis: redisClient,
		cfg:   cfg,
	}
}

func (r *RateLimiter) CheckLogin(ctx context.Context, meetingID, memberID string) error {
	if r.redis == nil {
		return nil
	}
	key := fmt.Sprintf("login_attempts:%s:%s", meetingID, memberID)

	count, err := r.redis.Incr(ctx, key).Result()
	if err != nil {
		return err
	}

	if count == 1 {
		r.redis.Expire(ctx, key, r.cfg.LoginWindow)
	}

	if count > r.cfg.LoginMax {
		return ErrTooManyAttempts
	}

	return nil
}

func (r *RateLimiter) CheckRegister(ctx context.Context, meetingID, username string) error {
	if r.redis == nil {
		return nil
	}
	key := fmt.Sprintf("register_attempts:%s:%s", meetingID, username)

	count, err := r.redis.Incr(ctx, key).Result()
	if err != nil {
		return err
	}

	if count == 1 {
		r.redis.Expire(ctx, key, r.cfg.RegisterWindow)
	}

	if count > r.cfg.RegisterMax {
		return ErrTooManyAttempts
	}

	return nil
}

// ResetLogin clears the attempt counter after a successful login.
func (r *RateLimiter) ResetLogin(ctx context.Context, meetingID, memberID string) error {
	if r.redis == nil {
		return nil
	}
	key := fmt.Sprintf("login_attempts:%s:%s", meetingID, memberID)
	return r.redis.Del(ctx, key).Err()
}
