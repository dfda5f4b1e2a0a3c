package service_test

import (
	"context"
	"testing"

	"makemeet/internal/config"
	"makemeet/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_DisabledWithoutRedis(t *testing.T) {
	limiter := service.NewRateLimiter(nil, config.RateLimitConfig{LoginMax: 1, RegisterMax: 1})
	ctx := context.Background()

	// Without a redis client every check passes, however often it runs.
	for i := 0; i < 10; i++ {
		assert.NoError(t, limiter.CheckLogin(ctx, "m1", "member-a"))
		assert.NoError(t, limiter.CheckRegister(ctx, "m1", "alice"))
	}
	assert.NoError(t, limiter.ResetLogin(ctx, "m1", "member-a"))
}
