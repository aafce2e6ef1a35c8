package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/CloverPit_Go/internal/config"
	"github.com/osse101/CloverPit_Go/internal/ratelimit"
)

// NewRateLimiter builds the configured limiter. It returns a nil limiter when
// rate limiting is disabled. The returned close func is never nil.
func NewRateLimiter(ctx context.Context, cfg *config.Config) (ratelimit.Limiter, func(), error) {
	noop := func() {}

	if !cfg.RateLimitEnabled {
		slog.Warn(LogMsgRateLimitDisabled)
		return nil, noop, nil
	}

	if cfg.RateLimitBackend == config.RateLimitBackendRedis {
		client, err := ratelimit.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, noop, fmt.Errorf("%s: %w", ErrMsgFailedConnectRedis, err)
		}
		limiter, err := ratelimit.NewRedisLimiter(client, cfg.RateLimitMaxRequests, cfg.RateLimitWindow)
		if err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("%s: %w", ErrMsgFailedRateLimiter, err)
		}

		slog.Info(LogMsgRateLimitEnabled, "backend", cfg.RateLimitBackend,
			"max_requests", cfg.RateLimitMaxRequests, "window", cfg.RateLimitWindow)
		return limiter, func() {
			if err := client.Close(); err != nil {
				slog.Error(LogMsgRedisCloseFailed, "error", err)
			}
		}, nil
	}

	limiter, err := ratelimit.NewMemoryLimiter(cfg.RateLimitMaxRequests, cfg.RateLimitWindow, ratelimit.DefaultMaxKeys)
	if err != nil {
		return nil, noop, fmt.Errorf("%s: %w", ErrMsgFailedRateLimiter, err)
	}

	slog.Info(LogMsgRateLimitEnabled, "backend", cfg.RateLimitBackend,
		"max_requests", cfg.RateLimitMaxRequests, "window", cfg.RateLimitWindow)
	return limiter, noop, nil
}
