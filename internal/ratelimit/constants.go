package ratelimit

import "time"

// Memory backend sizing
const (
	DefaultMaxKeys = 10000
)

// Redis backend
const (
	RedisKeyPrefix   = "cloverpit:ratelimit:"
	RedisPingTimeout = 5 * time.Second
)

// Error messages
const (
	ErrMsgInvalidLimit   = "rate limit must be positive"
	ErrMsgInvalidWindow  = "rate limit window must be positive"
	ErrMsgRedisPing      = "failed to connect to redis at %s: %w"
	ErrMsgRedisIncrement = "failed to increment rate limit counter: %w"
	ErrMsgRedisReply     = "unexpected rate limit reply %v"
)

// Log messages
const (
	LogMsgRedisConnected = "Connected to Redis rate limiter"
)
