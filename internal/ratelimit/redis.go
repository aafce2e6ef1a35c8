package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/osse101/CloverPit_Go/internal/logger"
)

// incrScript starts the window on the first hit so INCR and PEXPIRE are atomic
var incrScript = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return {n, redis.call('PTTL', KEYS[1])}
`)

// RedisLimiter shares counters between instances through redis
type RedisLimiter struct {
	client *redis.Client
	limit  int
	period time.Duration
}

// NewRedisClient connects to redis and verifies the connection
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, RedisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf(ErrMsgRedisPing, addr, err)
	}

	logger.FromContext(ctx).Info(LogMsgRedisConnected, "addr", addr, "db", db)
	return client, nil
}

// NewRedisLimiter creates a limiter over an existing client
func NewRedisLimiter(client *redis.Client, limit int, period time.Duration) (*RedisLimiter, error) {
	if err := validate(limit, period); err != nil {
		return nil, err
	}
	return &RedisLimiter{client: client, limit: limit, period: period}, nil
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	reply, err := incrScript.Run(ctx, l.client, []string{RedisKeyPrefix + key}, l.period.Milliseconds()).Result()
	if err != nil {
		return Decision{}, fmt.Errorf(ErrMsgRedisIncrement, err)
	}

	values, ok := reply.([]interface{})
	if !ok || len(values) != 2 {
		return Decision{}, fmt.Errorf(ErrMsgRedisReply, reply)
	}
	count, ok1 := values[0].(int64)
	ttl, ok2 := values[1].(int64)
	if !ok1 || !ok2 {
		return Decision{}, fmt.Errorf(ErrMsgRedisReply, reply)
	}

	resetIn := time.Duration(ttl) * time.Millisecond
	if ttl < 0 {
		resetIn = l.period
	}
	return decide(int(count), l.limit, resetIn), nil
}
