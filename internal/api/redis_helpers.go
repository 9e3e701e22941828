package api

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisRateCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// rateLimit 是按用户计数的固定窗口限流规则，计数 key 为 prefix+userID。
type rateLimit struct {
	prefix string
	limit  int64
	window time.Duration
}

var (
	exportLimit = rateLimit{prefix: "rate:export:", limit: 20, window: time.Hour}
	uploadLimit = rateLimit{prefix: "rate:upload:", limit: 50, window: 24 * time.Hour}
)

func (r rateLimit) key(userID string) string {
	return r.prefix + userID
}

// exceeded 计数一次并判断是否超过 limit。client 为 nil 或 Redis 不可用时放行，
// 错误仍返回给调用方记录。
func (r rateLimit) exceeded(ctx context.Context, client redisRateCounter, userID string) (bool, error) {
	if client == nil || r.limit <= 0 {
		return false, nil
	}
	key := r.key(userID)
	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("incr %s: %w", key, err)
	}
	// 窗口从第一次计数开始；过期设置失败时 key 会永久存在，需要告知调用方。
	if count == 1 {
		if err := client.Expire(ctx, key, r.window).Err(); err != nil {
			return false, fmt.Errorf("expire %s: %w", key, err)
		}
	}
	return count > r.limit, nil
}
