package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hedgeshield/hedgeshield/internal/config"
	"github.com/redis/go-redis/v9"
)

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// The prune, the capacity check and the append run server-side as one script
// so concurrent admissions for the same key cannot race past the cap. A
// rejected attempt is never recorded.
var slidingWindowScript = redis.NewScript(`
local cutoff = tonumber(ARGV[1]) - tonumber(ARGV[2])
redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', cutoff)
if redis.call('ZCARD', KEYS[1]) >= tonumber(ARGV[3]) then
	return 0
end
redis.call('ZADD', KEYS[1], ARGV[1], ARGV[4])
redis.call('PEXPIRE', KEYS[1], ARGV[2])
return 1
`)

// RedisRateLimiter is the shared sliding-window backend, used when more than
// one instance must agree on a client's admission count.
type RedisRateLimiter struct {
	client *redis.Client
	window time.Duration
	cap    int
	prefix string
}

func NewRedisRateLimiter(client *redis.Client, window time.Duration, cap int) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		window: window,
		cap:    cap,
		prefix: "rl",
	}
}

func (r *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	nowMs := time.Now().UnixMilli()
	windowMs := r.window.Milliseconds()

	n, err := slidingWindowScript.Run(ctx, r.client,
		[]string{r.prefix + ":" + key},
		strconv.FormatInt(nowMs, 10),
		strconv.FormatInt(windowMs, 10),
		strconv.Itoa(r.cap),
		uuid.NewString(),
	).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
