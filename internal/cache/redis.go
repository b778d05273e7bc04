package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	redis "github.com/redis/go-redis/v9"
)

type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache accepts either a bare "host:port" address or a
// redis:// URL.
func NewRedisCache(url string) (*RedisCache, error) {
	opts := &redis.Options{
		Addr:     url,
		Password: "",
		DB:       0,
	}
	if strings.Contains(url, "://") {
		parsed, err := redis.ParseURL(url)
		if err != nil {
			return nil, err
		}
		opts = parsed
	}
	redisCache := &RedisCache{Client: redis.NewClient(opts)}

	return redisCache, nil
}

func (r *RedisCache) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}

func (r *RedisCache) Close() error {
	return r.Client.Close()
}

// GetJSON decodes the value at key into dest. A missing key is a miss, not
// an error.
func (r *RedisCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	data, err := r.Client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (r *RedisCache) SetJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, key, data, SidebarTTL).Err()
}

/*
* sidebar snippets
 */

// InvalidateSidebar drops every cached sidebar snippet and reports how many
// keys were removed.
func (r *RedisCache) InvalidateSidebar(ctx context.Context) (int, error) {
	var removed int
	iter := r.Client.Scan(ctx, 0, SidebarKeyPattern, 100).Iterator()
	keys := make([]string, 0, 16)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == cap(keys) {
			n, err := r.Client.Del(ctx, keys...).Result()
			if err != nil {
				return removed, err
			}
			removed += int(n)
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return removed, err
	}
	if len(keys) > 0 {
		n, err := r.Client.Del(ctx, keys...).Result()
		if err != nil {
			return removed, err
		}
		removed += int(n)
	}
	return removed, nil
}
