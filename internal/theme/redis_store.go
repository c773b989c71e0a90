package theme

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore 把偏好存到 Redis，多台机器共享
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

// Load 读取主题
func (s *RedisStore) Load(ctx context.Context) (Mode, error) {
	v, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	m := Mode(v)
	if !m.Valid() {
		return "", nil
	}
	return m, nil
}

// Save 保存主题，不过期
func (s *RedisStore) Save(ctx context.Context, m Mode) error {
	if !m.Valid() {
		return fmt.Errorf("无效的主题: %q", m)
	}
	return s.client.Set(ctx, s.key, string(m), 0).Err()
}
