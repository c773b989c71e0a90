// Package theme persists the light/dark preference. It is the only
// client state that survives a restart.
package theme

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/chudadi/internal/config"
	"github.com/palemoky/chudadi/internal/logger"
)

// Mode 主题
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// Valid 是否为已知主题
func (m Mode) Valid() bool { return m == Light || m == Dark }

// Toggle 切换明暗
func (m Mode) Toggle() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// Store 主题偏好存储。没有保存过时 Load 返回空字符串
type Store interface {
	Load(ctx context.Context) (Mode, error)
	Save(ctx context.Context, m Mode) error
}

// NewStore 根据配置创建存储，返回的 closer 用于释放连接
func NewStore(cfg config.ThemeConfig) (Store, func() error, error) {
	switch cfg.Store {
	case config.ThemeStoreFile, "":
		return NewFileStore(cfg.File, cfg.Key), func() error { return nil }, nil
	case config.ThemeStoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return NewRedisStore(client, cfg.Key), client.Close, nil
	default:
		return nil, nil, fmt.Errorf("未知的主题存储: %s", cfg.Store)
	}
}

// Resolve 读取已保存的主题，没有或读取失败时按终端背景决定
func Resolve(ctx context.Context, s Store, darkBackground func() bool) Mode {
	m, err := s.Load(ctx)
	if err != nil {
		logger.LogError("读取主题失败: %v", err)
	}
	if m.Valid() {
		return m
	}
	if darkBackground != nil && darkBackground() {
		return Dark
	}
	return Light
}
