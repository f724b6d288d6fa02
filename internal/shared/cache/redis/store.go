// Package redis Redis 缓存实现
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pokedex-admin/internal/shared/cache"
	"pokedex-admin/pkg/logging"
)

// Store Redis 缓存存储
type Store struct {
	client *redis.Client
}

// NewStoreFromURL 从 URL 创建 Redis 缓存实例
func NewStoreFromURL(redisURL string) (*Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logging.Default("cache").Info("Redis connected", "addr", opts.Addr)
	return &Store{client: client}, nil
}

// NewStoreFromClient 从现有 Redis 客户端创建缓存实例
func NewStoreFromClient(client *redis.Client) *Store {
	return &Store{client: client}
}

// Close 关闭 Redis 连接
func (s *Store) Close() error {
	return s.client.Close()
}

// Client 返回底层 Redis 客户端
func (s *Store) Client() *redis.Client {
	return s.client
}

// GetListing 读取缓存的列表响应
func (s *Store) GetListing(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// SetListing 写入列表响应，ttl <= 0 时不过期
func (s *Store) SetListing(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

// DeleteListing 删除缓存的列表响应
func (s *Store) DeleteListing(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

var _ cache.Cache = (*Store)(nil)
