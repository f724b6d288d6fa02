// Package cache 缓存层抽象接口
//
// 缓存远端图鉴列表响应，当前由 Redis 实现；未启用 Redis 时使用 NoOpCache。
package cache

import (
	"context"
	"time"
)

// ListingCache 远端列表响应缓存接口
//
// Get 未命中时返回 (nil, nil)。
type ListingCache interface {
	GetListing(ctx context.Context, key string) ([]byte, error)
	SetListing(ctx context.Context, key string, data []byte, ttl time.Duration) error
	DeleteListing(ctx context.Context, key string) error
}

// Cache 缓存组合接口
type Cache interface {
	ListingCache
	Close() error
}
