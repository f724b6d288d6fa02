package cache

import (
	"context"
	"sync"
	"time"
)

// ============================================================================
// NoOpCache - 空操作的 Cache 实现（未启用 Redis 时使用）
// ============================================================================

// NoOpCache 是一个不做任何操作的 Cache 实现
type NoOpCache struct{}

// NewNoOpCache 创建 NoOpCache 实例
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Close() error { return nil }

func (c *NoOpCache) GetListing(ctx context.Context, key string) ([]byte, error) {
	return nil, nil
}
func (c *NoOpCache) SetListing(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}
func (c *NoOpCache) DeleteListing(ctx context.Context, key string) error {
	return nil
}

// ============================================================================
// MemoryCache - 进程内实现（用于测试）
// ============================================================================

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryCache 进程内缓存，按 TTL 过期
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache 创建 MemoryCache 实例
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemoryCache) Close() error { return nil }

func (c *MemoryCache) GetListing(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, nil
	}
	if !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return nil, nil
	}
	return append([]byte(nil), e.data...), nil
}

func (c *MemoryCache) SetListing(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := memoryEntry{data: append([]byte(nil), data...)}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	c.entries[key] = e
	return nil
}

func (c *MemoryCache) DeleteListing(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

var (
	_ Cache = (*NoOpCache)(nil)
	_ Cache = (*MemoryCache)(nil)
)
