// Package infra Redis / MinIO 基础设施初始化
package infra

import (
	"context"
	"fmt"
	"time"

	"pokedex-admin/internal/config"
	"pokedex-admin/internal/shared/cache"
	cacheredis "pokedex-admin/internal/shared/cache/redis"
	objstore "pokedex-admin/internal/shared/minio"
)

// NewCache 创建远端列表缓存，redisURL 为空时返回 NoOpCache
func NewCache(redisURL string) (cache.Cache, error) {
	if redisURL == "" {
		return cache.NewNoOpCache(), nil
	}
	store, err := cacheredis.NewStoreFromURL(redisURL)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// NewArchive 创建 seed 快照归档客户端，未启用时返回 (nil, nil)
func NewArchive(cfg config.MinIOConfig) (*objstore.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	client, err := objstore.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to prepare minio bucket: %w", err)
	}
	return client, nil
}
