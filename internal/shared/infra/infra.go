// Package infra 基础设施聚合层
//
// 提供统一的基础设施初始化和依赖注入，包括：
//   - Store：图鉴存储（MongoDB / SQLite / PostgreSQL）
//   - Cache：远端列表缓存（Redis，未启用时为 NoOp）
//   - Archive：seed 快照归档（MinIO，未启用时为 nil）
package infra

import (
	"fmt"

	"pokedex-admin/internal/config"
	"pokedex-admin/internal/shared/cache"
	objstore "pokedex-admin/internal/shared/minio"
	"pokedex-admin/internal/shared/storage"
)

// Infrastructure 基础设施聚合结构
type Infrastructure struct {
	// Store 图鉴持久化存储
	Store storage.PokemonStore

	// Cache 远端列表缓存
	Cache cache.Cache

	// Archive seed 快照归档，未启用 MinIO 时为 nil
	Archive *objstore.Client
}

// New 按配置初始化全部基础设施，任一组件失败时关闭已创建的组件
func New(cfg *config.Config) (*Infrastructure, error) {
	store, err := NewPokemonStore(cfg)
	if err != nil {
		return nil, err
	}
	infra := &Infrastructure{Store: store}

	infra.Cache, err = NewCache(cfg.RedisURL)
	if err != nil {
		infra.Close()
		return nil, err
	}

	infra.Archive, err = NewArchive(cfg.MinIO)
	if err != nil {
		infra.Close()
		return nil, err
	}

	return infra, nil
}

// Close 关闭所有基础设施连接
func (i *Infrastructure) Close() error {
	var lastErr error

	if i.Store != nil {
		if err := i.Store.Close(); err != nil {
			lastErr = err
		}
	}

	if i.Cache != nil {
		if err := i.Cache.Close(); err != nil {
			lastErr = err
		}
	}

	return lastErr
}

// NewNoOpInfrastructure 创建只包含指定存储的基础设施（用于测试）
func NewNoOpInfrastructure(store storage.PokemonStore) *Infrastructure {
	return &Infrastructure{
		Store: store,
		Cache: cache.NewNoOpCache(),
	}
}

func errUnsupportedDriver(driver string) error {
	return fmt.Errorf("unsupported database driver: %q", driver)
}
