// Package seed 图鉴数据初始化
//
// 清空图鉴集合后，从远端图鉴 API 拉取列表并整体批量写入。
// 删除与写入之间没有事务：写入前的任一失败都会让集合保持为空。
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"pokedex-admin/internal/pokeapi"
	"pokedex-admin/internal/shared/model"
	"pokedex-admin/internal/shared/storage"
	"pokedex-admin/pkg/logging"
)

// ResultMessage seed 成功时返回的消息
const ResultMessage = "Seed executed"

// Fetcher 远端列表来源
type Fetcher interface {
	ListPokemon(ctx context.Context, limit int) (*pokeapi.ListResponse, error)
}

// Archiver 原始列表归档
type Archiver interface {
	ArchiveSnapshot(ctx context.Context, data []byte) (string, error)
}

// Observer 接收每次 seed 的结果
type Observer interface {
	ObserveSeed(err error, imported int, duration time.Duration)
}

// Service seed 服务
type Service struct {
	store    storage.PokemonStore
	fetcher  Fetcher
	limit    int
	archiver Archiver
	observer Observer
	log      *logging.Logger
}

// Option 服务可选项
type Option func(*Service)

// WithArchiver 启用快照归档
func WithArchiver(a Archiver) Option {
	return func(s *Service) { s.archiver = a }
}

// WithObserver 设置结果观察者（指标）
func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

// WithLogger 设置日志器
func WithLogger(l *logging.Logger) Option {
	return func(s *Service) { s.log = l }
}

// NewService 创建 seed 服务，limit 为一次拉取的条目数
func NewService(store storage.PokemonStore, fetcher Fetcher, limit int, opts ...Option) *Service {
	s := &Service{
		store:   store,
		fetcher: fetcher,
		limit:   limit,
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExecuteSeed 清空并重新导入图鉴
func (s *Service) ExecuteSeed(ctx context.Context) (msg string, err error) {
	start := time.Now()
	imported := 0
	log := s.log.WithContext(ctx)
	defer func() {
		if s.observer != nil {
			s.observer.ObserveSeed(err, imported, time.Since(start))
		}
		if err != nil {
			log.WithError(err).WithDuration(time.Since(start)).Error("Seed failed")
		}
	}()

	deleted, err := s.store.DeleteAllPokemons(ctx)
	if err != nil {
		return "", fmt.Errorf("seed: delete all: %w", err)
	}
	log.SeedLog("cleared", slog.Int64("deleted", deleted))

	resp, err := s.fetcher.ListPokemon(ctx, s.limit)
	if err != nil {
		return "", fmt.Errorf("seed: fetch listing: %w", err)
	}
	log.SeedLog("fetched", slog.Int("count", len(resp.Results)), slog.Bool("cached", resp.Cached))

	if s.archiver != nil && len(resp.Raw) > 0 {
		// 归档失败不影响导入
		if key, aerr := s.archiver.ArchiveSnapshot(ctx, resp.Raw); aerr != nil {
			log.WithError(aerr).Warn("Seed snapshot archive failed")
		} else {
			log.SeedLog("archived", slog.String("key", key))
		}
	}

	pokemons, err := fromListing(resp.Results)
	if err != nil {
		return "", fmt.Errorf("seed: %w", err)
	}

	if len(pokemons) > 0 {
		if err := s.store.InsertPokemons(ctx, pokemons); err != nil {
			return "", fmt.Errorf("seed: insert: %w", err)
		}
	}
	imported = len(pokemons)
	log.SeedLog("inserted", slog.Int("count", imported))

	return ResultMessage, nil
}

// fromListing 由远端列表构造条目：编号取 URL 倒数第二段，名称原样保留
func fromListing(results []pokeapi.NamedResource) ([]*model.Pokemon, error) {
	pokemons := make([]*model.Pokemon, 0, len(results))
	for _, r := range results {
		no, err := pokeapi.NumberFromURL(r.URL)
		if err != nil {
			return nil, err
		}
		pokemons = append(pokemons, &model.Pokemon{No: no, Name: r.Name})
	}
	return pokemons, nil
}
