// Package pokemon 图鉴领域 - 业务逻辑
package pokemon

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"pokedex-admin/internal/apiserver/apierr"
	"pokedex-admin/internal/shared/model"
	"pokedex-admin/internal/shared/storage"
	"pokedex-admin/pkg/logging"
)

// resolver 单一查找策略，不适用或未命中时返回 (nil, nil)
type resolver func(ctx context.Context, term string) (*model.Pokemon, error)

// Service 图鉴条目增删改查
type Service struct {
	store        storage.PokemonStore
	defaultLimit int
	resolvers    []resolver
	log          *logging.Logger
}

// NewService 创建服务，defaultLimit <= 0 时使用 model.DefaultPageLimit
func NewService(store storage.PokemonStore, defaultLimit int, log *logging.Logger) *Service {
	if defaultLimit <= 0 {
		defaultLimit = model.DefaultPageLimit
	}
	if log == nil {
		log = logging.Discard()
	}
	s := &Service{store: store, defaultLimit: defaultLimit, log: log}
	// 顺序即优先级：编号 → ID → 名称
	s.resolvers = []resolver{s.byNo, s.byID, s.byName}
	return s
}

// Create 创建条目，名称统一小写
func (s *Service) Create(ctx context.Context, no int, name string) (*model.Pokemon, error) {
	p := &model.Pokemon{No: no, Name: strings.ToLower(name)}
	if err := s.store.CreatePokemon(ctx, p); err != nil {
		s.log.WithContext(ctx).WithError(err).Warn("Create pokemon failed", "no", no, "name", p.Name)
		return nil, apierr.FromWrite(err, "Pokemon")
	}
	return p, nil
}

// FindAll 按 no 升序分页
func (s *Service) FindAll(ctx context.Context, page model.Pagination) ([]*model.Pokemon, error) {
	limit := page.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}
	offset := page.Offset
	if offset < 0 {
		offset = model.DefaultPageOffset
	}
	list, err := s.store.ListPokemons(ctx, limit, offset)
	if err != nil {
		return nil, apierr.Internal(err, "failed to list pokemons")
	}
	return list, nil
}

// FindOne 依次按编号、ID、名称查找，第一个命中者胜出
func (s *Service) FindOne(ctx context.Context, term string) (*model.Pokemon, error) {
	for _, resolve := range s.resolvers {
		p, err := resolve(ctx, term)
		if err != nil {
			return nil, apierr.Internal(err, "failed to find pokemon")
		}
		if p != nil {
			return p, nil
		}
	}
	return nil, apierr.NotFound("Pokemon with id, name or no %q not found", term)
}

func (s *Service) byNo(ctx context.Context, term string) (*model.Pokemon, error) {
	no, err := strconv.Atoi(term)
	if err != nil {
		return nil, nil
	}
	return s.store.GetPokemonByNo(ctx, no)
}

func (s *Service) byID(ctx context.Context, term string) (*model.Pokemon, error) {
	if !s.store.IsValidID(term) {
		return nil, nil
	}
	return s.store.GetPokemon(ctx, term)
}

func (s *Service) byName(ctx context.Context, term string) (*model.Pokemon, error) {
	return s.store.GetPokemonByName(ctx, term)
}

// Update 按 term 定位条目并应用 patch，返回合并后的条目
//
// 空 patch 不触发写入。
func (s *Service) Update(ctx context.Context, term string, patch model.PokemonPatch) (*model.Pokemon, error) {
	p, err := s.FindOne(ctx, term)
	if err != nil {
		return nil, err
	}

	patch.Normalize()
	if patch.IsEmpty() {
		return p, nil
	}

	if err := s.store.UpdatePokemon(ctx, p.ID, patch); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apierr.NotFound("Pokemon with id, name or no %q not found", term)
		}
		s.log.WithContext(ctx).WithError(err).Warn("Update pokemon failed", "id", p.ID)
		return nil, apierr.FromWrite(err, "Pokemon")
	}

	merged := patch.ApplyTo(*p)
	return &merged, nil
}

// Remove 按 ID 删除
//
// ID 不合法或不存在时均返回 BadRequest。
func (s *Service) Remove(ctx context.Context, id string) error {
	if !s.store.IsValidID(id) {
		return apierr.BadRequest("%s is not a valid id", id)
	}
	if err := s.store.DeletePokemon(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apierr.BadRequest("Pokemon with id %q not found", id)
		}
		return apierr.Internal(err, "failed to delete pokemon")
	}
	return nil
}
