// Package storage 定义持久化存储层抽象接口
//
// 设计原则：依赖倒置 (DIP)
//   - 调用方只依赖接口，不知道具体实现
//   - 具体实现在子包中：mongostore/（MongoDB）, repository/（SQLite / PostgreSQL）
//   - 初始化时通过依赖注入传入实现（见 infra.NewPokemonStore）
package storage

import (
	"context"

	"pokedex-admin/internal/shared/model"
)

// PokemonStore 图鉴条目存储接口
//
// 查询方法在文档不存在时返回 (nil, nil)，与 SQL 实现的 sql.ErrNoRows → (nil, nil) 行为一致。
// 写入方法在唯一键冲突时返回 *DuplicateKeyError。
type PokemonStore interface {
	// CreatePokemon 插入单条记录，并回填 p.ID
	CreatePokemon(ctx context.Context, p *model.Pokemon) error

	// InsertPokemons 批量插入（单次操作），并回填各条记录的 ID
	InsertPokemons(ctx context.Context, ps []*model.Pokemon) error

	// ListPokemons 按 no 升序分页查询
	ListPokemons(ctx context.Context, limit, offset int) ([]*model.Pokemon, error)

	// GetPokemon 按 ID 查询
	GetPokemon(ctx context.Context, id string) (*model.Pokemon, error)

	// GetPokemonByNo 按图鉴编号查询
	GetPokemonByNo(ctx context.Context, no int) (*model.Pokemon, error)

	// GetPokemonByName 按名称精确查询（不做大小写转换）
	GetPokemonByName(ctx context.Context, name string) (*model.Pokemon, error)

	// UpdatePokemon 按 ID 更新 patch 中提供的字段，记录不存在时返回 ErrNotFound
	UpdatePokemon(ctx context.Context, id string, patch model.PokemonPatch) error

	// DeletePokemon 按 ID 删除，未删除任何记录时返回 ErrNotFound
	DeletePokemon(ctx context.Context, id string) error

	// DeleteAllPokemons 删除全部记录，返回删除数量
	DeleteAllPokemons(ctx context.Context) (int64, error)

	// IsValidID 判断字符串是否为本存储语法合法的 ID
	IsValidID(id string) bool

	Close() error
}
