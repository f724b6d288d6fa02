// Package model 定义核心数据模型
//
// pokemon.go 包含图鉴条目相关的数据模型定义：
//   - Pokemon：持久化的图鉴条目
//   - PokemonPatch：部分更新（只修改提供的字段）
//   - Pagination：分页参数
package model

import "strings"

// Pokemon 图鉴条目
//
// ID 由存储层在创建时分配（MongoDB ObjectID 十六进制形式，SQL 驱动生成同样格式），创建后不可变。
// No 与 Name 在存储层均有唯一索引。
type Pokemon struct {
	// ID 存储层分配的唯一标识
	ID string `json:"id" db:"id"`

	// No 图鉴编号（正整数）
	No int `json:"no" db:"no"`

	// Name 名称，经图鉴服务写入时统一为小写
	Name string `json:"name" db:"name"`
}

// PokemonPatch 部分更新，nil 字段保持不变
type PokemonPatch struct {
	No   *int    `json:"no,omitempty"`
	Name *string `json:"name,omitempty"`
}

// IsEmpty 是否没有任何需要修改的字段
func (p PokemonPatch) IsEmpty() bool {
	return p.No == nil && p.Name == nil
}

// Normalize 将名称统一为小写
func (p *PokemonPatch) Normalize() {
	if p.Name != nil {
		lower := strings.ToLower(*p.Name)
		p.Name = &lower
	}
}

// ApplyTo 返回合并了 patch 字段的副本，原对象不变
func (p PokemonPatch) ApplyTo(pokemon Pokemon) Pokemon {
	if p.No != nil {
		pokemon.No = *p.No
	}
	if p.Name != nil {
		pokemon.Name = *p.Name
	}
	return pokemon
}

// Pagination 分页参数
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// 分页默认值
const (
	DefaultPageLimit  = 10
	DefaultPageOffset = 0
)
