// Package repository SQLite 集成测试
//
// 使用 SQLite 内存数据库验证 repository 层存储接口的正确性。
// 无需外部数据库依赖，可在任何环境下运行。
package repository

import (
	"context"
	"errors"
	"testing"

	"pokedex-admin/internal/shared/model"
	"pokedex-admin/internal/shared/storage"
	sqlitedriver "pokedex-admin/internal/shared/storage/driver/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore 创建用于测试的 SQLite 内存数据库 Store
func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sqlitedriver.Open(":memory:")
	require.NoError(t, err)
	dialect := sqlitedriver.NewDialect()
	require.NoError(t, dialect.AutoMigrate(db))
	store := NewStore(db, dialect)
	t.Cleanup(func() { store.Close() })
	return store
}

var _ storage.PokemonStore = (*Store)(nil)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

// ============================================================================
// Pokemon 测试
// ============================================================================

func TestPokemonCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := &model.Pokemon{No: 25, Name: "pikachu"}

	// Create
	require.NoError(t, s.CreatePokemon(ctx, p))
	assert.True(t, s.IsValidID(p.ID))

	// Get by id / no / name
	got, err := s.GetPokemon(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *p, *got)

	got, err = s.GetPokemonByNo(ctx, 25)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.ID, got.ID)

	got, err = s.GetPokemonByName(ctx, "pikachu")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.ID, got.ID)

	// 名称查询区分大小写
	got, err = s.GetPokemonByName(ctx, "Pikachu")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Get not found
	got, err = s.GetPokemon(ctx, storage.NewID())
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = s.GetPokemon(ctx, "not-an-id")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Update
	require.NoError(t, s.UpdatePokemon(ctx, p.ID, model.PokemonPatch{Name: strPtr("raichu")}))
	got, _ = s.GetPokemon(ctx, p.ID)
	assert.Equal(t, "raichu", got.Name)
	assert.Equal(t, 25, got.No)

	require.NoError(t, s.UpdatePokemon(ctx, p.ID, model.PokemonPatch{No: intPtr(26), Name: strPtr("raichu")}))
	got, _ = s.GetPokemon(ctx, p.ID)
	assert.Equal(t, 26, got.No)

	// 空 patch 不写库
	require.NoError(t, s.UpdatePokemon(ctx, p.ID, model.PokemonPatch{}))

	assert.ErrorIs(t, s.UpdatePokemon(ctx, storage.NewID(), model.PokemonPatch{No: intPtr(1)}), storage.ErrNotFound)

	// Delete
	require.NoError(t, s.DeletePokemon(ctx, p.ID))
	assert.ErrorIs(t, s.DeletePokemon(ctx, p.ID), storage.ErrNotFound)
	got, _ = s.GetPokemon(ctx, p.ID)
	assert.Nil(t, got)
}

func TestPokemonDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreatePokemon(ctx, &model.Pokemon{No: 1, Name: "bulbasaur"}))
	second := &model.Pokemon{No: 2, Name: "ivysaur"}
	require.NoError(t, s.CreatePokemon(ctx, second))

	tests := []struct {
		name      string
		p         *model.Pokemon
		wantKey   string
		wantValue any
	}{
		{"duplicate name", &model.Pokemon{No: 3, Name: "bulbasaur"}, "name", "bulbasaur"},
		{"duplicate no", &model.Pokemon{No: 1, Name: "venusaur"}, "no", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.CreatePokemon(ctx, tt.p)
			require.Error(t, err)
			assert.ErrorIs(t, err, storage.ErrDuplicate)

			var dup *storage.DuplicateKeyError
			require.True(t, errors.As(err, &dup))
			assert.Equal(t, tt.wantKey, dup.Key)
			assert.Equal(t, tt.wantValue, dup.Value)
			assert.Empty(t, tt.p.ID)
		})
	}

	// 更新为已存在的名称
	err := s.UpdatePokemon(ctx, second.ID, model.PokemonPatch{Name: strPtr("bulbasaur")})
	var dup *storage.DuplicateKeyError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, map[string]any{"name": "bulbasaur"}, dup.KeyValue())
}

func TestPokemonListAndBulk(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	batch := []*model.Pokemon{
		{No: 3, Name: "venusaur"},
		{No: 1, Name: "bulbasaur"},
		{No: 5, Name: "charmeleon"},
		{No: 2, Name: "ivysaur"},
		{No: 4, Name: "charmander"},
	}
	require.NoError(t, s.InsertPokemons(ctx, batch))
	for _, p := range batch {
		assert.True(t, s.IsValidID(p.ID), "ID for %s", p.Name)
	}

	page, err := s.ListPokemons(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, 1, page[0].No)
	assert.Equal(t, 2, page[1].No)

	page, err = s.ListPokemons(ctx, 10, 3)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, 4, page[0].No)
	assert.Equal(t, 5, page[1].No)

	page, err = s.ListPokemons(ctx, 10, 50)
	require.NoError(t, err)
	assert.NotNil(t, page)
	assert.Len(t, page, 0)

	// 空批量是 no-op
	require.NoError(t, s.InsertPokemons(ctx, nil))

	n, err := s.DeleteAllPokemons(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	page, err = s.ListPokemons(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, page, 0)
}

func TestInsertPokemons_AllOrNothing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.InsertPokemons(ctx, []*model.Pokemon{
		{No: 1, Name: "bulbasaur"},
		{No: 2, Name: "bulbasaur"},
	})
	assert.ErrorIs(t, err, storage.ErrDuplicate)

	page, err := s.ListPokemons(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, page, 0)
}
