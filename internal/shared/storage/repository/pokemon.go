package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"pokedex-admin/internal/shared/model"
	"pokedex-admin/internal/shared/storage"
	"pokedex-admin/internal/shared/storage/dbutil"
)

const pokemonColumns = `id, "no", name`

func (s *Store) CreatePokemon(ctx context.Context, p *model.Pokemon) error {
	id := storage.NewID()
	query := s.rebind(`INSERT INTO pokemons (` + pokemonColumns + `) VALUES ($1, $2, $3)`)
	if _, err := s.db.ExecContext(ctx, query, id, p.No, p.Name); err != nil {
		return fillDuplicate(s.wrapError(err), p)
	}
	p.ID = id
	return nil
}

// InsertPokemons 单条多行 INSERT，整体成功或整体失败
func (s *Store) InsertPokemons(ctx context.Context, ps []*model.Pokemon) error {
	if len(ps) == 0 {
		return nil
	}
	ids := make([]string, len(ps))
	rows := make([]string, len(ps))
	args := make([]interface{}, 0, len(ps)*3)
	for i, p := range ps {
		ids[i] = storage.NewID()
		rows[i] = "(" + dbutil.PlaceholderList(i*3+1, 3) + ")"
		args = append(args, ids[i], p.No, p.Name)
	}
	query := s.rebind(`INSERT INTO pokemons (` + pokemonColumns + `) VALUES ` + strings.Join(rows, ", "))
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return s.wrapError(err)
	}
	for i, p := range ps {
		p.ID = ids[i]
	}
	return nil
}

func (s *Store) ListPokemons(ctx context.Context, limit, offset int) ([]*model.Pokemon, error) {
	query := s.rebind(`SELECT ` + pokemonColumns + ` FROM pokemons ORDER BY "no" ASC LIMIT $1 OFFSET $2`)
	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list pokemons: %w", s.wrapError(err))
	}
	defer rows.Close()

	result := []*model.Pokemon{}
	for rows.Next() {
		var p model.Pokemon
		if err := rows.Scan(&p.ID, &p.No, &p.Name); err != nil {
			return nil, err
		}
		result = append(result, &p)
	}
	return result, rows.Err()
}

func (s *Store) GetPokemon(ctx context.Context, id string) (*model.Pokemon, error) {
	if !storage.IsValidID(id) {
		return nil, nil
	}
	return s.getBy(ctx, "id", id)
}

func (s *Store) GetPokemonByNo(ctx context.Context, no int) (*model.Pokemon, error) {
	return s.getBy(ctx, `"no"`, no)
}

func (s *Store) GetPokemonByName(ctx context.Context, name string) (*model.Pokemon, error) {
	return s.getBy(ctx, "name", name)
}

// getBy 按单列查询，不存在时返回 (nil, nil)
func (s *Store) getBy(ctx context.Context, column string, value interface{}) (*model.Pokemon, error) {
	query := s.rebind(`SELECT ` + pokemonColumns + ` FROM pokemons WHERE ` + column + ` = $1`)
	var p model.Pokemon
	err := s.db.QueryRowContext(ctx, query, value).Scan(&p.ID, &p.No, &p.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, s.wrapError(err)
	}
	return &p, nil
}

func (s *Store) UpdatePokemon(ctx context.Context, id string, patch model.PokemonPatch) error {
	var sets []string
	var args []interface{}
	if patch.No != nil {
		args = append(args, *patch.No)
		sets = append(sets, `"no" = $`+strconv.Itoa(len(args)))
	}
	if patch.Name != nil {
		args = append(args, *patch.Name)
		sets = append(sets, `name = $`+strconv.Itoa(len(args)))
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	query := s.rebind(`UPDATE pokemons SET ` + strings.Join(sets, ", ") + ` WHERE id = $` + strconv.Itoa(len(args)))

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fillDuplicate(s.wrapError(err), &model.Pokemon{No: derefInt(patch.No), Name: derefString(patch.Name)})
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) DeletePokemon(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM pokemons WHERE id = $1`), id)
	if err != nil {
		return s.wrapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteAllPokemons(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM pokemons`)
	if err != nil {
		return 0, s.wrapError(err)
	}
	return res.RowsAffected()
}

func (s *Store) IsValidID(id string) bool {
	return storage.IsValidID(id)
}

// fillDuplicate 驱动未给出冲突值时，用写入的实体补全
func fillDuplicate(err error, p *model.Pokemon) error {
	var dup *storage.DuplicateKeyError
	if !errors.As(err, &dup) || dup.Value != nil {
		return err
	}
	switch dup.Key {
	case "no":
		dup.Value = p.No
	case "name":
		dup.Value = p.Name
	}
	return err
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
