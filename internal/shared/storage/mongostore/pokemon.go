package mongostore

import (
	"context"
	"fmt"

	"pokedex-admin/internal/shared/model"
	"pokedex-admin/internal/shared/storage"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// pokemonDoc pokemons 集合中的文档结构
//
// __v 等由其他客户端写入的元数据字段在查询时通过 projection 排除。
type pokemonDoc struct {
	ID   bson.ObjectID `bson:"_id,omitempty"`
	No   int           `bson:"no"`
	Name string        `bson:"name"`
}

func (d *pokemonDoc) toModel() *model.Pokemon {
	return &model.Pokemon{ID: d.ID.Hex(), No: d.No, Name: d.Name}
}

// withoutMeta 排除版本字段
var withoutMeta = bson.D{{Key: "__v", Value: 0}}

// ============================================================================
// PokemonStore
// ============================================================================

func (s *Store) CreatePokemon(ctx context.Context, p *model.Pokemon) error {
	doc := pokemonDoc{ID: bson.NewObjectID(), No: p.No, Name: p.Name}
	if _, err := s.col(ColPokemons).InsertOne(ctx, doc); err != nil {
		return wrapError(err)
	}
	p.ID = doc.ID.Hex()
	return nil
}

func (s *Store) InsertPokemons(ctx context.Context, ps []*model.Pokemon) error {
	if len(ps) == 0 {
		return nil
	}
	docs := make([]pokemonDoc, len(ps))
	for i, p := range ps {
		docs[i] = pokemonDoc{ID: bson.NewObjectID(), No: p.No, Name: p.Name}
	}
	if _, err := s.col(ColPokemons).InsertMany(ctx, docs); err != nil {
		return wrapError(err)
	}
	for i, p := range ps {
		p.ID = docs[i].ID.Hex()
	}
	return nil
}

func (s *Store) ListPokemons(ctx context.Context, limit, offset int) ([]*model.Pokemon, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "no", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit)).
		SetProjection(withoutMeta)
	docs, err := findMany[pokemonDoc](ctx, s.col(ColPokemons), bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list pokemons: %w", err)
	}
	result := make([]*model.Pokemon, len(docs))
	for i, d := range docs {
		result[i] = d.toModel()
	}
	return result, nil
}

func (s *Store) GetPokemon(ctx context.Context, id string) (*model.Pokemon, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return s.getBy(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (s *Store) GetPokemonByNo(ctx context.Context, no int) (*model.Pokemon, error) {
	return s.getBy(ctx, bson.D{{Key: "no", Value: no}})
}

func (s *Store) GetPokemonByName(ctx context.Context, name string) (*model.Pokemon, error) {
	return s.getBy(ctx, bson.D{{Key: "name", Value: name}})
}

func (s *Store) getBy(ctx context.Context, filter bson.D) (*model.Pokemon, error) {
	doc, err := findOne[pokemonDoc](ctx, s.col(ColPokemons), filter)
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (s *Store) UpdatePokemon(ctx context.Context, id string, patch model.PokemonPatch) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return storage.ErrNotFound
	}
	update := bson.D{}
	if patch.No != nil {
		update = append(update, bson.E{Key: "no", Value: *patch.No})
	}
	if patch.Name != nil {
		update = append(update, bson.E{Key: "name", Value: *patch.Name})
	}
	if len(update) == 0 {
		return nil
	}
	return updateFields(ctx, s.col(ColPokemons), oid, update)
}

func (s *Store) DeletePokemon(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return storage.ErrNotFound
	}
	return deleteByID(ctx, s.col(ColPokemons), oid)
}

func (s *Store) DeleteAllPokemons(ctx context.Context) (int64, error) {
	res, err := s.col(ColPokemons).DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, wrapError(err)
	}
	return res.DeletedCount, nil
}

// IsValidID ObjectID 十六进制形式
func (s *Store) IsValidID(id string) bool {
	_, err := bson.ObjectIDFromHex(id)
	return err == nil
}
