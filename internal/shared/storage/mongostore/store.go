// Package mongostore 实现基于 MongoDB 的 PokemonStore
//
// 使用 mongo-go-driver v2，ID 为 ObjectID，no 与 name 各有唯一索引。
// Collection 名称和索引在 ensureIndexes 中统一管理。
package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"pokedex-admin/pkg/logging"
)

// Collection 名称常量
const (
	ColPokemons = "pokemons"
)

// Store 实现 storage.PokemonStore 接口的 MongoDB 驱动
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore 创建 MongoDB 存储实例
//
// uri: MongoDB 连接 URI，如 "mongodb://localhost:27017"
// dbName: 数据库名称，如 "pokedex"
func NewStore(uri, dbName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongostore: connect failed: %w", err)
	}

	// 验证连接
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongostore: ping failed: %w", err)
	}

	db := client.Database(dbName)
	s := &Store{client: client, db: db}

	// 创建索引
	if err := s.ensureIndexes(ctx); err != nil {
		logging.Default("mongostore").WithError(err).Warn("Ensure indexes failed")
	}

	return s, nil
}

// Close 关闭 MongoDB 连接
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// col 获取指定 Collection
func (s *Store) col(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// ensureIndexes 创建所有必要的索引
//
// no 与 name 的唯一索引是重复检测的唯一来源，应用层不做预查询。
func (s *Store) ensureIndexes(ctx context.Context) error {
	type idx struct {
		col    string
		keys   bson.D
		unique bool
	}

	indexes := []idx{
		{ColPokemons, bson.D{{Key: "no", Value: 1}}, true},
		{ColPokemons, bson.D{{Key: "name", Value: 1}}, true},
	}

	for _, i := range indexes {
		model := mongo.IndexModel{Keys: i.keys}
		if i.unique {
			model.Options = options.Index().SetUnique(true)
		}
		if _, err := s.col(i.col).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", i.col, err)
		}
	}

	return nil
}
