package mongostore

import (
	"context"
	"errors"
	"regexp"
	"strconv"

	"pokedex-admin/internal/shared/storage"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// dupKeyRe 从 E11000 错误信息中提取冲突字段与值
// 例如: E11000 duplicate key error collection: pokedex.pokemons index: name_1 dup key: { name: "pikachu" }
var dupKeyRe = regexp.MustCompile(`dup key: \{ ?(\w+): ("(?:[^"\\]|\\.)*"|[^ }]+) ?\}`)

// wrapError 将 MongoDB 错误转换为领域错误
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return storage.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return parseDuplicateKey(err)
	}
	return err
}

// parseDuplicateKey 解析重复键错误，无法识别字段时只保留 ErrDuplicate 语义
func parseDuplicateKey(err error) *storage.DuplicateKeyError {
	dup := &storage.DuplicateKeyError{Err: err}
	m := dupKeyRe.FindStringSubmatch(err.Error())
	if m == nil {
		return dup
	}
	dup.Key = m[1]
	raw := m[2]
	if s, uerr := strconv.Unquote(raw); uerr == nil {
		dup.Value = s
	} else if n, aerr := strconv.Atoi(raw); aerr == nil {
		dup.Value = n
	} else {
		dup.Value = raw
	}
	return dup
}

// findOne 查找单个文档并解码到 result
// 文档不存在时返回 (nil, nil)，与 SQL 实现的 sql.ErrNoRows → (nil, nil) 行为一致
func findOne[T any](ctx context.Context, col *mongo.Collection, filter bson.D) (*T, error) {
	var result T
	err := col.FindOne(ctx, filter).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, wrapError(err)
	}
	return &result, nil
}

// findMany 查找多个文档
func findMany[T any](ctx context.Context, col *mongo.Collection, filter bson.D, opts ...options.Lister[options.FindOptions]) ([]*T, error) {
	cursor, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, wrapError(err)
	}
	defer cursor.Close(ctx)

	var results []*T
	for cursor.Next(ctx) {
		var item T
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		results = append(results, &item)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	if results == nil {
		results = []*T{}
	}
	return results, nil
}

// deleteByID 按 _id 删除
func deleteByID(ctx context.Context, col *mongo.Collection, id bson.ObjectID) error {
	res, err := col.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return wrapError(err)
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// updateFields 按 _id 更新指定字段
func updateFields(ctx context.Context, col *mongo.Collection, id bson.ObjectID, update bson.D) error {
	res, err := col.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: update}})
	if err != nil {
		return wrapError(err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}
