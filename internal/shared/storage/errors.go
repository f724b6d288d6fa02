// Package storage 定义存储层领域错误
//
// 这些错误用于隔离业务层与底层存储引擎的错误类型，
// 各驱动实现（repository/mongostore）负责将底层错误转换为这些领域错误。
package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound 实体不存在
	// 替代 sql.ErrNoRows / mongo.ErrNoDocuments
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate 唯一键冲突（no 或 name 重复）
	ErrDuplicate = errors.New("duplicate: entity already exists")
)

// DuplicateKeyError 唯一索引冲突，携带冲突的字段与值
//
// errors.Is(err, ErrDuplicate) 对其成立。
// 驱动无法解析出具体字段时 Key 为空。
type DuplicateKeyError struct {
	Key   string
	Value any
	Err   error
}

func (e *DuplicateKeyError) Error() string {
	if e.Key == "" {
		return ErrDuplicate.Error()
	}
	return fmt.Sprintf("duplicate key %s: %v", e.Key, e.Value)
}

// Is 使 errors.Is(err, ErrDuplicate) 成立
func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicate
}

func (e *DuplicateKeyError) Unwrap() error {
	return e.Err
}

// KeyValue 返回 {字段: 值}，用于对外错误信息
func (e *DuplicateKeyError) KeyValue() map[string]any {
	if e.Key == "" {
		return map[string]any{}
	}
	return map[string]any{e.Key: e.Value}
}
