package storage

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

// idPattern 24 位十六进制，与 MongoDB ObjectID 的十六进制形式一致
var idPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// IsValidID 判断字符串是否为语法合法的实体标识
func IsValidID(id string) bool {
	return idPattern.MatchString(id)
}

// NewID 生成 12 字节随机标识（24 位十六进制）
//
// 供 SQL 驱动使用，使所有驱动的 ID 形态一致。
func NewID() string {
	b := make([]byte, 12)
	rand.Read(b)
	return hex.EncodeToString(b)
}
