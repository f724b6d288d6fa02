// Package dbutil 提供数据库方言抽象和工具函数
//
// 通过 Dialect 接口屏蔽不同数据库（PostgreSQL、SQLite）的 SQL 差异，
// 使 repository 层可以编写与数据库无关的业务逻辑。
package dbutil

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"
)

// DriverType 数据库驱动类型
type DriverType string

const (
	DriverPostgres DriverType = "postgres"
	DriverSQLite   DriverType = "sqlite"
)

// Dialect 数据库方言接口
//
// 不同数据库的 SQL 语法差异通过该接口屏蔽：
//   - 占位符：PostgreSQL 用 $1, $2；SQLite 用 ?
//   - 类型转换：PostgreSQL 有 ::type 语法
//   - 唯一约束冲突：错误类型与错误信息格式各不相同
type Dialect interface {
	// DriverType 返回驱动类型标识
	DriverType() DriverType

	// Rebind 将 PostgreSQL 风格的占位符 ($1, $2, ...) 转换为目标数据库的占位符格式
	Rebind(query string) string

	// UniqueViolation 判断 err 是否为唯一约束冲突
	// 返回冲突列名，以及驱动能给出的冲突值（取不到时为空字符串）
	UniqueViolation(err error) (column, value string, ok bool)

	// AutoMigrate 自动创建/迁移数据库 Schema
	AutoMigrate(db *sql.DB) error
}

// pgPlaceholderRe 匹配 PostgreSQL 风格占位符 $1, $2, ...
var pgPlaceholderRe = regexp.MustCompile(`\$(\d+)`)

// pgCastRe 匹配 PostgreSQL 类型转换 ::type
var pgCastRe = regexp.MustCompile(`::(\w+)`)

// RebindToPositional 保持 $N 占位符不变（PostgreSQL 专用）
func RebindToPositional(query string) string {
	return query
}

// RebindToQuestion 将 $N 占位符转换为 ? （SQLite 专用）
func RebindToQuestion(query string) string {
	return pgPlaceholderRe.ReplaceAllString(query, "?")
}

// StripPgCasts 去除 PostgreSQL 类型转换 (::varchar, ::text 等)
func StripPgCasts(query string) string {
	return pgCastRe.ReplaceAllString(query, "")
}

// PlaceholderList 生成指定数量的占位符列表，如 "$1, $2, $3"
// 返回 PostgreSQL 风格，由调用方统一 Rebind
func PlaceholderList(start, count int) string {
	parts := make([]string, count)
	for i := 0; i < count; i++ {
		parts[i] = fmt.Sprintf("$%d", start+i)
	}
	return strings.Join(parts, ", ")
}

// PokemonSchema pokemons 表建表语句（两种数据库通用）
// "no" 加引号避免与关键字冲突
const PokemonSchema = `
CREATE TABLE IF NOT EXISTS pokemons (
    id VARCHAR(24) PRIMARY KEY,
    "no" INTEGER NOT NULL,
    name VARCHAR(200) NOT NULL,
    CONSTRAINT pokemons_no_key UNIQUE ("no"),
    CONSTRAINT pokemons_name_key UNIQUE (name)
);
`
