// Package sqlite SQLite 数据库驱动
//
// 提供 SQLite 连接管理、方言实现和自动 Schema 迁移。
// 适用于开发、测试和单机部署场景。
package sqlite

import (
	"database/sql"
	"fmt"
	"regexp"

	"pokedex-admin/internal/shared/storage/dbutil"

	_ "modernc.org/sqlite"
)

// uniqueRe 匹配 "UNIQUE constraint failed: pokemons.name"
var uniqueRe = regexp.MustCompile(`UNIQUE constraint failed: \w+\.(\w+)`)

// Dialect SQLite 方言实现
type Dialect struct{}

var _ dbutil.Dialect = (*Dialect)(nil)

func (d *Dialect) DriverType() dbutil.DriverType {
	return dbutil.DriverSQLite
}

func (d *Dialect) Rebind(query string) string {
	return dbutil.StripPgCasts(dbutil.RebindToQuestion(query))
}

// UniqueViolation SQLite 错误信息只包含列名，不包含冲突值
func (d *Dialect) UniqueViolation(err error) (string, string, bool) {
	if err == nil {
		return "", "", false
	}
	m := uniqueRe.FindStringSubmatch(err.Error())
	if m == nil {
		return "", "", false
	}
	return m[1], "", true
}

func (d *Dialect) AutoMigrate(db *sql.DB) error {
	_, err := db.Exec(dbutil.PokemonSchema)
	return err
}

// Open 创建 SQLite 数据库连接
// dsn 示例: "file:pokedex.db?cache=shared&mode=rwc" 或 ":memory:"
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	// :memory: 每个连接是独立数据库，限制为单连接
	if dsn == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// SQLite 优化设置
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", p, err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite: %w", err)
	}

	return db, nil
}

// NewDialect 创建 SQLite 方言
func NewDialect() *Dialect {
	return &Dialect{}
}
