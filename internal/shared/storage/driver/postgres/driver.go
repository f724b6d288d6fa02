// Package postgres PostgreSQL 数据库驱动
//
// 提供 PostgreSQL 连接管理和方言实现。
package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"pokedex-admin/internal/shared/storage/dbutil"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// codeUniqueViolation unique_violation
const codeUniqueViolation = "23505"

// detailRe 匹配 "Key (name)=(pikachu) already exists."
var detailRe = regexp.MustCompile(`Key \(([^)]+)\)=\((.*)\) already exists`)

// Dialect PostgreSQL 方言实现
type Dialect struct{}

var _ dbutil.Dialect = (*Dialect)(nil)

func (d *Dialect) DriverType() dbutil.DriverType {
	return dbutil.DriverPostgres
}

func (d *Dialect) Rebind(query string) string {
	return dbutil.RebindToPositional(query)
}

func (d *Dialect) UniqueViolation(err error) (string, string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != codeUniqueViolation {
		return "", "", false
	}
	if m := detailRe.FindStringSubmatch(pgErr.Detail); m != nil {
		return unquoteIdent(m[1]), m[2], true
	}
	return pgErr.ColumnName, "", true
}

// unquoteIdent 去除 "no" 这类带引号列名的引号
func unquoteIdent(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func (d *Dialect) AutoMigrate(db *sql.DB) error {
	_, err := db.Exec(dbutil.PokemonSchema)
	return err
}

// Open 创建 PostgreSQL 数据库连接
func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return db, nil
}

// NewDialect 创建 PostgreSQL 方言
func NewDialect() *Dialect {
	return &Dialect{}
}
