package infra

import (
	"database/sql"
	"fmt"
	"strings"

	"pokedex-admin/internal/config"
	"pokedex-admin/internal/shared/storage"
	"pokedex-admin/internal/shared/storage/dbutil"
	pgdriver "pokedex-admin/internal/shared/storage/driver/postgres"
	sqlitedriver "pokedex-admin/internal/shared/storage/driver/sqlite"
	"pokedex-admin/internal/shared/storage/mongostore"
	"pokedex-admin/internal/shared/storage/repository"
	"pokedex-admin/pkg/logging"
)

// NewPokemonStore 根据配置的驱动类型创建图鉴存储
func NewPokemonStore(cfg *config.Config) (storage.PokemonStore, error) {
	log := logging.Default("infra")

	switch cfg.DatabaseDriver {
	case "mongodb", "":
		store, err := mongostore.NewStore(cfg.DatabaseURL, cfg.DatabaseName)
		if err != nil {
			return nil, err
		}
		log.Info("Store opened", "driver", "mongodb", "database", cfg.DatabaseName)
		return store, nil

	case "sqlite":
		db, err := sqlitedriver.Open(sqliteDSN(cfg.DatabaseURL))
		if err != nil {
			return nil, err
		}
		store, err := newSQLStore(db, sqlitedriver.NewDialect())
		if err != nil {
			return nil, err
		}
		log.Info("Store opened", "driver", "sqlite")
		return store, nil

	case "postgres":
		db, err := pgdriver.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		store, err := newSQLStore(db, pgdriver.NewDialect())
		if err != nil {
			return nil, err
		}
		log.Info("Store opened", "driver", "postgres")
		return store, nil

	default:
		return nil, errUnsupportedDriver(cfg.DatabaseDriver)
	}
}

func newSQLStore(db *sql.DB, dialect dbutil.Dialect) (*repository.Store, error) {
	if err := dialect.AutoMigrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate %s schema: %w", dialect.DriverType(), err)
	}
	return repository.NewStore(db, dialect), nil
}

// sqliteDSN 去掉 "sqlite:" / "sqlite://" 前缀，其余形式原样交给驱动
func sqliteDSN(url string) string {
	if rest, ok := strings.CutPrefix(url, "sqlite://"); ok {
		return rest
	}
	if rest, ok := strings.CutPrefix(url, "sqlite:"); ok {
		return rest
	}
	return url
}
