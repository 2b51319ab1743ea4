package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/studydesk/internal/infrastructure/config"
)

// NewDriver opens the configured database and wraps it in an ent SQL driver.
func NewDriver(cfg *config.Config, logger *logrus.Logger) (dialect.Driver, func(), error) {
	driverName, err := cfg.DatabaseDriver()
	if err != nil {
		return nil, nil, fmt.Errorf("determine database driver: %w", err)
	}

	dsn, err := cfg.DatabaseURL()
	if err != nil {
		return nil, nil, fmt.Errorf("determine database dsn: %w", err)
	}

	if driverName == "sqlite3" && cfg.Database.URL == "" {
		dir := cfg.Store.DataDir
		if cfg.Database.Path != "" {
			dir = filepath.Dir(cfg.Database.Path)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	drv, err := Open(driverName, dsn)
	if err != nil {
		return nil, nil, err
	}

	var out dialect.Driver = drv
	if cfg.Database.LogSQL && logger != nil {
		out = dialect.Debug(drv, logger.WithField("component", "sql").Debug)
	}

	return out, func() {
		_ = drv.Close()
	}, nil
}

// Open connects to dsn with the given database/sql driver name.
func Open(driverName, dsn string) (*entsql.Driver, error) {
	var dialectName string
	switch driverName {
	case "sqlite3":
		dialectName = dialect.SQLite
	case "postgres", "pgx":
		dialectName = dialect.Postgres
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driverName)
	}

	rawDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", driverName, err)
	}
	if dialectName == dialect.SQLite {
		rawDB.SetMaxOpenConns(1)
		rawDB.SetMaxIdleConns(1)
	} else {
		rawDB.SetMaxOpenConns(10)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rawDB.PingContext(ctx); err != nil {
		rawDB.Close()
		return nil, fmt.Errorf("ping %s db: %w", driverName, err)
	}
	if dialectName == dialect.SQLite {
		if _, err := rawDB.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
			rawDB.Close()
			return nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
		}
	}

	return entsql.OpenDB(dialectName, rawDB), nil
}
