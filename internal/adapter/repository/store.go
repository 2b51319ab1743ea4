package repository

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/studydesk/internal/infrastructure/config"
	"github.com/eslsoft/studydesk/internal/infrastructure/database/migrate"
)

const schemaVersionKey = "schema_version"

// Store is the handle every repository in this package shares. It owns the
// driver, the legacy-owner rule and the set of indexes present in the live
// database.
type Store struct {
	drv           dialect.Driver
	log           *logrus.Logger
	legacyVisible bool
	autoMigrate   bool

	mu      sync.RWMutex
	indexes map[string]struct{}
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report storage failures.
func WithLogger(logger *logrus.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.log = logger
		}
	}
}

// WithLegacyVisible controls whether records without an owner are returned to every owner.
func WithLegacyVisible(visible bool) Option {
	return func(s *Store) { s.legacyVisible = visible }
}

// WithAutoMigrate toggles the additive schema migration run by Open.
func WithAutoMigrate(enabled bool) Option {
	return func(s *Store) { s.autoMigrate = enabled }
}

// Open prepares the schema and returns a ready Store. The caller keeps
// ownership of drv until Close is called.
func Open(ctx context.Context, drv dialect.Driver, opts ...Option) (*Store, error) {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	s := &Store{
		drv:           drv,
		log:           discard,
		legacyVisible: true,
		autoMigrate:   true,
	}
	for _, opt := range opts {
		opt(s)
	}

	version, err := s.schemaVersion(ctx)
	if err != nil {
		return nil, s.fail("open", migrate.StoreMetaTable.Name, err)
	}
	if version > migrate.SchemaVersion {
		return nil, fmt.Errorf("%w: database version %d, supported %d", ErrSchemaTooNew, version, migrate.SchemaVersion)
	}

	if s.autoMigrate {
		if err := migrate.Create(ctx, drv); err != nil {
			return nil, s.fail("migrate", "", err)
		}
		if version < migrate.SchemaVersion {
			if err := s.setSchemaVersion(ctx, migrate.SchemaVersion); err != nil {
				return nil, s.fail("migrate", migrate.StoreMetaTable.Name, err)
			}
			s.log.WithFields(logrus.Fields{"from": version, "to": migrate.SchemaVersion}).Info("schema migrated")
		}
	}

	if err := s.RefreshIndexes(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStore opens a Store from application config.
func NewStore(cfg *config.Config, drv dialect.Driver, logger *logrus.Logger) (*Store, error) {
	return Open(context.Background(), drv,
		WithLogger(logger),
		WithLegacyVisible(cfg.Store.LegacyVisible),
		WithAutoMigrate(cfg.Store.AutoMigrate),
	)
}

// Close releases the underlying driver.
func (s *Store) Close() error {
	return s.drv.Close()
}

// Dialect reports the SQL dialect of the underlying driver.
func (s *Store) Dialect() string {
	return s.drv.Dialect()
}

// RefreshIndexes reloads the index names present in the live database.
func (s *Store) RefreshIndexes(ctx context.Context) error {
	b := entsql.Dialect(s.drv.Dialect())
	var sel *entsql.Selector
	switch s.drv.Dialect() {
	case dialect.Postgres:
		sel = b.Select("indexname").
			From(entsql.Table("pg_indexes")).
			Where(entsql.ExprP("schemaname = current_schema()"))
	default:
		sel = b.Select("name").
			From(entsql.Table("sqlite_master")).
			Where(entsql.EQ("type", "index"))
	}
	names, err := queryStrings(ctx, s.drv, sel)
	if err != nil {
		return s.fail("introspect", "indexes", err)
	}

	indexes := make(map[string]struct{}, len(names))
	for _, name := range names {
		indexes[name] = struct{}{}
	}
	s.mu.Lock()
	s.indexes = indexes
	s.mu.Unlock()
	return nil
}

func (s *Store) hasIndex(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.indexes[name]
	return ok
}

func (s *Store) tableExists(ctx context.Context, name string) (bool, error) {
	b := entsql.Dialect(s.drv.Dialect())
	var sel *entsql.Selector
	switch s.drv.Dialect() {
	case dialect.Postgres:
		sel = b.Select("tablename").
			From(entsql.Table("pg_tables")).
			Where(entsql.And(
				entsql.ExprP("schemaname = current_schema()"),
				entsql.EQ("tablename", name),
			))
	default:
		sel = b.Select("name").
			From(entsql.Table("sqlite_master")).
			Where(entsql.And(entsql.EQ("type", "table"), entsql.EQ("name", name)))
	}
	names, err := queryStrings(ctx, s.drv, sel)
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

// schemaVersion returns 0 for a database that has never been migrated.
func (s *Store) schemaVersion(ctx context.Context) (int, error) {
	ok, err := s.tableExists(ctx, migrate.StoreMetaTable.Name)
	if err != nil || !ok {
		return 0, err
	}
	sel := entsql.Dialect(s.drv.Dialect()).
		Select("value").
		From(entsql.Table(migrate.StoreMetaTable.Name)).
		Where(entsql.EQ("key", schemaVersionKey))
	values, err := queryStrings(ctx, s.drv, sel)
	if err != nil || len(values) == 0 {
		return 0, err
	}
	v, err := strconv.Atoi(values[0])
	if err != nil {
		return 0, fmt.Errorf("parse schema version %q: %w", values[0], err)
	}
	return v, nil
}

func (s *Store) setSchemaVersion(ctx context.Context, version int) error {
	query, args := entsql.Dialect(s.drv.Dialect()).
		Insert(migrate.StoreMetaTable.Name).
		Columns("key", "value").
		Values(schemaVersionKey, strconv.Itoa(version)).
		OnConflict(entsql.ConflictColumns("key"), entsql.ResolveWithNewValues()).
		Query()
	return s.drv.Exec(ctx, query, args, nil)
}

// withTx runs fn inside one transaction; any error rolls everything back.
func (s *Store) withTx(ctx context.Context, fn func(tx dialect.Tx) error) (err error) {
	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	commit := false
	defer func() {
		if !commit {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	commit = true
	return nil
}

func queryStrings(ctx context.Context, q dialect.ExecQuerier, sel *entsql.Selector) ([]string, error) {
	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := q.Query(ctx, query, args, rows); err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
