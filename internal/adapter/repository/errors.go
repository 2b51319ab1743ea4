package repository

import (
	"errors"
	"fmt"

	"entgo.io/ent/dialect/sql/sqlgraph"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/studydesk/internal/entity"
)

// ErrSchemaTooNew is returned by Open when the database was written by a newer build.
var ErrSchemaTooNew = errors.New("database schema is newer than this build")

// StorageError reports a failed storage operation on one collection.
type StorageError struct {
	Op         string
	Collection string
	Err        error
}

func (e *StorageError) Error() string {
	if e.Collection == "" {
		return fmt.Sprintf("store %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// fail wraps err into a *StorageError and logs it once. Nil stays nil and
// errors that are already a *StorageError pass through untouched.
func (s *Store) fail(op, collection string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	err = translateDriverError(err)
	wrapped := &StorageError{Op: op, Collection: collection, Err: err}
	if errors.Is(err, entity.ErrDuplicateID) {
		return wrapped
	}
	s.log.WithFields(logrus.Fields{
		"op":         op,
		"collection": collection,
	}).WithError(err).Error("storage operation failed")
	return wrapped
}

func translateDriverError(err error) error {
	if isDuplicateKey(err) {
		return fmt.Errorf("%w: %v", entity.ErrDuplicateID, err)
	}
	return err
}

func isDuplicateKey(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return sqlgraph.IsUniqueConstraintError(err)
}
