package database

import (
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	sqlite3 "github.com/mattn/go-sqlite3"
)

// StorageError kinds.
const (
	ErrKindConnection = "connection-unavailable"
	ErrKindConstraint = "constraint-violation"
	ErrKindQuery      = "query-failed"
)

// StorageError wraps a driver error with a backend-independent kind.
type StorageError struct {
	Kind string
	Op   string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsConstraintViolation reports whether err is a constraint-violation StorageError.
func IsConstraintViolation(err error) bool {
	var se *StorageError
	return errors.As(err, &se) && se.Kind == ErrKindConstraint
}

// WrapError classifies a driver error into a StorageError. sql.ErrNoRows
// passes through untouched so callers can keep testing for it directly.
func WrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return err
	}

	kind := ErrKindQuery

	var pqErr *pq.Error
	var sqliteErr sqlite3.Error
	var netErr net.Error
	switch {
	case errors.As(err, &pqErr):
		switch pqErr.Code.Class() {
		case "23":
			kind = ErrKindConstraint
		case "08", "57":
			kind = ErrKindConnection
		}
	case errors.As(err, &sqliteErr):
		switch sqliteErr.Code {
		case sqlite3.ErrConstraint:
			kind = ErrKindConstraint
		case sqlite3.ErrCantOpen, sqlite3.ErrBusy, sqlite3.ErrLocked:
			kind = ErrKindConnection
		}
	case errors.As(err, &netErr):
		kind = ErrKindConnection
	}

	return &StorageError{Kind: kind, Op: op, Err: err}
}

// DB wraps the database connection
type DB struct {
	*sqlx.DB
}

// Connect opens the configured backend. A postgres:// URL selects the
// Postgres driver; anything else (including empty, which falls back to
// sqlitePath) is treated as a SQLite file path.
func Connect(databaseURL, sqlitePath string) (*DB, error) {
	driver := "sqlite3"
	dsn := databaseURL
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		driver = "postgres"
	} else if dsn == "" {
		dsn = sqlitePath
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, WrapError("connect", err)
	}

	// Configure connection pool. SQLite gets a single connection so
	// writes serialize in-process instead of hitting SQLITE_BUSY.
	if driver == "postgres" {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
	} else {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, WrapError("ping", err)
	}

	return &DB{db}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
