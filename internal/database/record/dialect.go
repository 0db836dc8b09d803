package record

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Driver names registered with database/sql.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// PostgreSQL SQLSTATE codes and classes
const (
	pgClassIntegrityConstraint = "23"
	pgSerializationFailure     = "40001"
	pgDeadlockDetected         = "40P01"
	pgLockNotAvailable         = "55P03"
)

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
	sqlx.BindDriver(DriverPostgres, sqlx.DOLLAR)
}

// Dialect captures the differences between the supported databases: the
// driver, the primary key column type, transaction options and how driver
// errors map onto the store error kinds.
type Dialect struct {
	name       string
	driverName string
	primaryKey string
	txOptions  *sql.TxOptions
	classify   func(error) error
}

// SQLite is the default, file-backed dialect (modernc.org/sqlite).
var SQLite = Dialect{
	name:       "sqlite",
	driverName: DriverSQLite,
	primaryKey: "INTEGER PRIMARY KEY NOT NULL",
	classify:   classifySQLite,
}

// Postgres runs every transaction at SERIALIZABLE isolation.
var Postgres = Dialect{
	name:       "postgres",
	driverName: DriverPostgres,
	primaryKey: "BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY",
	txOptions:  &sql.TxOptions{Isolation: sql.LevelSerializable},
	classify:   classifyPostgres,
}

// DialectFor returns the dialect registered under name ("sqlite" or "postgres").
func DialectFor(name string) (Dialect, error) {
	switch name {
	case SQLite.name:
		return SQLite, nil
	case Postgres.name:
		return Postgres, nil
	}
	return Dialect{}, fmt.Errorf("unsupported database dialect %q", name)
}

func (d Dialect) Name() string       { return d.name }
func (d Dialect) DriverName() string { return d.driverName }

// PrimaryKey is the column definition for an auto-assigned integer ID.
func (d Dialect) PrimaryKey() string { return d.primaryKey }

// Classify wraps a driver error with the matching store error kind.
func (d Dialect) Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrConstraintViolation) || errors.Is(err, ErrConflict) || errors.Is(err, ErrStorage) {
		return err
	}
	if d.classify == nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return d.classify(err)
}

func classifySQLite(err error) error {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		// Extended result codes carry the primary code in the low byte.
		switch sqliteErr.Code() & 0xff {
		case sqlite3lib.SQLITE_CONSTRAINT:
			return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
		case sqlite3lib.SQLITE_BUSY, sqlite3lib.SQLITE_LOCKED:
			return fmt.Errorf("%w: %w", ErrConflict, err)
		}
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}

func classifyPostgres(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case len(pgErr.Code) >= 2 && pgErr.Code[:2] == pgClassIntegrityConstraint:
			return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
		case pgErr.Code == pgSerializationFailure, pgErr.Code == pgDeadlockDetected, pgErr.Code == pgLockNotAvailable:
			return fmt.Errorf("%w: %w", ErrConflict, err)
		}
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}
