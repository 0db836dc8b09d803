package database

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/osse101/NemoBot_Go/internal/database/record"
)

// Pool interface for database connection pool operations
type Pool interface {
	PingContext(ctx context.Context) error
	Close() error
}

// Options selects and tunes the backing database.
type Options struct {
	Driver string // "sqlite" or "postgres"
	// Path is the SQLite database file.
	Path string
	// DSN is the PostgreSQL connection string.
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

// Open opens and pings the configured database and returns it wrapped in a
// record store.
func Open(ctx context.Context, opts Options) (*record.Store, error) {
	dialect, err := record.DialectFor(opts.Driver)
	if err != nil {
		return nil, err
	}

	var dsn string
	switch dialect.Name() {
	case record.SQLite.Name():
		dsn, err = sqliteDSN(opts.Path)
		if err != nil {
			return nil, err
		}
	default:
		dsn = opts.DSN
	}

	db, err := sqlx.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToOpenDatabase, err)
	}

	maxConns := opts.MaxOpenConns
	if maxConns <= 0 {
		maxConns = DefaultMaxOpenConnections
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(max(opts.MaxIdleConns, DefaultMinConnections))
	db.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, DefaultPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPingDatabase, err)
	}

	slog.Default().Info(LogMsgSuccessfullyConnectedToDatabase, "driver", dialect.Name())
	return record.New(db, dialect), nil
}

// sqliteDSN builds a modernc.org/sqlite DSN. Writes take the database lock at
// BEGIN so a transaction never fails half way on lock upgrade.
func sqliteDSN(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("%s", ErrMsgSQLitePathRequired)
	}
	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("%s: %w", ErrMsgFailedToCreateDataDir, err)
		}
	}
	return cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_txlock=immediate", nil
}
