package record

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
)

// Tx is a Store bound to one database transaction. It holds the store's
// writer lock from Begin until Commit or Rollback, so transactions never
// interleave inside one process.
type Tx struct {
	*Store
	tx      *sqlx.Tx
	release sync.Once
}

// Begin starts a transaction with the dialect's isolation settings.
func (s *Store) Begin(ctx context.Context) (*Tx, error) {
	if s.inTx {
		return nil, errors.New("nested transactions are not supported")
	}
	s.mu.Lock()
	tx, err := s.db.BeginTxx(ctx, s.dialect.txOptions)
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("begin transaction: %w", s.dialect.Classify(err))
	}
	bound := &Store{
		db:      s.db,
		q:       tx,
		dialect: s.dialect,
		bind:    s.bind,
		mu:      s.mu,
		inTx:    true,
	}
	return &Tx{Store: bound, tx: tx}, nil
}

// Commit commits the transaction and releases the writer lock.
func (t *Tx) Commit() error {
	defer t.unlock()
	if err := t.tx.Commit(); err != nil {
		if errors.Is(err, sql.ErrTxDone) {
			return ErrTxDone
		}
		return fmt.Errorf("commit transaction: %w", t.dialect.Classify(err))
	}
	return nil
}

// Rollback aborts the transaction and releases the writer lock. After a
// successful Commit it returns ErrTxDone.
func (t *Tx) Rollback() error {
	defer t.unlock()
	if err := t.tx.Rollback(); err != nil {
		if errors.Is(err, sql.ErrTxDone) {
			return ErrTxDone
		}
		return fmt.Errorf("rollback transaction: %w", t.dialect.Classify(err))
	}
	return nil
}

func (t *Tx) unlock() {
	t.release.Do(t.mu.Unlock)
}
