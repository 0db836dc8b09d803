package record

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T, dialect Dialect) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(sqlx.NewDb(db, dialect.DriverName()), dialect), mock
}

func TestInsert_BuildsParameterizedStatement(t *testing.T) {
	store, mock := newMockStore(t, SQLite)

	mock.ExpectQuery("INSERT INTO USERS (CASH, DISCORD_ID) VALUES (?, ?) RETURNING ID").
		WithArgs(100, "x'); DROP TABLE USERS; --").
		WillReturnRows(sqlmock.NewRows([]string{"ID"}).AddRow(7))

	id, err := store.Insert(context.Background(), "USERS", Fields{
		"DISCORD_ID": "x'); DROP TABLE USERS; --",
		"CASH":       100,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_RebindsForPostgres(t *testing.T) {
	store, mock := newMockStore(t, Postgres)

	mock.ExpectQuery("INSERT INTO ITEMS (NAME, TYPE) VALUES ($1, $2) RETURNING ID").
		WithArgs("stone", "material").
		WillReturnRows(sqlmock.NewRows([]string{"ID"}).AddRow(3))

	id, err := store.Insert(context.Background(), "ITEMS", Fields{"NAME": "stone", "TYPE": "material"})

	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_IncrementAndConditions(t *testing.T) {
	store, mock := newMockStore(t, SQLite)

	mock.ExpectExec("UPDATE USERS SET CASH = CASH + ?, ENERGY = ? WHERE ID = ? AND CASH >= ?").
		WithArgs(int64(-50), 3, 1, 50).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := store.Update(context.Background(), "USERS",
		Fields{"CASH": Add(-50), "ENERGY": 3},
		Eq("ID", 1), Ge("CASH", 50))

	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_ZeroMatchesIsNotAnError(t *testing.T) {
	store, mock := newMockStore(t, SQLite)

	mock.ExpectExec("UPDATE USERS SET CASH = ? WHERE ID = ?").
		WithArgs(1, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := store.Update(context.Background(), "USERS", Fields{"CASH": 1}, Eq("ID", 99))

	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDelete_WithNullCondition(t *testing.T) {
	store, mock := newMockStore(t, SQLite)

	mock.ExpectExec("DELETE FROM TRADE_LOGS WHERE ITEM_ID IS NULL AND PLACE = ?").
		WithArgs("TRADE").
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := store.Delete(context.Background(), "TRADE_LOGS", IsNull("ITEM_ID"), Eq("PLACE", "TRADE"))

	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestSelect_OrderAndLimit(t *testing.T) {
	store, mock := newMockStore(t, SQLite)

	mock.ExpectQuery("SELECT ID, PRICE FROM MARKET WHERE ITEM_ID = ? ORDER BY PRICE, ID DESC LIMIT ?").
		WithArgs(7, 10).
		WillReturnRows(sqlmock.NewRows([]string{"ID", "PRICE"}).
			AddRow(int64(2), int64(40)).
			AddRow(int64(1), int64(50)))

	rows, err := store.Select(context.Background(), Select{
		Table:   "MARKET",
		Columns: []string{"ID", "PRICE"},
		Where:   []Condition{Eq("ITEM_ID", 7)},
		OrderBy: []Order{{Column: "PRICE"}, {Column: "ID", Desc: true}},
		Limit:   10,
	})

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(2), rows[0].Int64(0))
	assert.Equal(t, int64(50), rows[1].Int64(1))
}

func TestSelectWhere_NoMatchesReturnsEmpty(t *testing.T) {
	store, mock := newMockStore(t, SQLite)

	mock.ExpectQuery("SELECT * FROM USERS WHERE DISCORD_ID = ?").
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"ID"}))

	rows, err := store.SelectWhere(context.Background(), "USERS", []Condition{Eq("DISCORD_ID", "nobody")})

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestValidation_RejectedBeforeSQL(t *testing.T) {
	store, mock := newMockStore(t, SQLite)
	ctx := context.Background()

	tests := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{"bad table", func() error { _, err := store.SelectAll(ctx, "USERS; DROP"); return err }, ErrInvalidIdentifier},
		{"bad column", func() error {
			_, err := store.Insert(ctx, "USERS", Fields{"CASH = 0 --": 1})
			return err
		}, ErrInvalidIdentifier},
		{"bad condition column", func() error {
			_, err := store.SelectWhere(ctx, "USERS", []Condition{Eq("1=1 OR ID", 1)})
			return err
		}, ErrInvalidIdentifier},
		{"bad operator", func() error {
			_, err := store.SelectWhere(ctx, "USERS", []Condition{{Column: "ID", Op: "OR 1=1 --", Value: 1}})
			return err
		}, ErrInvalidOperator},
		{"update without conditions", func() error {
			_, err := store.Update(ctx, "USERS", Fields{"CASH": 0})
			return err
		}, ErrUnboundedWrite},
		{"delete without conditions", func() error { _, err := store.Delete(ctx, "USERS"); return err }, ErrUnboundedWrite},
		{"insert without fields", func() error { _, err := store.Insert(ctx, "USERS", nil); return err }, ErrNoFields},
		{"create without columns", func() error { return store.CreateTable(ctx, "EMPTY", nil) }, ErrNoFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.run(), tt.wantErr)
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassify_Postgres(t *testing.T) {
	tests := []struct {
		name string
		code string
		want error
	}{
		{"unique violation", "23505", ErrConstraintViolation},
		{"not null violation", "23502", ErrConstraintViolation},
		{"serialization failure", "40001", ErrConflict},
		{"deadlock", "40P01", ErrConflict},
		{"undefined table", "42P01", ErrStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockStore(t, Postgres)
			mock.ExpectExec("DELETE FROM USERS WHERE ID = $1").
				WithArgs(1).
				WillReturnError(&pgconn.PgError{Code: tt.code})

			_, err := store.Delete(context.Background(), "USERS", Eq("ID", 1))

			assert.ErrorIs(t, err, tt.want)
			var pgErr *pgconn.PgError
			assert.True(t, errors.As(err, &pgErr), "driver error stays reachable")
		})
	}
}

func TestClassify_PlainErrorIsStorage(t *testing.T) {
	err := SQLite.Classify(errors.New("disk I/O error"))
	assert.ErrorIs(t, err, ErrStorage)
	assert.Nil(t, SQLite.Classify(nil))

	already := Postgres.Classify(&pgconn.PgError{Code: "40001"})
	assert.Same(t, already, Postgres.Classify(already))
}

func TestTx_RollbackAfterFailedWrite(t *testing.T) {
	store, mock := newMockStore(t, SQLite)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE USERS SET CASH = CASH + ? WHERE ID = ?").
		WithArgs(int64(-10), 1).
		WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	tx, err := store.Begin(ctx)
	require.NoError(t, err)

	_, err = tx.Update(ctx, "USERS", Fields{"CASH": Add(-10)}, Eq("ID", 1))
	assert.ErrorIs(t, err, ErrStorage)
	require.NoError(t, tx.Rollback())
	assert.ErrorIs(t, tx.Rollback(), ErrTxDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTx_NestedBeginRejected(t *testing.T) {
	store, mock := newMockStore(t, SQLite)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectRollback()

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	_, err = tx.Begin(ctx)
	assert.Error(t, err)
}

func TestCondition_String(t *testing.T) {
	assert.Equal(t, "CASH >= 5", Ge("CASH", 5).String())
	assert.Equal(t, "ACTED_AT IS NULL", IsNull("ACTED_AT").String())
}
