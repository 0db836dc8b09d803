package record

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLiteStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "record.db")
	db, err := sqlx.Open(DriverSQLite, "file:"+path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := New(db, SQLite)
	require.NoError(t, store.CreateTable(context.Background(), "WALLETS", []Column{
		{Name: IDColumn, Definition: SQLite.PrimaryKey()},
		{Name: "OWNER", Definition: "TEXT NOT NULL"},
		{Name: "BALANCE", Definition: "INTEGER NOT NULL"},
		{Name: "NOTE", Definition: "TEXT"},
	}))
	_, err = store.Exec(context.Background(), "CREATE UNIQUE INDEX IF NOT EXISTS idx_wallets_owner ON WALLETS (OWNER)")
	require.NoError(t, err)
	return store
}

func TestSQLite_InsertAssignsIncreasingIDs(t *testing.T) {
	store := openSQLiteStore(t)
	ctx := context.Background()

	first, err := store.Insert(ctx, "WALLETS", Fields{"OWNER": "a", "BALANCE": 10})
	require.NoError(t, err)
	second, err := store.Insert(ctx, "WALLETS", Fields{"OWNER": "b", "BALANCE": 20})
	require.NoError(t, err)
	assert.Greater(t, second, first)

	rows, err := store.SelectWhere(ctx, "WALLETS", []Condition{Eq(IDColumn, second)}, "OWNER", "BALANCE", "NOTE")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "b", rows[0].String(0))
	assert.Equal(t, int64(20), rows[0].Int64(1))
	assert.Nil(t, rows[0].NullString(2))
}

func TestSQLite_ValuesAreNeverInterpolated(t *testing.T) {
	store := openSQLiteStore(t)
	ctx := context.Background()
	hostile := "x'); DROP TABLE WALLETS; --"

	_, err := store.Insert(ctx, "WALLETS", Fields{"OWNER": hostile, "BALANCE": 1})
	require.NoError(t, err)

	rows, err := store.SelectWhere(ctx, "WALLETS", []Condition{Eq("OWNER", hostile)})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	all, err := store.SelectAll(ctx, "WALLETS")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSQLite_ConstraintViolations(t *testing.T) {
	store := openSQLiteStore(t)
	ctx := context.Background()

	_, err := store.Insert(ctx, "WALLETS", Fields{"OWNER": "a", "BALANCE": 1})
	require.NoError(t, err)

	_, err = store.Insert(ctx, "WALLETS", Fields{"OWNER": "a", "BALANCE": 2})
	assert.ErrorIs(t, err, ErrConstraintViolation)

	_, err = store.Insert(ctx, "WALLETS", Fields{"OWNER": "c"})
	assert.ErrorIs(t, err, ErrConstraintViolation)

	_, err = store.SelectAll(ctx, "MISSING_TABLE")
	assert.ErrorIs(t, err, ErrStorage)
}

func TestSQLite_IncrementAndDelete(t *testing.T) {
	store := openSQLiteStore(t)
	ctx := context.Background()

	id, err := store.Insert(ctx, "WALLETS", Fields{"OWNER": "a", "BALANCE": 100})
	require.NoError(t, err)

	n, err := store.Update(ctx, "WALLETS", Fields{"BALANCE": Add(-30)}, Eq(IDColumn, id))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	rows, err := store.SelectWhere(ctx, "WALLETS", []Condition{Eq(IDColumn, id)}, "BALANCE")
	require.NoError(t, err)
	assert.Equal(t, int64(70), rows[0].Int64(0))

	n, err = store.Delete(ctx, "WALLETS", Eq("OWNER", "nobody"))
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = store.Delete(ctx, "WALLETS", Eq(IDColumn, id))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSQLite_TxRollbackDiscardsWrites(t *testing.T) {
	store := openSQLiteStore(t)
	ctx := context.Background()

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	_, err = tx.Insert(ctx, "WALLETS", Fields{"OWNER": "a", "BALANCE": 1})
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	rows, err := store.SelectAll(ctx, "WALLETS")
	require.NoError(t, err)
	assert.Empty(t, rows)

	tx, err = store.Begin(ctx)
	require.NoError(t, err)
	_, err = tx.Insert(ctx, "WALLETS", Fields{"OWNER": "b", "BALANCE": 2})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	assert.ErrorIs(t, tx.Commit(), ErrTxDone)

	rows, err = store.SelectAll(ctx, "WALLETS")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestSQLite_ConcurrentIncrementsAreSerialized(t *testing.T) {
	store := openSQLiteStore(t)
	ctx := context.Background()

	id, err := store.Insert(ctx, "WALLETS", Fields{"OWNER": "a", "BALANCE": 0})
	require.NoError(t, err)

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tx, err := store.Begin(ctx)
			if err != nil {
				errs <- err
				return
			}
			if _, err := tx.Update(ctx, "WALLETS", Fields{"BALANCE": Add(1)}, Eq(IDColumn, id)); err != nil {
				_ = tx.Rollback()
				errs <- err
				return
			}
			errs <- tx.Commit()
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	rows, err := store.SelectWhere(ctx, "WALLETS", []Condition{Eq(IDColumn, id)}, "BALANCE")
	require.NoError(t, err)
	assert.Equal(t, int64(workers), rows[0].Int64(0))
}

func TestSQLite_DropTable(t *testing.T) {
	store := openSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.DropTable(ctx, "WALLETS"))
	require.NoError(t, store.DropTable(ctx, "WALLETS"))

	_, err := store.SelectAll(ctx, "WALLETS")
	assert.ErrorIs(t, err, ErrStorage)
}
