package dbtest

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osse101/NemoBot_Go/internal/database/record"
	"github.com/osse101/NemoBot_Go/internal/database/schema"
)

// SeedUser inserts a user with the given cash and returns its ID.
func SeedUser(t testing.TB, store *record.Store, cash int64) int64 {
	t.Helper()
	id, err := store.Insert(context.Background(), schema.TableUsers, record.Fields{
		schema.ColDiscordID: fmt.Sprintf("discord-%d", cash),
		schema.ColJobID:     0,
		schema.ColCash:      cash,
		schema.ColEnergy:    0,
	})
	require.NoError(t, err)
	return id
}

// SeedItem inserts an item definition and returns its ID.
func SeedItem(t testing.TB, store *record.Store, name string) int64 {
	t.Helper()
	id, err := store.Insert(context.Background(), schema.TableItems, record.Fields{
		schema.ColName: name,
		schema.ColType: "material",
	})
	require.NoError(t, err)
	return id
}

// SeedInventory gives userID amount of itemID.
func SeedInventory(t testing.TB, store *record.Store, userID, itemID, amount int64) {
	t.Helper()
	_, err := store.Insert(context.Background(), schema.TableInventory, record.Fields{
		schema.ColUserID: userID,
		schema.ColItemID: itemID,
		schema.ColAmount: amount,
	})
	require.NoError(t, err)
}

// SetCash overwrites a user's cash balance.
func SetCash(t testing.TB, store *record.Store, userID, cash int64) {
	t.Helper()
	n, err := store.Update(context.Background(), schema.TableUsers,
		record.Fields{schema.ColCash: cash}, record.Eq(schema.ColID, userID))
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}

// Count returns the number of rows in table.
func Count(t testing.TB, store *record.Store, table string) int {
	t.Helper()
	rows, err := store.SelectAll(context.Background(), table, schema.ColID)
	require.NoError(t, err)
	return len(rows)
}
