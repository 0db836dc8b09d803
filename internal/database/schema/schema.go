// Package schema defines and provisions the ledger's relational schema.
//
// Table and column names are the compatibility surface with databases created
// by earlier versions of the bot and must not be renamed.
package schema

import (
	"context"
	"fmt"

	"github.com/osse101/NemoBot_Go/internal/database/record"
)

// Table names
const (
	TableUsers       = "USERS"
	TableItems       = "ITEMS"
	TableItemRecipes = "ITEM_RECIPES"
	TableItemEnergy  = "ITEM_ENERGY"
	TableInventory   = "INVENTORY"
	TableMarket      = "MARKET"
	TableJobs        = "JOBS"
	TableTradeLogs   = "TRADE_LOGS"
)

// Column names
const (
	ColID             = record.IDColumn
	ColDiscordID      = "DISCORD_ID"
	ColJobID          = "JOB_ID"
	ColCash           = "CASH"
	ColEnergy         = "ENERGY"
	ColHouseChannelID = "HOUSE_CHANNEL_ID"
	ColTellThreadID   = "TELL_THREAD_ID"
	ColActedAt        = "ACTED_AT"
	ColName           = "NAME"
	ColDescription    = "DESCRIPTION"
	ColType           = "TYPE"
	ColItemID         = "ITEM_ID"
	ColRecipe         = "RECIPE"
	ColUserID         = "USER_ID"
	ColAmount         = "AMOUNT"
	ColSellerID       = "SELLER_ID"
	ColPrice          = "PRICE"
	ColListedAt       = "LISTED_AT"
	ColToolID         = "TOOL_ID"
	ColProductID      = "PRODUCT_ID"
	ColProviderID     = "PROVIDER_ID"
	ColRecipientID    = "RECIPIENT_ID"
	ColCashAmount     = "CASH_AMOUNT"
	ColPlace          = "PLACE"
	ColTradedAt       = "TRADED_AT"
)

// Column types
const (
	typeIntegerNotNull = "INTEGER NOT NULL"
	typeInteger        = "INTEGER"
	typeTextNotNull    = "TEXT NOT NULL"
	typeText           = "TEXT"
)

// Table is a named, ordered column list.
type Table struct {
	Name    string
	Columns []record.Column
}

// Tables returns the eight ledger tables in creation order with the primary
// key rendered for dialect.
func Tables(dialect record.Dialect) []Table {
	id := record.Column{Name: ColID, Definition: dialect.PrimaryKey()}
	return []Table{
		{Name: TableUsers, Columns: []record.Column{
			id,
			{Name: ColDiscordID, Definition: typeTextNotNull},
			{Name: ColJobID, Definition: typeIntegerNotNull},
			{Name: ColCash, Definition: typeIntegerNotNull},
			{Name: ColEnergy, Definition: typeIntegerNotNull},
			{Name: ColHouseChannelID, Definition: typeInteger},
			{Name: ColTellThreadID, Definition: typeInteger},
			{Name: ColActedAt, Definition: typeText},
		}},
		{Name: TableItems, Columns: []record.Column{
			id,
			{Name: ColName, Definition: typeTextNotNull},
			{Name: ColDescription, Definition: typeText},
			{Name: ColType, Definition: typeTextNotNull},
		}},
		{Name: TableItemRecipes, Columns: []record.Column{
			id,
			{Name: ColItemID, Definition: typeIntegerNotNull},
			{Name: ColRecipe, Definition: typeTextNotNull},
		}},
		{Name: TableItemEnergy, Columns: []record.Column{
			id,
			{Name: ColItemID, Definition: typeIntegerNotNull},
			{Name: ColEnergy, Definition: typeIntegerNotNull},
		}},
		{Name: TableInventory, Columns: []record.Column{
			id,
			{Name: ColUserID, Definition: typeIntegerNotNull},
			{Name: ColItemID, Definition: typeIntegerNotNull},
			{Name: ColAmount, Definition: typeIntegerNotNull},
		}},
		{Name: TableMarket, Columns: []record.Column{
			id,
			{Name: ColSellerID, Definition: typeIntegerNotNull},
			{Name: ColItemID, Definition: typeIntegerNotNull},
			{Name: ColAmount, Definition: typeIntegerNotNull},
			{Name: ColPrice, Definition: typeIntegerNotNull},
			{Name: ColListedAt, Definition: typeTextNotNull},
		}},
		{Name: TableJobs, Columns: []record.Column{
			id,
			{Name: ColName, Definition: typeTextNotNull},
			{Name: ColToolID, Definition: typeInteger},
			{Name: ColProductID, Definition: typeIntegerNotNull},
		}},
		{Name: TableTradeLogs, Columns: []record.Column{
			id,
			{Name: ColProviderID, Definition: typeIntegerNotNull},
			{Name: ColRecipientID, Definition: typeIntegerNotNull},
			{Name: ColItemID, Definition: typeInteger},
			{Name: ColAmount, Definition: typeInteger},
			{Name: ColCashAmount, Definition: typeInteger},
			{Name: ColPlace, Definition: typeTextNotNull},
			{Name: ColTradedAt, Definition: typeTextNotNull},
		}},
	}
}

// indexes are created after the tables. The inventory index backs the one
// entry per (user, item) rule.
var indexes = []string{
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_inventory_user_item ON INVENTORY (USER_ID, ITEM_ID)",
	"CREATE INDEX IF NOT EXISTS idx_market_seller ON MARKET (SELLER_ID)",
	"CREATE INDEX IF NOT EXISTS idx_market_item ON MARKET (ITEM_ID)",
	"CREATE INDEX IF NOT EXISTS idx_trade_logs_provider ON TRADE_LOGS (PROVIDER_ID)",
	"CREATE INDEX IF NOT EXISTS idx_trade_logs_recipient ON TRADE_LOGS (RECIPIENT_ID)",
}

// Manager provisions and tears down the schema.
type Manager struct {
	store *record.Store
}

// NewManager creates a schema manager over store.
func NewManager(store *record.Store) *Manager {
	return &Manager{store: store}
}

// Initialize creates every table and index that does not exist yet. It is
// safe to call on an initialized database and never drops or alters data.
func (m *Manager) Initialize(ctx context.Context) error {
	for _, t := range Tables(m.store.Dialect()) {
		if err := m.store.CreateTable(ctx, t.Name, t.Columns); err != nil {
			return fmt.Errorf("%s %s: %w", ErrMsgFailedToCreateTable, t.Name, err)
		}
	}
	for _, stmt := range indexes {
		if _, err := m.store.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToCreateIndex, err)
		}
	}
	return nil
}

// Drop removes one ledger table. Names outside the schema are rejected.
func (m *Manager) Drop(ctx context.Context, table string) error {
	if !IsTable(table) {
		return fmt.Errorf("%s: %q", ErrMsgUnknownTable, table)
	}
	if err := m.store.DropTable(ctx, table); err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgFailedToDropTable, table, err)
	}
	return nil
}

// DropAll removes every ledger table in reverse creation order.
func (m *Manager) DropAll(ctx context.Context) error {
	tables := Tables(m.store.Dialect())
	for i := len(tables) - 1; i >= 0; i-- {
		if err := m.Drop(ctx, tables[i].Name); err != nil {
			return err
		}
	}
	return nil
}

// IsTable reports whether name is one of the ledger tables.
func IsTable(name string) bool {
	switch name {
	case TableUsers, TableItems, TableItemRecipes, TableItemEnergy,
		TableInventory, TableMarket, TableJobs, TableTradeLogs:
		return true
	}
	return false
}
