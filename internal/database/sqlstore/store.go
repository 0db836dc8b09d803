// Package sqlstore implements the ledger repositories on top of the record
// store.
package sqlstore

import (
	"context"
	"fmt"

	"github.com/osse101/NemoBot_Go/internal/database/record"
	s "github.com/osse101/NemoBot_Go/internal/database/schema"
	"github.com/osse101/NemoBot_Go/internal/domain"
	"github.com/osse101/NemoBot_Go/internal/repository"
)

// MarketRepository implements repository.Market
type MarketRepository struct {
	store *record.Store
}

// NewMarketRepository creates a new MarketRepository
func NewMarketRepository(store *record.Store) *MarketRepository {
	return &MarketRepository{store: store}
}

// MarketTx implements repository.MarketTx
type MarketTx struct {
	tx *record.Tx
}

// BeginTx starts a new transaction
func (r *MarketRepository) BeginTx(ctx context.Context) (repository.MarketTx, error) {
	tx, err := r.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTx, err)
	}
	return &MarketTx{tx: tx}, nil
}

// Commit commits the transaction
func (t *MarketTx) Commit(ctx context.Context) error {
	return t.tx.Commit()
}

// Rollback rolls back the transaction
func (t *MarketTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback()
}

// GetUser retrieves a user by ID
func (r *MarketRepository) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	return getUser(ctx, r.store, userID)
}

// GetListing retrieves a listing by ID
func (r *MarketRepository) GetListing(ctx context.Context, listingID int64) (*domain.MarketListing, error) {
	return getListing(ctx, r.store, listingID)
}

// ListListings returns listings matching filter, newest first
func (r *MarketRepository) ListListings(ctx context.Context, filter domain.ListingFilter) ([]domain.MarketListing, error) {
	var conds []record.Condition
	if filter.SellerID != 0 {
		conds = append(conds, record.Eq(s.ColSellerID, filter.SellerID))
	}
	if filter.ItemID != 0 {
		conds = append(conds, record.Eq(s.ColItemID, filter.ItemID))
	}
	rows, err := r.store.Select(ctx, record.Select{
		Table:   s.TableMarket,
		Columns: listingColumns,
		Where:   conds,
		OrderBy: []record.Order{{Column: s.ColListedAt, Desc: true}, {Column: s.ColID, Desc: true}},
		Limit:   domain.ClampLimit(filter.Limit),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetListing, err)
	}
	listings := make([]domain.MarketListing, 0, len(rows))
	for _, row := range rows {
		listings = append(listings, mapListing(row))
	}
	return listings, nil
}

// LatestTradeTime returns the greatest TRADED_AT matching query, or "" when
// nothing matches.
func (r *MarketRepository) LatestTradeTime(ctx context.Context, query domain.LogQuery) (string, error) {
	rows, err := r.store.Select(ctx, record.Select{
		Table:   s.TableTradeLogs,
		Columns: []string{s.ColTradedAt},
		Where:   logConditions(query),
		OrderBy: []record.Order{{Column: s.ColTradedAt, Desc: true}},
		Limit:   1,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrMsgFailedToQueryTradeLogs, err)
	}
	if len(rows) == 0 {
		return "", nil
	}
	return rows[0].String(0), nil
}

// ListTradeLogs returns trade logs matching query, most recent first
func (r *MarketRepository) ListTradeLogs(ctx context.Context, query domain.LogQuery, limit int) ([]domain.TradeLog, error) {
	rows, err := r.store.Select(ctx, record.Select{
		Table:   s.TableTradeLogs,
		Columns: tradeLogColumns,
		Where:   logConditions(query),
		OrderBy: []record.Order{{Column: s.ColTradedAt, Desc: true}, {Column: s.ColID, Desc: true}},
		Limit:   domain.ClampLimit(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryTradeLogs, err)
	}
	logs := make([]domain.TradeLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, mapTradeLog(row))
	}
	return logs, nil
}

// GetUser for Tx
func (t *MarketTx) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	return getUser(ctx, t.tx.Store, userID)
}

// GetListing for Tx
func (t *MarketTx) GetListing(ctx context.Context, listingID int64) (*domain.MarketListing, error) {
	return getListing(ctx, t.tx.Store, listingID)
}

// ItemExists reports whether an ITEMS row with itemID exists
func (t *MarketTx) ItemExists(ctx context.Context, itemID int64) (bool, error) {
	rows, err := t.tx.SelectWhere(ctx, s.TableItems,
		[]record.Condition{record.Eq(s.ColID, itemID)}, s.ColID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToGetItem, err)
	}
	return len(rows) > 0, nil
}

// GetInventory returns every inventory entry of a user
func (t *MarketTx) GetInventory(ctx context.Context, userID int64) ([]domain.InventoryEntry, error) {
	rows, err := t.tx.SelectWhere(ctx, s.TableInventory,
		[]record.Condition{record.Eq(s.ColUserID, userID)}, inventoryColumns...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetInventory, err)
	}
	entries := make([]domain.InventoryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, mapInventoryEntry(row))
	}
	return entries, nil
}

// GetInventoryEntry returns the user's entry for an item, or nil
func (t *MarketTx) GetInventoryEntry(ctx context.Context, userID, itemID int64) (*domain.InventoryEntry, error) {
	rows, err := t.tx.SelectWhere(ctx, s.TableInventory, []record.Condition{
		record.Eq(s.ColUserID, userID),
		record.Eq(s.ColItemID, itemID),
	}, inventoryColumns...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetInventory, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	entry := mapInventoryEntry(rows[0])
	return &entry, nil
}

// AdjustCash adds delta to a user's cash balance
func (t *MarketTx) AdjustCash(ctx context.Context, userID, delta int64) error {
	n, err := t.tx.Update(ctx, s.TableUsers,
		record.Fields{s.ColCash: record.Add(delta)},
		record.Eq(s.ColID, userID))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateCash, err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// AdjustInventory adds delta to a user's item amount
func (t *MarketTx) AdjustInventory(ctx context.Context, userID, itemID, delta int64) error {
	entry, err := t.GetInventoryEntry(ctx, userID, itemID)
	if err != nil {
		return err
	}

	if entry == nil {
		if delta <= 0 {
			return nil
		}
		if _, err := t.tx.Insert(ctx, s.TableInventory, record.Fields{
			s.ColUserID: userID,
			s.ColItemID: itemID,
			s.ColAmount: delta,
		}); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateInventory, err)
		}
		return nil
	}

	if entry.Amount+delta <= 0 {
		_, err = t.tx.Delete(ctx, s.TableInventory, record.Eq(s.ColID, entry.ID))
	} else {
		_, err = t.tx.Update(ctx, s.TableInventory,
			record.Fields{s.ColAmount: record.Add(delta)},
			record.Eq(s.ColID, entry.ID))
	}
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateInventory, err)
	}
	return nil
}

// InsertListing stores a new listing and returns its ID
func (t *MarketTx) InsertListing(ctx context.Context, listing domain.MarketListing) (int64, error) {
	id, err := t.tx.Insert(ctx, s.TableMarket, record.Fields{
		s.ColSellerID: listing.SellerID,
		s.ColItemID:   listing.ItemID,
		s.ColAmount:   listing.Amount,
		s.ColPrice:    listing.Price,
		s.ColListedAt: listing.ListedAt,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToInsertListing, err)
	}
	return id, nil
}

// DeleteListing removes a listing
func (t *MarketTx) DeleteListing(ctx context.Context, listingID int64) (bool, error) {
	n, err := t.tx.Delete(ctx, s.TableMarket, record.Eq(s.ColID, listingID))
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToDeleteListing, err)
	}
	return n == 1, nil
}

// InsertTradeLog appends a trade log
func (t *MarketTx) InsertTradeLog(ctx context.Context, log domain.TradeLog) (int64, error) {
	fields := record.Fields{
		s.ColProviderID:  log.ProviderID,
		s.ColRecipientID: log.RecipientID,
		s.ColPlace:       log.Place,
		s.ColTradedAt:    log.TradedAt,
	}
	// Unset optional values are written as NULL.
	fields[s.ColItemID] = nullable(log.ItemID)
	fields[s.ColAmount] = nullable(log.Amount)
	fields[s.ColCashAmount] = nullable(log.CashAmount)

	id, err := t.tx.Insert(ctx, s.TableTradeLogs, fields)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToInsertTradeLog, err)
	}
	return id, nil
}

func getUser(ctx context.Context, store *record.Store, userID int64) (*domain.User, error) {
	rows, err := store.SelectWhere(ctx, s.TableUsers,
		[]record.Condition{record.Eq(s.ColID, userID)}, userColumns...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetUser, err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrUserNotFound
	}
	user := mapUser(rows[0])
	return &user, nil
}

func getListing(ctx context.Context, store *record.Store, listingID int64) (*domain.MarketListing, error) {
	rows, err := store.SelectWhere(ctx, s.TableMarket,
		[]record.Condition{record.Eq(s.ColID, listingID)}, listingColumns...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetListing, err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrListingNotFound
	}
	listing := mapListing(rows[0])
	return &listing, nil
}

func logConditions(q domain.LogQuery) []record.Condition {
	conds := make([]record.Condition, 0, 4+len(q.Conditions))
	if q.ProviderID != 0 {
		conds = append(conds, record.Eq(s.ColProviderID, q.ProviderID))
	}
	if q.RecipientID != 0 {
		conds = append(conds, record.Eq(s.ColRecipientID, q.RecipientID))
	}
	if q.ItemID != 0 {
		conds = append(conds, record.Eq(s.ColItemID, q.ItemID))
	}
	if q.Place != "" {
		conds = append(conds, record.Eq(s.ColPlace, q.Place))
	}
	return append(conds, q.Conditions...)
}

func nullable(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}
