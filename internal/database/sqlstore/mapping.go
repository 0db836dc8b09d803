package sqlstore

import (
	"github.com/osse101/NemoBot_Go/internal/database/record"
	s "github.com/osse101/NemoBot_Go/internal/database/schema"
	"github.com/osse101/NemoBot_Go/internal/domain"
)

// Column lists in the order the map functions read them.
var (
	userColumns      = []string{s.ColID, s.ColDiscordID, s.ColJobID, s.ColCash, s.ColEnergy, s.ColHouseChannelID, s.ColTellThreadID, s.ColActedAt}
	inventoryColumns = []string{s.ColID, s.ColUserID, s.ColItemID, s.ColAmount}
	listingColumns   = []string{s.ColID, s.ColSellerID, s.ColItemID, s.ColAmount, s.ColPrice, s.ColListedAt}
	tradeLogColumns  = []string{s.ColID, s.ColProviderID, s.ColRecipientID, s.ColItemID, s.ColAmount, s.ColCashAmount, s.ColPlace, s.ColTradedAt}
)

func mapUser(row record.Row) domain.User {
	return domain.User{
		ID:             row.Int64(0),
		DiscordID:      row.String(1),
		JobID:          row.Int64(2),
		Cash:           row.Int64(3),
		Energy:         row.Int64(4),
		HouseChannelID: row.NullInt64(5),
		TellThreadID:   row.NullInt64(6),
		ActedAt:        row.NullString(7),
	}
}

func mapInventoryEntry(row record.Row) domain.InventoryEntry {
	return domain.InventoryEntry{
		ID:     row.Int64(0),
		UserID: row.Int64(1),
		ItemID: row.Int64(2),
		Amount: row.Int64(3),
	}
}

func mapListing(row record.Row) domain.MarketListing {
	return domain.MarketListing{
		ID:       row.Int64(0),
		SellerID: row.Int64(1),
		ItemID:   row.Int64(2),
		Amount:   row.Int64(3),
		Price:    row.Int64(4),
		ListedAt: row.String(5),
	}
}

func mapTradeLog(row record.Row) domain.TradeLog {
	return domain.TradeLog{
		ID:          row.Int64(0),
		ProviderID:  row.Int64(1),
		RecipientID: row.Int64(2),
		ItemID:      row.NullInt64(3),
		Amount:      row.NullInt64(4),
		CashAmount:  row.NullInt64(5),
		Place:       row.String(6),
		TradedAt:    row.String(7),
	}
}
