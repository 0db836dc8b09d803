package market

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/NemoBot_Go/internal/domain"
	"github.com/osse101/NemoBot_Go/internal/event"
	"github.com/osse101/NemoBot_Go/internal/logger"
	"github.com/osse101/NemoBot_Go/internal/repository"
)

// CheckLog returns the most recent TRADED_AT among trade logs matching query,
// or "" when none match.
func (s *service) CheckLog(ctx context.Context, query domain.LogQuery) (string, error) {
	latest, err := s.repo.LatestTradeTime(ctx, query)
	if err != nil {
		return "", fmt.Errorf(ErrMsgQueryTradeLogsFailed, err)
	}
	return latest, nil
}

// TradeHistory returns matching trade logs, most recent first.
func (s *service) TradeHistory(ctx context.Context, query domain.LogQuery, limit int) ([]domain.TradeLog, error) {
	logs, err := s.repo.ListTradeLogs(ctx, query, domain.ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf(ErrMsgQueryTradeLogsFailed, err)
	}
	return logs, nil
}

// RecordTrade appends a trade log for a transfer settled elsewhere (a direct
// trade between players, gathering). It does not move balances.
func (s *service) RecordTrade(ctx context.Context, entry domain.TradeLog) (int64, error) {
	if err := validateTradeLog(entry); err != nil {
		return 0, err
	}
	if entry.TradedAt == "" {
		entry.TradedAt = s.timestamp()
	}

	err := s.inTx(ctx, func(tx repository.MarketTx) error {
		for _, id := range []int64{entry.ProviderID, entry.RecipientID} {
			if _, err := tx.GetUser(ctx, id); err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return fmt.Errorf("%w: %d", domain.ErrUserNotFound, id)
				}
				return fmt.Errorf(ErrMsgGetUserFailed, err)
			}
		}
		if entry.ItemID != nil {
			exists, err := tx.ItemExists(ctx, *entry.ItemID)
			if err != nil {
				return fmt.Errorf(ErrMsgGetItemFailed, err)
			}
			if !exists {
				return fmt.Errorf("%w: %d", domain.ErrItemNotFound, *entry.ItemID)
			}
		}

		id, err := tx.InsertTradeLog(ctx, entry)
		if err != nil {
			return fmt.Errorf(ErrMsgInsertTradeLogFailed, err)
		}
		entry.ID = id
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.publish(ctx, event.NewTradeRecordedEvent(entry))
	logger.FromContext(ctx).Info(LogMsgTradeRecorded, "trade_log_id", entry.ID, "place", entry.Place)
	return entry.ID, nil
}
