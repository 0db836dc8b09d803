package handler

import (
	"net/http"

	"github.com/osse101/NemoBot_Go/internal/database/record"
	"github.com/osse101/NemoBot_Go/internal/database/schema"
	"github.com/osse101/NemoBot_Go/internal/domain"
	"github.com/osse101/NemoBot_Go/internal/market"
	"github.com/osse101/NemoBot_Go/internal/metrics"
)

// CheckLogResponse reports the newest matching trade time. LatestTradedAt is
// empty when nothing matched.
type CheckLogResponse struct {
	LatestTradedAt string `json:"latest_traded_at"`
	Found          bool   `json:"found"`
}

// TradeHistoryResponse wraps matching trade logs, newest first
type TradeHistoryResponse struct {
	Trades []domain.TradeLog `json:"trades"`
}

// RecordTradeRequest describes a transfer settled outside the market
type RecordTradeRequest struct {
	ProviderID  int64  `json:"provider_id" validate:"required,gt=0"`
	RecipientID int64  `json:"recipient_id" validate:"required,gt=0"`
	ItemID      *int64 `json:"item_id" validate:"omitempty,gt=0"`
	Amount      *int64 `json:"amount" validate:"omitempty,gt=0"`
	CashAmount  *int64 `json:"cash_amount" validate:"omitempty,gte=0"`
	Place       string `json:"place" validate:"required,place"`
	TradedAt    string `json:"traded_at,omitempty" validate:"omitempty,timestamp"`
}

// RecordTradeResponse carries the new trade log's ID
type RecordTradeResponse struct {
	Message    string            `json:"message"`
	Code       market.ResultCode `json:"code"`
	Result     string            `json:"result"`
	TradeLogID int64             `json:"trade_log_id"`
}

// parseLogQuery reads provider_id, recipient_id, item_id, place and since.
func parseLogQuery(w http.ResponseWriter, r *http.Request) (domain.LogQuery, bool) {
	var q domain.LogQuery
	var ok bool
	if q.ProviderID, ok = GetOptionalInt64Query(r, w, "provider_id"); !ok {
		return q, false
	}
	if q.RecipientID, ok = GetOptionalInt64Query(r, w, "recipient_id"); !ok {
		return q, false
	}
	if q.ItemID, ok = GetOptionalInt64Query(r, w, "item_id"); !ok {
		return q, false
	}
	q.Place = GetOptionalQueryParam(r, "place", "")
	if q.Place != "" && !ValidPlaces[q.Place] {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidPlace)
		return q, false
	}
	if since := GetOptionalQueryParam(r, "since", ""); since != "" {
		q.Conditions = append(q.Conditions, record.Ge(schema.ColTradedAt, since))
	}
	return q, true
}

// HandleCheckLog handles GET /market/trades/latest
func (h *MarketHandler) HandleCheckLog(w http.ResponseWriter, r *http.Request) {
	q, ok := parseLogQuery(w, r)
	if !ok {
		return
	}

	latest, err := h.service.CheckLog(r.Context(), q)
	if err != nil {
		respondServiceError(w, r, OpCheckLog, err)
		return
	}

	respondJSON(w, http.StatusOK, CheckLogResponse{LatestTradedAt: latest, Found: latest != ""})
}

// HandleTradeHistory handles GET /market/trades
func (h *MarketHandler) HandleTradeHistory(w http.ResponseWriter, r *http.Request) {
	q, ok := parseLogQuery(w, r)
	if !ok {
		return
	}
	limit, ok := getLimit(r, w)
	if !ok {
		return
	}

	trades, err := h.service.TradeHistory(r.Context(), q, limit)
	if err != nil {
		respondServiceError(w, r, OpTradeHistory, err)
		return
	}

	respondJSON(w, http.StatusOK, TradeHistoryResponse{Trades: trades})
}

// HandleRecordTrade handles POST /market/trades
func (h *MarketHandler) HandleRecordTrade(w http.ResponseWriter, r *http.Request) {
	var req RecordTradeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Record trade"); err != nil {
		return
	}

	id, err := h.service.RecordTrade(r.Context(), domain.TradeLog{
		ProviderID:  req.ProviderID,
		RecipientID: req.RecipientID,
		ItemID:      req.ItemID,
		Amount:      req.Amount,
		CashAmount:  req.CashAmount,
		Place:       req.Place,
		TradedAt:    req.TradedAt,
	})
	if err != nil {
		respondServiceError(w, r, OpRecordTrade, err)
		return
	}

	metrics.RecordResult(OpRecordTrade, market.Success.String())
	respondJSON(w, http.StatusCreated, RecordTradeResponse{
		Message:    MsgTradeRecordedSuccess,
		Code:       market.Success,
		Result:     market.Success.String(),
		TradeLogID: id,
	})
}
