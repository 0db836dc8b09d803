package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/NemoBot_Go/internal/database/record"
	"github.com/osse101/NemoBot_Go/internal/domain"
	"github.com/osse101/NemoBot_Go/internal/market"
	"github.com/osse101/NemoBot_Go/mocks"
)

func newMarketRouter(svc market.Service) http.Handler {
	h := NewMarketHandler(svc)
	r := chi.NewRouter()
	r.Post("/market/listings", h.HandleListItem)
	r.Get("/market/listings", h.HandleListListings)
	r.Get("/market/listings/{id}", h.HandleGetListing)
	r.Post("/market/listings/{id}/buy", h.HandleBuyItem)
	r.Post("/market/listings/{id}/cancel", h.HandleCancelListing)
	r.Get("/market/trades/latest", h.HandleCheckLog)
	r.Get("/market/trades", h.HandleTradeHistory)
	r.Post("/market/trades", h.HandleRecordTrade)
	r.Get("/players/{id}", HandleGetPlayer(svc))
	return r
}

func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandleListItem(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(*mocks.MockMarketService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success",
			body: ListItemRequest{SellerID: 1, ItemID: 7, Amount: 3, Price: 50},
			setupMock: func(m *mocks.MockMarketService) {
				m.On("ListItem", mock.Anything, int64(1), int64(7), int64(3), int64(50)).Return(int64(12), nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"listing_id":12`,
		},
		{
			name:           "Invalid JSON",
			body:           "not json",
			setupMock:      func(m *mocks.MockMarketService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name:           "Unknown field",
			body:           `{"seller_id":1,"item_id":7,"amount":3,"price":50,"bonus":1}`,
			setupMock:      func(m *mocks.MockMarketService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name:           "Zero amount",
			body:           ListItemRequest{SellerID: 1, ItemID: 7, Amount: 0, Price: 50},
			setupMock:      func(m *mocks.MockMarketService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"amount":"This field is required"`,
		},
		{
			name:           "Negative price",
			body:           ListItemRequest{SellerID: 1, ItemID: 7, Amount: 1, Price: -1},
			setupMock:      func(m *mocks.MockMarketService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"price":"Must be at least 0"`,
		},
		{
			name: "Not enough held",
			body: ListItemRequest{SellerID: 1, ItemID: 7, Amount: 9, Price: 50},
			setupMock: func(m *mocks.MockMarketService) {
				m.On("ListItem", mock.Anything, int64(1), int64(7), int64(9), int64(50)).
					Return(int64(0), domain.ErrInsufficientQuantity)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInsufficientItemsErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockMarketService(t)
			tt.setupMock(svc)

			rec := doRequest(t, newMarketRouter(svc), http.MethodPost, "/market/listings", tt.body)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandleBuyItem(t *testing.T) {
	receipt := &domain.PurchaseReceipt{
		ListingID: 5, TradeLogID: 9, SellerID: 1, BuyerID: 2, ItemID: 7, Amount: 3, Price: 50, CreditedTo: 1,
	}

	tests := []struct {
		name           string
		path           string
		body           interface{}
		setupMock      func(*mocks.MockMarketService)
		expectedStatus int
		expectedCode   market.ResultCode
	}{
		{
			name: "Success",
			path: "/market/listings/5/buy",
			body: BuyItemRequest{BuyerID: 2},
			setupMock: func(m *mocks.MockMarketService) {
				m.On("BuyItem", mock.Anything, int64(5), int64(2)).Return(receipt, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCode:   market.Success,
		},
		{
			name: "Listing not found",
			path: "/market/listings/5/buy",
			body: BuyItemRequest{BuyerID: 2},
			setupMock: func(m *mocks.MockMarketService) {
				m.On("BuyItem", mock.Anything, int64(5), int64(2)).Return(nil, domain.ErrListingNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   market.ListingNotFound,
		},
		{
			name: "Buyer not found",
			path: "/market/listings/5/buy",
			body: BuyItemRequest{BuyerID: 2},
			setupMock: func(m *mocks.MockMarketService) {
				m.On("BuyItem", mock.Anything, int64(5), int64(2)).Return(nil, domain.ErrBuyerNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   market.BuyerNotFound,
		},
		{
			name: "Insufficient funds",
			path: "/market/listings/5/buy",
			body: BuyItemRequest{BuyerID: 2},
			setupMock: func(m *mocks.MockMarketService) {
				m.On("BuyItem", mock.Anything, int64(5), int64(2)).Return(nil, domain.ErrInsufficientFunds)
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   market.InsufficientFunds,
		},
		{
			name: "Storage failure hides details",
			path: "/market/listings/5/buy",
			body: BuyItemRequest{BuyerID: 2},
			setupMock: func(m *mocks.MockMarketService) {
				m.On("BuyItem", mock.Anything, int64(5), int64(2)).
					Return(nil, errors.Join(record.ErrStorage, errors.New("disk I/O error")))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   market.StorageError,
		},
		{
			name:           "Bad listing id",
			path:           "/market/listings/abc/buy",
			body:           BuyItemRequest{BuyerID: 2},
			setupMock:      func(m *mocks.MockMarketService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   market.InvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockMarketService(t)
			tt.setupMock(svc)

			rec := doRequest(t, newMarketRouter(svc), http.MethodPost, tt.path, tt.body)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			var body struct {
				Code    market.ResultCode       `json:"code"`
				Error   string                  `json:"error"`
				Receipt *domain.PurchaseReceipt `json:"receipt"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedCode, body.Code)
			assert.NotContains(t, body.Error, "disk")
			if tt.expectedCode == market.Success {
				assert.Equal(t, receipt, body.Receipt)
			}
		})
	}
}

func TestHandleCancelListing(t *testing.T) {
	svc := mocks.NewMockMarketService(t)
	svc.On("CancelListing", mock.Anything, int64(5), int64(3)).Return(domain.ErrNotListingOwner)
	svc.On("CancelListing", mock.Anything, int64(5), int64(1)).Return(nil)
	router := newMarketRouter(svc)

	rec := doRequest(t, router, http.MethodPost, "/market/listings/5/cancel", CancelListingRequest{SellerID: 3})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, market.Forbidden, decodeError(t, rec).Code)

	rec = doRequest(t, router, http.MethodPost, "/market/listings/5/cancel", CancelListingRequest{SellerID: 1})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), MsgListingCancelledSuccess)
}

func TestHandleListListings(t *testing.T) {
	svc := mocks.NewMockMarketService(t)
	svc.On("ListListings", mock.Anything, domain.ListingFilter{SellerID: 4, Limit: 10}).
		Return([]domain.MarketListing{{ID: 1, SellerID: 4}}, nil)
	router := newMarketRouter(svc)

	rec := doRequest(t, router, http.MethodGet, "/market/listings?seller_id=4&limit=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp ListingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Listings, 1)

	rec = doRequest(t, router, http.MethodGet, "/market/listings?limit=many", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/market/listings?item_id=-3", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetListing(t *testing.T) {
	svc := mocks.NewMockMarketService(t)
	svc.On("GetListing", mock.Anything, int64(8)).Return(&domain.MarketListing{ID: 8, Price: 5}, nil)
	svc.On("GetListing", mock.Anything, int64(9)).Return(nil, domain.ErrListingNotFound)
	router := newMarketRouter(svc)

	rec := doRequest(t, router, http.MethodGet, "/market/listings/8", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"price":5`)

	rec = doRequest(t, router, http.MethodGet, "/market/listings/9", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, market.ListingNotFound, decodeError(t, rec).Code)
}

func TestHandleCheckLog(t *testing.T) {
	svc := mocks.NewMockMarketService(t)
	svc.On("CheckLog", mock.Anything, domain.LogQuery{ProviderID: 1, Place: domain.PlaceGather}).
		Return("2024-01-01T00:00:00.000000Z", nil)
	svc.On("CheckLog", mock.Anything, domain.LogQuery{RecipientID: 2}).Return("", nil)
	router := newMarketRouter(svc)

	rec := doRequest(t, router, http.MethodGet, "/market/trades/latest?provider_id=1&place=GATHER", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp CheckLogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Found)
	assert.Equal(t, "2024-01-01T00:00:00.000000Z", resp.LatestTradedAt)

	rec = doRequest(t, router, http.MethodGet, "/market/trades/latest?recipient_id=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"latest_traded_at":"","found":false}`, rec.Body.String())

	rec = doRequest(t, router, http.MethodGet, "/market/trades/latest?place=CASINO", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrMsgInvalidPlace)
}

func TestHandleTradeHistory_Since(t *testing.T) {
	svc := mocks.NewMockMarketService(t)
	svc.On("TradeHistory", mock.Anything, mock.MatchedBy(func(q domain.LogQuery) bool {
		return q.ProviderID == 1 && len(q.Conditions) == 1 &&
			q.Conditions[0] == record.Ge("TRADED_AT", "2024-02-01")
	}), 5).Return([]domain.TradeLog{{ID: 3, Place: domain.PlaceTrade}}, nil)

	rec := doRequest(t, newMarketRouter(svc), http.MethodGet, "/market/trades?provider_id=1&since=2024-02-01&limit=5", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp TradeHistoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Trades, 1)
	assert.Equal(t, int64(3), resp.Trades[0].ID)
}

func TestHandleRecordTrade(t *testing.T) {
	cash := int64(15)

	t.Run("Success", func(t *testing.T) {
		svc := mocks.NewMockMarketService(t)
		svc.On("RecordTrade", mock.Anything, domain.TradeLog{
			ProviderID: 1, RecipientID: 2, CashAmount: &cash, Place: domain.PlaceTrade,
		}).Return(int64(44), nil)

		rec := doRequest(t, newMarketRouter(svc), http.MethodPost, "/market/trades",
			RecordTradeRequest{ProviderID: 1, RecipientID: 2, CashAmount: &cash, Place: domain.PlaceTrade})

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"trade_log_id":44`)
	})

	t.Run("Unknown place", func(t *testing.T) {
		svc := mocks.NewMockMarketService(t)
		rec := doRequest(t, newMarketRouter(svc), http.MethodPost, "/market/trades",
			RecordTradeRequest{ProviderID: 1, RecipientID: 2, CashAmount: &cash, Place: "CASINO"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Must be one of MARKET, TRADE, GATHER")
	})

	t.Run("Unknown recipient", func(t *testing.T) {
		svc := mocks.NewMockMarketService(t)
		svc.On("RecordTrade", mock.Anything, mock.Anything).Return(int64(0), domain.ErrUserNotFound)

		rec := doRequest(t, newMarketRouter(svc), http.MethodPost, "/market/trades",
			RecordTradeRequest{ProviderID: 1, RecipientID: 99, CashAmount: &cash, Place: domain.PlaceTrade})

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, market.NotFound, decodeError(t, rec).Code)
	})
}

func TestHandleGetPlayer(t *testing.T) {
	svc := mocks.NewMockMarketService(t)
	svc.On("GetPlayer", mock.Anything, int64(1)).Return(&domain.PlayerSnapshot{
		UserID: 1, Cash: 20, Items: map[int64]int64{7: 2},
	}, nil)
	router := newMarketRouter(svc)

	rec := doRequest(t, router, http.MethodGet, "/players/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.PlayerSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(20), got.Cash)
	assert.Equal(t, int64(2), got.Amount(7))

	rec = doRequest(t, router, http.MethodGet, "/players/0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
