package server

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/NemoBot_Go/internal/domain"
	"github.com/osse101/NemoBot_Go/internal/sse"
	"github.com/osse101/NemoBot_Go/mocks"
)

type pingPool struct{ err error }

func (p pingPool) PingContext(context.Context) error { return p.err }
func (p pingPool) Close() error                      { return nil }

const testAPIKey = "test-key"

func newTestRouter(svc *mocks.MockMarketService) http.Handler {
	return NewRouter(Config{APIKey: testAPIKey}, pingPool{}, svc, nil)
}

func authedRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(HeaderAPIKey, testAPIKey)
	return req
}

func TestRouter_MarketRoutes(t *testing.T) {
	svc := mocks.NewMockMarketService(t)
	svc.On("ListItem", mock.Anything, int64(1), int64(7), int64(3), int64(50)).Return(int64(4), nil)
	svc.On("BuyItem", mock.Anything, int64(4), int64(2)).Return(&domain.PurchaseReceipt{ListingID: 4, SellerID: 1, CreditedTo: 1}, nil)
	svc.On("CheckLog", mock.Anything, domain.LogQuery{RecipientID: 2}).Return("", nil)
	svc.On("GetPlayer", mock.Anything, int64(2)).Return(&domain.PlayerSnapshot{UserID: 2}, nil)
	router := newTestRouter(svc)

	tests := []struct {
		method, path, body string
		status             int
	}{
		{http.MethodPost, "/api/v1/market/listings", `{"seller_id":1,"item_id":7,"amount":3,"price":50}`, http.StatusCreated},
		{http.MethodPost, "/api/v1/market/listings/4/buy", `{"buyer_id":2}`, http.StatusOK},
		{http.MethodGet, "/api/v1/market/trades/latest?recipient_id=2", "", http.StatusOK},
		{http.MethodGet, "/api/v1/players/2", "", http.StatusOK},
		{http.MethodDelete, "/api/v1/market/listings/4", "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, authedRequest(tt.method, tt.path, tt.body))
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestRouter_RequiresAPIKey(t *testing.T) {
	router := newTestRouter(mocks.NewMockMarketService(t))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/players/2", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
}

func TestRouter_ReadyzReportsDatabase(t *testing.T) {
	router := NewRouter(Config{APIKey: testAPIKey}, pingPool{err: assert.AnError}, mocks.NewMockMarketService(t), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_RejectsOversizedBody(t *testing.T) {
	router := NewRouter(Config{APIKey: testAPIKey, MaxBodyBytes: 16}, pingPool{}, mocks.NewMockMarketService(t), nil)

	rec := httptest.NewRecorder()
	body := `{"seller_id":1,"item_id":7,"amount":3,"price":50}`
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/market/listings", body))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoggingMiddleware_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	req := httptest.NewRequest(http.MethodGet, "/api/v1/players/1", nil)
	req.Header.Set(HeaderAPIKey, "secret-key-123")
	req.Header.Set(HeaderAuthorization, "Bearer mytoken")
	req.Header.Set("User-Agent", "TestAgent")
	req.Header.Set(HeaderRequestID, "req-42")
	rec := httptest.NewRecorder()

	loggingMiddleware(okHandler).ServeHTTP(rec, req)

	out := buf.String()
	require.Contains(t, out, LogMsgRequestHeaders)
	assert.NotContains(t, out, "secret-key-123")
	assert.NotContains(t, out, "Bearer mytoken")
	assert.Contains(t, out, "TestAgent")
	assert.Contains(t, out, "req-42")
	assert.Equal(t, "req-42", rec.Header().Get(HeaderRequestID))
}

func TestRouter_EventStreamRequiresKey(t *testing.T) {
	hub := sse.NewHub()
	hub.Start()
	defer hub.Stop()
	router := NewRouter(Config{APIKey: testAPIKey}, pingPool{}, mocks.NewMockMarketService(t), hub)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/market/events", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/v1/market/events?types=nope", ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
