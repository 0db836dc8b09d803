package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/NemoBot_Go/internal/domain"
	"github.com/osse101/NemoBot_Go/internal/repository"
)

// MockRepositoryMarket is a mock type for the repository.Market type
type MockRepositoryMarket struct {
	mock.Mock
}

// NewMockRepositoryMarket creates a new instance of MockRepositoryMarket. It
// also registers a cleanup function to assert the mock's expectations.
func NewMockRepositoryMarket(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRepositoryMarket {
	m := &MockRepositoryMarket{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockRepositoryMarket) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	ret := _m.Called(ctx, userID)
	var r0 *domain.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.User)
	}
	return r0, ret.Error(1)
}

func (_m *MockRepositoryMarket) GetListing(ctx context.Context, listingID int64) (*domain.MarketListing, error) {
	ret := _m.Called(ctx, listingID)
	var r0 *domain.MarketListing
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.MarketListing)
	}
	return r0, ret.Error(1)
}

func (_m *MockRepositoryMarket) ListListings(ctx context.Context, filter domain.ListingFilter) ([]domain.MarketListing, error) {
	ret := _m.Called(ctx, filter)
	var r0 []domain.MarketListing
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.MarketListing)
	}
	return r0, ret.Error(1)
}

func (_m *MockRepositoryMarket) LatestTradeTime(ctx context.Context, query domain.LogQuery) (string, error) {
	ret := _m.Called(ctx, query)
	return ret.String(0), ret.Error(1)
}

func (_m *MockRepositoryMarket) ListTradeLogs(ctx context.Context, query domain.LogQuery, limit int) ([]domain.TradeLog, error) {
	ret := _m.Called(ctx, query, limit)
	var r0 []domain.TradeLog
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.TradeLog)
	}
	return r0, ret.Error(1)
}

func (_m *MockRepositoryMarket) BeginTx(ctx context.Context) (repository.MarketTx, error) {
	ret := _m.Called(ctx)
	var r0 repository.MarketTx
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(repository.MarketTx)
	}
	return r0, ret.Error(1)
}

// MockRepositoryMarketTx is a mock type for the repository.MarketTx type
type MockRepositoryMarketTx struct {
	mock.Mock
}

// NewMockRepositoryMarketTx creates a new instance of MockRepositoryMarketTx.
func NewMockRepositoryMarketTx(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRepositoryMarketTx {
	m := &MockRepositoryMarketTx{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockRepositoryMarketTx) Commit(ctx context.Context) error {
	return _m.Called(ctx).Error(0)
}

func (_m *MockRepositoryMarketTx) Rollback(ctx context.Context) error {
	return _m.Called(ctx).Error(0)
}

func (_m *MockRepositoryMarketTx) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	ret := _m.Called(ctx, userID)
	var r0 *domain.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.User)
	}
	return r0, ret.Error(1)
}

func (_m *MockRepositoryMarketTx) ItemExists(ctx context.Context, itemID int64) (bool, error) {
	ret := _m.Called(ctx, itemID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *MockRepositoryMarketTx) GetInventory(ctx context.Context, userID int64) ([]domain.InventoryEntry, error) {
	ret := _m.Called(ctx, userID)
	var r0 []domain.InventoryEntry
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.InventoryEntry)
	}
	return r0, ret.Error(1)
}

func (_m *MockRepositoryMarketTx) GetListing(ctx context.Context, listingID int64) (*domain.MarketListing, error) {
	ret := _m.Called(ctx, listingID)
	var r0 *domain.MarketListing
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.MarketListing)
	}
	return r0, ret.Error(1)
}

func (_m *MockRepositoryMarketTx) GetInventoryEntry(ctx context.Context, userID, itemID int64) (*domain.InventoryEntry, error) {
	ret := _m.Called(ctx, userID, itemID)
	var r0 *domain.InventoryEntry
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.InventoryEntry)
	}
	return r0, ret.Error(1)
}

func (_m *MockRepositoryMarketTx) AdjustCash(ctx context.Context, userID, delta int64) error {
	return _m.Called(ctx, userID, delta).Error(0)
}

func (_m *MockRepositoryMarketTx) AdjustInventory(ctx context.Context, userID, itemID, delta int64) error {
	return _m.Called(ctx, userID, itemID, delta).Error(0)
}

func (_m *MockRepositoryMarketTx) InsertListing(ctx context.Context, listing domain.MarketListing) (int64, error) {
	ret := _m.Called(ctx, listing)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *MockRepositoryMarketTx) DeleteListing(ctx context.Context, listingID int64) (bool, error) {
	ret := _m.Called(ctx, listingID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *MockRepositoryMarketTx) InsertTradeLog(ctx context.Context, log domain.TradeLog) (int64, error) {
	ret := _m.Called(ctx, log)
	return ret.Get(0).(int64), ret.Error(1)
}
