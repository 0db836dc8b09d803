package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/NemoBot_Go/internal/domain"
)

// MockMarketService is a mock type for the market.Service type
type MockMarketService struct {
	mock.Mock
}

// NewMockMarketService creates a new instance of MockMarketService. It also
// registers a cleanup function to assert the mock's expectations.
func NewMockMarketService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMarketService {
	m := &MockMarketService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockMarketService) ListItem(ctx context.Context, sellerID, itemID, amount, price int64) (int64, error) {
	ret := _m.Called(ctx, sellerID, itemID, amount, price)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *MockMarketService) BuyItem(ctx context.Context, listingID, buyerID int64) (*domain.PurchaseReceipt, error) {
	ret := _m.Called(ctx, listingID, buyerID)
	var r0 *domain.PurchaseReceipt
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.PurchaseReceipt)
	}
	return r0, ret.Error(1)
}

func (_m *MockMarketService) CancelListing(ctx context.Context, listingID, sellerID int64) error {
	ret := _m.Called(ctx, listingID, sellerID)
	return ret.Error(0)
}

func (_m *MockMarketService) GetListing(ctx context.Context, listingID int64) (*domain.MarketListing, error) {
	ret := _m.Called(ctx, listingID)
	var r0 *domain.MarketListing
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.MarketListing)
	}
	return r0, ret.Error(1)
}

func (_m *MockMarketService) ListListings(ctx context.Context, filter domain.ListingFilter) ([]domain.MarketListing, error) {
	ret := _m.Called(ctx, filter)
	var r0 []domain.MarketListing
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.MarketListing)
	}
	return r0, ret.Error(1)
}

func (_m *MockMarketService) CheckLog(ctx context.Context, query domain.LogQuery) (string, error) {
	ret := _m.Called(ctx, query)
	return ret.String(0), ret.Error(1)
}

func (_m *MockMarketService) TradeHistory(ctx context.Context, query domain.LogQuery, limit int) ([]domain.TradeLog, error) {
	ret := _m.Called(ctx, query, limit)
	var r0 []domain.TradeLog
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.TradeLog)
	}
	return r0, ret.Error(1)
}

func (_m *MockMarketService) RecordTrade(ctx context.Context, log domain.TradeLog) (int64, error) {
	ret := _m.Called(ctx, log)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *MockMarketService) GetPlayer(ctx context.Context, userID int64) (*domain.PlayerSnapshot, error) {
	ret := _m.Called(ctx, userID)
	var r0 *domain.PlayerSnapshot
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.PlayerSnapshot)
	}
	return r0, ret.Error(1)
}
