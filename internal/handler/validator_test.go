package handler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/NemoBot_Go/internal/domain"
)

func TestValidator_PlaceValidation(t *testing.T) {
	InitValidator()
	v := GetValidator()
	cash := int64(1)

	tests := []struct {
		name    string
		place   string
		wantErr bool
	}{
		{"market", domain.PlaceMarket, false},
		{"trade", domain.PlaceTrade, false},
		{"gather", domain.PlaceGather, false},
		{"lower case", "market", true},
		{"unknown", "CASINO", true},
		{"missing", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(RecordTradeRequest{
				ProviderID: 1, RecipientID: 2, CashAmount: &cash, Place: tt.place,
			})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_OptionalPointers(t *testing.T) {
	v := GetValidator()
	zero, negative := int64(0), int64(-2)

	assert.NoError(t, v.ValidateStruct(RecordTradeRequest{
		ProviderID: 1, RecipientID: 2, CashAmount: &zero, Place: domain.PlaceTrade,
	}), "zero cash is a valid transfer")

	err := v.ValidateStruct(RecordTradeRequest{
		ProviderID: 1, RecipientID: 2, ItemID: &negative, Place: domain.PlaceGather,
	})
	require.Error(t, err)
	assert.Equal(t, "Must be greater than 0", FormatValidationError(err)["itemid"])
}

func TestValidator_TradedAt(t *testing.T) {
	v := GetValidator()
	cash := int64(1)

	tests := []struct {
		name     string
		tradedAt string
		wantErr  bool
	}{
		{"omitted", "", false},
		{"canonical", "2024-05-01T12:00:00.000000Z", false},
		{"free form", "yesterday", true},
		{"offset", "2024-05-01T14:00:00.000000+02:00", true},
		{"second precision", "2024-05-01T12:00:00Z", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(RecordTradeRequest{
				ProviderID: 1, RecipientID: 2, CashAmount: &cash, Place: domain.PlaceTrade, TradedAt: tt.tradedAt,
			})
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, FormatValidationError(err)["tradedat"], domain.TimestampLayout)
		})
	}
}

func TestFormatValidationError(t *testing.T) {
	assert.Nil(t, FormatValidationError(nil))
	assert.Equal(t, map[string]string{"error": "Invalid request format"},
		FormatValidationError(errors.New("boom")))

	err := GetValidator().ValidateStruct(ListItemRequest{})
	require.Error(t, err)
	fields := FormatValidationError(err)
	assert.Equal(t, "This field is required", fields["sellerid"])
	assert.Equal(t, "This field is required", fields["itemid"])
	assert.Equal(t, "This field is required", fields["amount"])
}
