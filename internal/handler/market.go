package handler

import (
	"net/http"

	"github.com/osse101/NemoBot_Go/internal/domain"
	"github.com/osse101/NemoBot_Go/internal/logger"
	"github.com/osse101/NemoBot_Go/internal/market"
	"github.com/osse101/NemoBot_Go/internal/metrics"
)

// MarketHandler serves the marketplace and trade log endpoints.
type MarketHandler struct {
	service market.Service
}

func NewMarketHandler(service market.Service) *MarketHandler {
	return &MarketHandler{service: service}
}

// ListItemRequest represents a request to put items up for sale
type ListItemRequest struct {
	SellerID int64 `json:"seller_id" validate:"required,gt=0"`
	ItemID   int64 `json:"item_id" validate:"required,gt=0"`
	Amount   int64 `json:"amount" validate:"required,gt=0"`
	Price    int64 `json:"price" validate:"gte=0"`
}

// ListItemResponse carries the new listing's ID
type ListItemResponse struct {
	Message   string            `json:"message"`
	Code      market.ResultCode `json:"code"`
	Result    string            `json:"result"`
	ListingID int64             `json:"listing_id"`
}

// HandleListItem handles POST /market/listings
func (h *MarketHandler) HandleListItem(w http.ResponseWriter, r *http.Request) {
	var req ListItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "List item"); err != nil {
		return
	}

	id, err := h.service.ListItem(r.Context(), req.SellerID, req.ItemID, req.Amount, req.Price)
	if err != nil {
		respondServiceError(w, r, OpListItem, err)
		return
	}

	metrics.RecordResult(OpListItem, market.Success.String())
	respondJSON(w, http.StatusCreated, ListItemResponse{
		Message:   MsgItemListedSuccess,
		Code:      market.Success,
		Result:    market.Success.String(),
		ListingID: id,
	})
}

// BuyItemRequest represents a request to buy a listing
type BuyItemRequest struct {
	BuyerID int64 `json:"buyer_id" validate:"required,gt=0"`
}

// BuyItemResponse carries the settlement receipt
type BuyItemResponse struct {
	Message string                  `json:"message"`
	Code    market.ResultCode       `json:"code"`
	Result  string                  `json:"result"`
	Receipt *domain.PurchaseReceipt `json:"receipt"`
}

// HandleBuyItem handles POST /market/listings/{id}/buy
func (h *MarketHandler) HandleBuyItem(w http.ResponseWriter, r *http.Request) {
	listingID, ok := GetIDParam(r, w, "id")
	if !ok {
		return
	}

	var req BuyItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Buy item"); err != nil {
		return
	}

	receipt, err := h.service.BuyItem(r.Context(), listingID, req.BuyerID)
	if err != nil {
		respondServiceError(w, r, OpBuyItem, err)
		return
	}

	logger.FromContext(r.Context()).Info("Listing bought",
		"listing_id", listingID, "buyer_id", req.BuyerID, "escrowed", receipt.Escrowed())
	metrics.RecordResult(OpBuyItem, market.Success.String())
	respondJSON(w, http.StatusOK, BuyItemResponse{
		Message: MsgItemBoughtSuccess,
		Code:    market.Success,
		Result:  market.Success.String(),
		Receipt: receipt,
	})
}

// CancelListingRequest identifies the seller withdrawing a listing
type CancelListingRequest struct {
	SellerID int64 `json:"seller_id" validate:"required,gt=0"`
}

// HandleCancelListing handles POST /market/listings/{id}/cancel
func (h *MarketHandler) HandleCancelListing(w http.ResponseWriter, r *http.Request) {
	listingID, ok := GetIDParam(r, w, "id")
	if !ok {
		return
	}

	var req CancelListingRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Cancel listing"); err != nil {
		return
	}

	if err := h.service.CancelListing(r.Context(), listingID, req.SellerID); err != nil {
		respondServiceError(w, r, OpCancelListing, err)
		return
	}

	metrics.RecordResult(OpCancelListing, market.Success.String())
	respondJSON(w, http.StatusOK, SuccessResponse{
		Message: MsgListingCancelledSuccess,
		Code:    market.Success,
		Result:  market.Success.String(),
	})
}

// HandleGetListing handles GET /market/listings/{id}
func (h *MarketHandler) HandleGetListing(w http.ResponseWriter, r *http.Request) {
	listingID, ok := GetIDParam(r, w, "id")
	if !ok {
		return
	}

	listing, err := h.service.GetListing(r.Context(), listingID)
	if err != nil {
		respondServiceError(w, r, OpGetListing, err)
		return
	}

	respondJSON(w, http.StatusOK, listing)
}

// ListingsResponse wraps a page of listings
type ListingsResponse struct {
	Listings []domain.MarketListing `json:"listings"`
}

// HandleListListings handles GET /market/listings?seller_id&item_id&limit
func (h *MarketHandler) HandleListListings(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := GetOptionalInt64Query(r, w, "seller_id")
	if !ok {
		return
	}
	itemID, ok := GetOptionalInt64Query(r, w, "item_id")
	if !ok {
		return
	}
	limit, ok := getLimit(r, w)
	if !ok {
		return
	}

	listings, err := h.service.ListListings(r.Context(), domain.ListingFilter{
		SellerID: sellerID,
		ItemID:   itemID,
		Limit:    limit,
	})
	if err != nil {
		respondServiceError(w, r, OpListListings, err)
		return
	}

	respondJSON(w, http.StatusOK, ListingsResponse{Listings: listings})
}
