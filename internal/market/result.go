package market

import (
	"errors"

	"github.com/osse101/NemoBot_Go/internal/domain"
)

// ResultCode is the outcome of a ledger operation as a stable integer the
// chat adapter can switch on. The first four values keep the numbering the
// bot has always used for purchases.
type ResultCode int

const (
	Success              ResultCode = 0
	ListingNotFound      ResultCode = -1
	BuyerNotFound        ResultCode = -2
	InsufficientFunds    ResultCode = -3
	SellerNotFound       ResultCode = -4
	InsufficientQuantity ResultCode = -5
	NotFound             ResultCode = -6
	InvalidInput         ResultCode = -7
	Forbidden            ResultCode = -8
	StorageError         ResultCode = -9
)

var codeNames = map[ResultCode]string{
	Success:              "success",
	ListingNotFound:      "listing_not_found",
	BuyerNotFound:        "buyer_not_found",
	InsufficientFunds:    "insufficient_funds",
	SellerNotFound:       "seller_not_found",
	InsufficientQuantity: "insufficient_quantity",
	NotFound:             "not_found",
	InvalidInput:         "invalid_input",
	Forbidden:            "forbidden",
	StorageError:         "storage_error",
}

func (c ResultCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "unknown"
}

// CodeOf maps an error returned by the Service to its ResultCode. Anything
// that is not a domain error is a StorageError.
func CodeOf(err error) ResultCode {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, domain.ErrListingNotFound):
		return ListingNotFound
	// Role-specific errors also match ErrUserNotFound, so they go first.
	case errors.Is(err, domain.ErrBuyerNotFound):
		return BuyerNotFound
	case errors.Is(err, domain.ErrSellerNotFound):
		return SellerNotFound
	case errors.Is(err, domain.ErrInsufficientFunds):
		return InsufficientFunds
	case errors.Is(err, domain.ErrInsufficientQuantity):
		return InsufficientQuantity
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrItemNotFound):
		return NotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return InvalidInput
	case errors.Is(err, domain.ErrNotListingOwner):
		return Forbidden
	}
	return StorageError
}
