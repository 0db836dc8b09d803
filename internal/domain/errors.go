package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound   = "user not found"
	ErrMsgBuyerNotFound  = "buyer not found"
	ErrMsgSellerNotFound = "seller not found"

	// Item errors
	ErrMsgItemNotFound = "item not found"

	// Inventory errors
	ErrMsgInsufficientQuantity = "insufficient quantity"

	// Market errors
	ErrMsgListingNotFound   = "listing not found"
	ErrMsgNotListingOwner   = "listing belongs to another seller"
	ErrMsgInsufficientFunds = "insufficient funds"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrUserNotFound = errors.New(ErrMsgUserNotFound)

	// ErrBuyerNotFound and ErrSellerNotFound also match ErrUserNotFound.
	ErrBuyerNotFound  = &roleError{msg: ErrMsgBuyerNotFound, base: ErrUserNotFound}
	ErrSellerNotFound = &roleError{msg: ErrMsgSellerNotFound, base: ErrUserNotFound}

	ErrItemNotFound = errors.New(ErrMsgItemNotFound)

	ErrInsufficientQuantity = errors.New(ErrMsgInsufficientQuantity)

	ErrListingNotFound   = errors.New(ErrMsgListingNotFound)
	ErrNotListingOwner   = errors.New(ErrMsgNotListingOwner)
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

type roleError struct {
	msg  string
	base error
}

func (e *roleError) Error() string { return e.msg }
func (e *roleError) Unwrap() error { return e.base }
