package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/NemoBot_Go/internal/database/record"
	"github.com/osse101/NemoBot_Go/internal/domain"
	"github.com/osse101/NemoBot_Go/internal/logger"
	"github.com/osse101/NemoBot_Go/internal/market"
	"github.com/osse101/NemoBot_Go/internal/metrics"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string            `json:"message"`
	Code    market.ResultCode `json:"code"`
	Result  string            `json:"result"`
}

// ErrorResponse represents an error response. Code is the ledger result code
// the failure maps to.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   market.ResultCode `json:"code"`
	Result string            `json:"result"`
}

// encodeBuffers recycles response buffers. Buffers that grew past
// maxPooledBuffer are left for the GC so one large listing page does not pin
// memory.
var encodeBuffers = sync.Pool{
	New: func() interface{} { return bytes.NewBuffer(make([]byte, 0, 512)) },
}

const maxPooledBuffer = 64 << 10

// respondJSON encodes payload before writing anything, so an encoding failure
// still produces a clean 500.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := encodeBuffers.Get().(*bytes.Buffer)
	defer func() {
		if buf.Cap() <= maxPooledBuffer {
			buf.Reset()
			encodeBuffers.Put(buf)
		}
	}()

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response for a request that never reached
// the ledger.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:  message,
		Code:   market.InvalidInput,
		Result: market.InvalidInput.String(),
	})
}

// respondServiceError logs a service failure, counts its result code and
// writes the mapped status and user message.
func respondServiceError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	code := market.CodeOf(err)
	metrics.RecordResult(operation, code.String())

	status, message := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(operation+" failed", "error", err)
	} else {
		log.Warn(operation+" rejected", "error", err, "code", code.String())
	}

	respondJSON(w, status, ErrorResponse{Error: message, Code: code, Result: code.String()})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."
	ErrMsgAuthFailedError     = "Authentication failed. Please check your API key."
	ErrMsgResourceNotFoundErr = "Resource not found."
	ErrMsgUnavailableError    = "Server is temporarily unavailable. Please try again later."

	ErrMsgUserNotFoundError    = "User not found"
	ErrMsgBuyerNotFoundError   = "Buyer not found"
	ErrMsgSellerNotFoundError  = "Seller not found"
	ErrMsgItemNotFoundError    = "Item not found"
	ErrMsgInsufficientItemsErr = "Not enough items"

	ErrMsgListingNotFoundError = "Listing not found"
	ErrMsgNotListingOwnerError = "You can only cancel your own listings"
	ErrMsgNotEnoughMoneyError  = "Not enough money"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// responses. Storage faults never leak their text.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrListingNotFound):
		return http.StatusNotFound, ErrMsgListingNotFoundError
	// Role errors also match ErrUserNotFound.
	case errors.Is(err, domain.ErrBuyerNotFound):
		return http.StatusNotFound, ErrMsgBuyerNotFoundError
	case errors.Is(err, domain.ErrSellerNotFound):
		return http.StatusConflict, ErrMsgSellerNotFoundError
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughMoneyError
	case errors.Is(err, domain.ErrInsufficientQuantity):
		return http.StatusBadRequest, ErrMsgInsufficientItemsErr
	case errors.Is(err, domain.ErrNotListingOwner):
		return http.StatusForbidden, ErrMsgNotListingOwnerError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	case errors.Is(err, record.ErrConflict):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
