package record

import "errors"

// Error message constants
const (
	ErrMsgConstraintViolation = "constraint violation"
	ErrMsgConflict            = "write conflict"
	ErrMsgStorage             = "storage error"
	ErrMsgInvalidIdentifier   = "invalid identifier"
	ErrMsgInvalidOperator     = "invalid operator"
	ErrMsgUnboundedWrite      = "update or delete requires at least one condition"
	ErrMsgNoFields            = "no fields given"
	ErrMsgTxDone              = "transaction already committed or rolled back"
)

// Store errors. Every error returned by a Store or Tx matches exactly one of
// ErrConstraintViolation, ErrConflict or ErrStorage when it came from the
// database, or one of the validation errors when no SQL was issued.
var (
	// ErrConstraintViolation is the write error for NOT NULL, UNIQUE, CHECK
	// and foreign key failures.
	ErrConstraintViolation = errors.New(ErrMsgConstraintViolation)
	// ErrConflict means the database refused the write because of a
	// concurrent transaction. The operation may be retried.
	ErrConflict = errors.New(ErrMsgConflict)
	// ErrStorage covers every other driver or I/O failure.
	ErrStorage = errors.New(ErrMsgStorage)

	ErrInvalidIdentifier = errors.New(ErrMsgInvalidIdentifier)
	ErrInvalidOperator   = errors.New(ErrMsgInvalidOperator)
	ErrUnboundedWrite    = errors.New(ErrMsgUnboundedWrite)
	ErrNoFields          = errors.New(ErrMsgNoFields)
	ErrTxDone            = errors.New(ErrMsgTxDone)
)
