package schema

// Error Messages - Schema Operations
const (
	ErrMsgFailedToCreateTable = "failed to create table"
	ErrMsgFailedToCreateIndex = "failed to create index"
	ErrMsgFailedToDropTable   = "failed to drop table"
	ErrMsgUnknownTable        = "unknown table"
)
