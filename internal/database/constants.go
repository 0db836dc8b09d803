package database

import "time"

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of idle connections kept in the pool
	DefaultMinConnections = 2
	// DefaultMaxOpenConnections caps the pool when no limit is configured
	DefaultMaxOpenConnections = 10
	// DefaultPingTimeout bounds the startup connectivity check
	DefaultPingTimeout = 5 * time.Second
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToOpenDatabase  = "failed to open database"
	ErrMsgFailedToPingDatabase  = "failed to ping database"
	ErrMsgSQLitePathRequired    = "sqlite database path is required"
	ErrMsgFailedToCreateDataDir = "failed to create database directory"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
)
