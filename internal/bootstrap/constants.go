package bootstrap

import "time"

// File system permissions
const (
	DirPermission     = 0755
	LogFilePermission = 0666
)

// Logger configuration
const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "session_%s.log"
	LogFileExtension       = ".log"
	// LogFileRetentionCount is the number of older log files kept at startup
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingService     = "Starting NemoBot"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgConfigWarning       = "Configuration warning"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// Event system configuration
const (
	EventDefaultMaxRetries = 5
	// EventDefaultRetryDelay is the base delay between attempts; it doubles each retry
	EventDefaultRetryDelay = 2 * time.Second
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir  = "failed to create dead-letter directory"
	LogMsgFailedOpenDeadLetter       = "failed to open dead-letter file"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
)

// Service wiring
const (
	LogMsgDatabaseReady      = "Database ready"
	LogMsgMarketServiceReady = "Market service ready"
	ErrMsgFailedOpenDatabase = "failed to open database"
	ErrMsgFailedInitSchema   = "failed to initialize schema"
)

// Shutdown messages
const (
	LogMsgStoppingStream             = "Closing event streams..."
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgClosingDeadLetter          = "Closing dead-letter file..."
	LogMsgClosingDatabase            = "Closing database..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgDeadLetterCloseFailed      = "Dead-letter close failed"
	LogMsgDatabaseCloseFailed        = "Database close failed"
)
