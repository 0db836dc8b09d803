package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal      = "http_requests_total"
	MetricNameHTTPRequestDuration    = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight   = "http_requests_in_flight"
	MetricNameStreamClientsConnected = "market_stream_clients"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Ledger metric names
const (
	MetricNameListingsCreated   = "market_listings_created_total"
	MetricNameListingsCancelled = "market_listings_cancelled_total"
	MetricNamePurchases         = "market_purchases_total"
	MetricNameCashTransferred   = "market_cash_transferred_total"
	MetricNameTradesRecorded    = "trade_logs_recorded_total"
	MetricNameOperationResults  = "ledger_operation_results_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal      = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration    = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight   = "Current number of HTTP requests being served"
	HelpTextStreamClientsConnected = "Current number of clients on the market event stream"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Ledger metric help text
const (
	HelpTextListingsCreated   = "Total number of market listings created"
	HelpTextListingsCancelled = "Total number of market listings cancelled by their seller"
	HelpTextPurchases         = "Total number of settled market purchases"
	HelpTextCashTransferred   = "Total cash moved from buyers to sellers or escrow"
	HelpTextTradesRecorded    = "Total number of trade logs recorded outside the market"
	HelpTextOperationResults  = "Ledger operation outcomes by result code"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelEscrowed  = "escrowed"
	LabelPlace     = "place"
	LabelOperation = "operation"
	LabelResult    = "result"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// unmatchedRoute labels requests that matched no route, keeping the path
// label bounded.
const unmatchedRoute = "unmatched"

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgPayloadDecodeFailed = "Failed to decode event payload"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
