// Package metrics exposes Prometheus collectors for the HTTP API and the
// ledger.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)

	StreamClientsConnected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameStreamClientsConnected,
			Help: HelpTextStreamClientsConnected,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Ledger Metrics
var (
	ListingsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameListingsCreated,
			Help: HelpTextListingsCreated,
		},
	)

	ListingsCancelled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameListingsCancelled,
			Help: HelpTextListingsCancelled,
		},
	)

	Purchases = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePurchases,
			Help: HelpTextPurchases,
		},
		[]string{LabelEscrowed},
	)

	CashTransferred = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCashTransferred,
			Help: HelpTextCashTransferred,
		},
	)

	TradesRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTradesRecorded,
			Help: HelpTextTradesRecorded,
		},
		[]string{LabelPlace},
	)

	OperationResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameOperationResults,
			Help: HelpTextOperationResults,
		},
		[]string{LabelOperation, LabelResult},
	)
)

// RecordResult counts one ledger operation outcome. result is a result code
// name such as "success" or "insufficient_funds".
func RecordResult(operation, result string) {
	OperationResults.WithLabelValues(operation, result).Inc()
}
