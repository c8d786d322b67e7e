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
)

// Payment Metrics
var (
	PaymentsVerified = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePaymentsVerified,
			Help: HelpTextPaymentsVerified,
		},
	)

	PaymentsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePaymentsRejected,
			Help: HelpTextPaymentsRejected,
		},
		[]string{LabelReason},
	)
)

// Settlement Metrics
var (
	ClaimsSettled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameClaimsSettled,
			Help: HelpTextClaimsSettled,
		},
		[]string{LabelRarity},
	)

	ClaimsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameClaimsRejected,
			Help: HelpTextClaimsRejected,
		},
		[]string{LabelKind},
	)

	RewardsDistributed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRewardsDistributed,
			Help: HelpTextRewardsDistributed,
		},
	)

	FeesCollected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameFeesCollected,
			Help: HelpTextFeesCollected,
		},
	)
)

// Farming Metrics
var (
	ConsumablesApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameConsumablesApplied,
			Help: HelpTextConsumablesApplied,
		},
		[]string{LabelType},
	)

	PlantsMerged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePlantsMerged,
			Help: HelpTextPlantsMerged,
		},
	)

	ConsumablesBought = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameConsumablesBought,
			Help: HelpTextConsumablesBought,
		},
		[]string{LabelType},
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
