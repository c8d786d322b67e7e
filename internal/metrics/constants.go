package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Payment metric names
const (
	MetricNamePaymentsVerified = "payments_verified_total"
	MetricNamePaymentsRejected = "payments_rejected_total"
)

// Settlement metric names
const (
	MetricNameClaimsSettled      = "claims_settled_total"
	MetricNameClaimsRejected     = "claims_rejected_total"
	MetricNameRewardsDistributed = "reward_units_distributed_total"
	MetricNameFeesCollected      = "reward_units_fees_total"
)

// Farming metric names
const (
	MetricNameConsumablesApplied = "consumables_applied_total"
	MetricNamePlantsMerged       = "plants_merged_total"
	MetricNameConsumablesBought  = "consumables_bought_total"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextPaymentsVerified = "Total number of successfully verified on-chain payments"
	HelpTextPaymentsRejected = "Total number of rejected payment proofs by reason"

	HelpTextClaimsSettled      = "Total number of successful reward settlements"
	HelpTextClaimsRejected     = "Total number of rejected settlement attempts by kind"
	HelpTextRewardsDistributed = "Total net reward units credited to users"
	HelpTextFeesCollected      = "Total reward units withheld as claim fees"

	HelpTextConsumablesApplied = "Total number of consumable activations by type"
	HelpTextPlantsMerged       = "Total number of plant merges"
	HelpTextConsumablesBought  = "Total number of consumables bought by type"

	HelpTextEventsPublished    = "Total number of events published by type"
	HelpTextEventHandlerErrors = "Total number of event handler errors by type"
)

// ============================================================================
// Label Names
// ============================================================================

const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelReason = "reason"
	LabelKind   = "kind"
	LabelType   = "type"
	LabelRarity = "rarity"
)

// HTTPLatencyBuckets are latency histogram buckets in seconds
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
