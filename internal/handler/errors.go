package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// Farming operation error messages
	ErrMsgApplyFailed     = "Failed to apply consumables"
	ErrMsgClaimFailed     = "Failed to claim rewards"
	ErrMsgGetStatusFailed = "Failed to get farming status"

	// Garden operation error messages
	ErrMsgMergeFailed     = "Failed to merge plants"
	ErrMsgGetPlantsFailed = "Failed to get plants"

	// Shop operation error messages
	ErrMsgBuyFailed          = "Failed to buy consumables"
	ErrMsgGetInventoryFailed = "Failed to get inventory"
)

// Success messages for API responses
// These are user-facing success messages returned in JSON responses
const (
	MsgApplySuccess = "Consumables applied"
	MsgClaimSuccess = "Rewards claimed"
	MsgMergeSuccess = "Plants merged"
	MsgBuySuccess   = "Purchase complete"
)
