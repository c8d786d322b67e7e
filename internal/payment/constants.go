package payment

// DefaultTokenDecimals is the decimal precision assumed when a proof does
// not carry one. LEAF follows the common 18-decimal convention.
const DefaultTokenDecimals = 18

// Log message constants
const (
	LogMsgVerifyCalled       = "VerifyTransfer called"
	LogMsgNoReceipt          = "No receipt found for transaction"
	LogMsgProviderFailed     = "Chain provider call failed"
	LogMsgTransferMatched    = "Matching transfer found"
	LogMsgNoMatchingTransfer = "Receipt scanned, no matching transfer"
)

// Rejection reason labels for metrics
const (
	ReasonNoReceipt     = "no_receipt"
	ReasonNoMatch       = "no_match"
	ReasonProviderError = "provider_error"
)
