package farming

// PurposeApply tags consumed payment proofs from consumable activation
const PurposeApply = "farm.apply"

// Log message constants
const (
	LogMsgApplyCalled      = "ApplyConsumables called"
	LogMsgStateCreated     = "Farming state created"
	LogMsgConsumablesSet   = "Consumables applied"
	LogMsgAccrualForfeited = "Unclaimed accrual forfeited by re-activation"
	LogMsgStatusCalled     = "Status called"
)

// Error message format constants
const (
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
)

// User-facing messages
const (
	MsgFarmingStarted  = "All three consumables active - your plant is farming!"
	MsgPartialCoverage = "Consumables applied. Apply the missing types to start farming."
)
