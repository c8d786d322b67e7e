package settlement

// PurposeClaim tags consumed payment proofs from reward claims
const PurposeClaim = "farm.claim"

// Log message constants
const (
	LogMsgClaimCalled   = "Claim called"
	LogMsgClaimSettled  = "Claim settled"
	LogMsgClaimRejected = "Claim rejected"
)

// Error message format constants
const (
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
)

// MsgClaimSettled is the user-facing success message
const MsgClaimSettled = "Rewards claimed!"
