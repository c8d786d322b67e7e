package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Settlement state errors
	ErrMsgNotFarming      = "plant is not farming"
	ErrMsgFarmingExpired  = "farming window has expired"
	ErrMsgNothingToSettle = "nothing to settle"

	// Payment errors
	ErrMsgPaymentNotVerified = "payment not verified"
	ErrMsgPaymentAlreadyUsed = "payment proof already used"
	ErrMsgChainUnavailable   = "chain provider unavailable"

	// Validation errors
	ErrMsgInvalidItemSet = "invalid consumable set"
	ErrMsgInvalidAmount  = "invalid token amount"
	ErrMsgInvalidPlantID = "invalid plant id"
	ErrMsgInvalidRarity  = "invalid rarity"

	// Plant errors
	ErrMsgPlantNotFound = "plant not found"
	ErrMsgPlantBurned   = "plant is burned"
	ErrMsgNotPlantOwner = "plant does not belong to user"

	// Inventory errors
	ErrMsgInsufficientQuantity = "insufficient quantity"

	// State persistence errors
	ErrMsgFarmingStateNotFound = "farming state not found"

	// Database/System errors
	ErrMsgTxClosed = "tx is closed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Settlement state errors - deterministic business outcomes, never retried
	ErrNotFarming      = errors.New(ErrMsgNotFarming)
	ErrFarmingExpired  = errors.New(ErrMsgFarmingExpired)
	ErrNothingToSettle = errors.New(ErrMsgNothingToSettle)

	// ErrPaymentNotVerified means the chain was consulted and definitively
	// holds no matching transfer. The remedy is a new transaction, not a
	// retry of the same hash.
	ErrPaymentNotVerified = errors.New(ErrMsgPaymentNotVerified)

	// ErrPaymentAlreadyUsed means the transaction hash was already consumed
	// by a previous action; each on-chain payment gates exactly one action.
	ErrPaymentAlreadyUsed = errors.New(ErrMsgPaymentAlreadyUsed)

	// ErrChainUnavailable means the chain provider could not answer
	// (timeout, connection failure). Retryable by the caller with bounded
	// backoff; must never be logged under the same category as a definite
	// payment mismatch.
	ErrChainUnavailable = errors.New(ErrMsgChainUnavailable)

	// Validation errors
	ErrInvalidItemSet = errors.New(ErrMsgInvalidItemSet)
	ErrInvalidAmount  = errors.New(ErrMsgInvalidAmount)
	ErrInvalidPlantID = errors.New(ErrMsgInvalidPlantID)

	// Plant errors
	ErrPlantNotFound = errors.New(ErrMsgPlantNotFound)
	ErrPlantBurned   = errors.New(ErrMsgPlantBurned)
	ErrNotPlantOwner = errors.New(ErrMsgNotPlantOwner)

	// Inventory errors
	ErrInsufficientQuantity = errors.New(ErrMsgInsufficientQuantity)

	// State persistence errors
	ErrFarmingStateNotFound = errors.New(ErrMsgFarmingStateNotFound)
)

// ErrorCode is the stable machine-readable kind attached to API rejections
type ErrorCode string

const (
	CodeNotFarming         ErrorCode = "NotFarming"
	CodeExpired            ErrorCode = "Expired"
	CodeNothingToSettle    ErrorCode = "NothingToSettle"
	CodePaymentNotVerified ErrorCode = "PaymentNotVerified"
	CodePaymentAlreadyUsed ErrorCode = "PaymentAlreadyUsed"
	CodeInvalidItemSet     ErrorCode = "InvalidItemSet"
	CodeChainUnavailable   ErrorCode = "ChainUnavailable"
)

// CodeForError maps a domain error to its stable error code.
// Returns "" for errors with no caller-facing kind.
func CodeForError(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrNotFarming):
		return CodeNotFarming
	case errors.Is(err, ErrFarmingExpired):
		return CodeExpired
	case errors.Is(err, ErrNothingToSettle):
		return CodeNothingToSettle
	case errors.Is(err, ErrPaymentNotVerified):
		return CodePaymentNotVerified
	case errors.Is(err, ErrPaymentAlreadyUsed):
		return CodePaymentAlreadyUsed
	case errors.Is(err, ErrInvalidItemSet):
		return CodeInvalidItemSet
	case errors.Is(err, ErrChainUnavailable):
		return CodeChainUnavailable
	}
	return ""
}
