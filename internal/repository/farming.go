package repository

import (
	"context"

	"github.com/petalforge/grovetender/internal/domain"
)

// Farming persists farming state and the per-user reward balance.
//
// Hard requirement on every implementation: racing settlements for the same
// plant must be serialized through GetFarmingStateWithLock (row lock or an
// equivalent single-writer transaction) so no two transactions observe the
// same stale watermark. Without it, the same interval can be credited twice.
type Farming interface {
	// GetFarmingState retrieves the farming state for a plant.
	// Returns domain.ErrFarmingStateNotFound when none exists yet.
	GetFarmingState(ctx context.Context, plantID string) (*domain.FarmingState, error)

	// GetRewardBalance returns a user's accumulated reward units
	GetRewardBalance(ctx context.Context, ownerID string) (float64, error)

	// BeginTx starts a transaction
	BeginTx(ctx context.Context) (FarmingTx, error)
}

// FarmingTx is a transaction over farming state, inventory, and balances
type FarmingTx interface {
	Tx

	// GetFarmingStateWithLock retrieves the farming state holding an
	// exclusive row lock until commit or rollback.
	// Returns domain.ErrFarmingStateNotFound when none exists.
	GetFarmingStateWithLock(ctx context.Context, plantID string) (*domain.FarmingState, error)

	// CreateFarmingState inserts a new farming state row
	CreateFarmingState(ctx context.Context, state *domain.FarmingState) error

	// UpdateFarmingState persists active items, farming start, and watermark
	UpdateFarmingState(ctx context.Context, state *domain.FarmingState) error

	// DeductConsumables removes one unit of each given type from the user's
	// inventory. Returns domain.ErrInsufficientQuantity when any type is
	// short; nothing is deducted in that case.
	DeductConsumables(ctx context.Context, ownerID string, types []domain.ConsumableType) error

	// CreditRewardBalance adds net reward units to the user's balance
	CreditRewardBalance(ctx context.Context, ownerID string, amount float64) error

	// MarkPaymentConsumed records a transaction hash as spent on an action.
	// Returns domain.ErrPaymentAlreadyUsed when the hash was consumed before.
	MarkPaymentConsumed(ctx context.Context, txHash, purpose string) error
}
