package repository

import (
	"context"

	"github.com/petalforge/grovetender/internal/domain"
)

// Inventory manages consumable quantities outside the farming transaction
type Inventory interface {
	// GetConsumableInventory returns a user's consumable quantities,
	// zero-valued for types never held
	GetConsumableInventory(ctx context.Context, ownerID string) (*domain.ConsumableInventory, error)

	// BeginTx starts a transaction
	BeginTx(ctx context.Context) (InventoryTx, error)
}

// InventoryTx is a transaction over consumable inventory. The replay mark and
// the inventory credit commit or roll back together, so a failed credit never
// burns the payment.
type InventoryTx interface {
	Tx

	// AddConsumables credits quantity units of a consumable type
	AddConsumables(ctx context.Context, ownerID string, ctype domain.ConsumableType, quantity int) (newBalance int, err error)

	// MarkPaymentConsumed records a transaction hash as spent on an action.
	// Returns domain.ErrPaymentAlreadyUsed when the hash was consumed before.
	MarkPaymentConsumed(ctx context.Context, txHash, purpose string) error
}
