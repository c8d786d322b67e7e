package memory

import (
	"context"

	"github.com/petalforge/grovetender/internal/domain"
	"github.com/petalforge/grovetender/internal/repository"
)

// InventoryRepository implements the consumable inventory repository in memory
type InventoryRepository struct {
	store *Store
}

// NewInventoryRepository creates a new in-memory inventory repository
func NewInventoryRepository(store *Store) *InventoryRepository {
	return &InventoryRepository{store: store}
}

// GetConsumableInventory returns a user's consumable quantities, zero-valued
// for types never held
func (r *InventoryRepository) GetConsumableInventory(ctx context.Context, ownerID string) (*domain.ConsumableInventory, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	inv := &domain.ConsumableInventory{
		OwnerID:    ownerID,
		Quantities: make(map[domain.ConsumableType]int, len(domain.RequiredConsumableTypes)),
	}
	for _, ctype := range domain.RequiredConsumableTypes {
		inv.Quantities[ctype] = r.store.inventory[ownerID][ctype]
	}
	return inv, nil
}

// BeginTx starts a transaction, holding the store lock until commit or rollback
func (r *InventoryRepository) BeginTx(ctx context.Context) (repository.InventoryTx, error) {
	r.store.mu.Lock()
	return &inventoryTx{tx: tx{store: r.store, saved: r.store.snapshot()}}, nil
}

// inventoryTx implements repository.InventoryTx
type inventoryTx struct {
	tx
}

// AddConsumables credits quantity units of a consumable type
func (t *inventoryTx) AddConsumables(ctx context.Context, ownerID string, ctype domain.ConsumableType, quantity int) (int, error) {
	if err := t.guard(); err != nil {
		return 0, err
	}

	held := t.store.inventory[ownerID]
	if held == nil {
		held = make(map[domain.ConsumableType]int)
		t.store.inventory[ownerID] = held
	}
	held[ctype] += quantity
	return held[ctype], nil
}

// MarkPaymentConsumed records a transaction hash as spent
func (t *inventoryTx) MarkPaymentConsumed(ctx context.Context, txHash, purpose string) error {
	if err := t.guard(); err != nil {
		return err
	}
	return t.store.markPaymentConsumed(txHash, purpose)
}
