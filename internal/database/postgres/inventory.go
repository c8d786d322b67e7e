package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/petalforge/grovetender/internal/domain"
	"github.com/petalforge/grovetender/internal/repository"
)

// InventoryRepository implements the consumable inventory repository for PostgreSQL
type InventoryRepository struct {
	db *pgxpool.Pool
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// GetConsumableInventory returns a user's consumable quantities, zero-valued
// for types never held
func (r *InventoryRepository) GetConsumableInventory(ctx context.Context, ownerID string) (*domain.ConsumableInventory, error) {
	query := `
		SELECT consumable_type, quantity
		FROM consumable_inventory
		WHERE owner_id = $1
	`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get consumable inventory: %w", err)
	}
	defer rows.Close()

	inv := &domain.ConsumableInventory{
		OwnerID:    ownerID,
		Quantities: make(map[domain.ConsumableType]int, len(domain.RequiredConsumableTypes)),
	}
	for _, ctype := range domain.RequiredConsumableTypes {
		inv.Quantities[ctype] = 0
	}

	for rows.Next() {
		var (
			ctype    domain.ConsumableType
			quantity int
		)
		if err := rows.Scan(&ctype, &quantity); err != nil {
			return nil, fmt.Errorf("failed to scan inventory row: %w", err)
		}
		inv.Quantities[ctype] = quantity
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return inv, nil
}

// BeginTx starts a transaction and returns an InventoryTx
func (r *InventoryRepository) BeginTx(ctx context.Context) (repository.InventoryTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin inventory transaction: %w", err)
	}
	return &inventoryTx{tx: tx}, nil
}

// inventoryTx implements repository.InventoryTx
type inventoryTx struct {
	tx pgx.Tx
}

// Commit commits the transaction
func (t *inventoryTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *inventoryTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// AddConsumables credits quantity units of a consumable type
func (t *inventoryTx) AddConsumables(ctx context.Context, ownerID string, ctype domain.ConsumableType, quantity int) (int, error) {
	query := `
		INSERT INTO consumable_inventory (owner_id, consumable_type, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (owner_id, consumable_type)
		DO UPDATE SET quantity = consumable_inventory.quantity + EXCLUDED.quantity, updated_at = NOW()
		RETURNING quantity
	`

	var newBalance int
	err := t.tx.QueryRow(ctx, query, ownerID, ctype, quantity).Scan(&newBalance)
	if err != nil {
		return 0, fmt.Errorf("failed to add consumables: %w", err)
	}
	return newBalance, nil
}

// MarkPaymentConsumed records a transaction hash as spent
func (t *inventoryTx) MarkPaymentConsumed(ctx context.Context, txHash, purpose string) error {
	return markPaymentConsumed(ctx, t.tx, txHash, purpose)
}
