package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/petalforge/grovetender/internal/domain"
	"github.com/petalforge/grovetender/internal/repository"
)

const selectFarmingState = `
	SELECT plant_id, owner_id, rarity, active_items, farming_started_at, last_settled_at, created_at, updated_at
	FROM farming_states
	WHERE plant_id = $1
`

// FarmingRepository implements the farming repository for PostgreSQL
type FarmingRepository struct {
	db *pgxpool.Pool
}

// NewFarmingRepository creates a new farming repository
func NewFarmingRepository(db *pgxpool.Pool) *FarmingRepository {
	return &FarmingRepository{db: db}
}

// GetFarmingState retrieves the farming state for a plant
func (r *FarmingRepository) GetFarmingState(ctx context.Context, plantID string) (*domain.FarmingState, error) {
	state, err := fetchFarmingState(ctx, r.db, plantID, selectFarmingState)
	if err != nil {
		if errors.Is(err, domain.ErrFarmingStateNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get farming state: %w", err)
	}
	return state, nil
}

// GetRewardBalance returns a user's accumulated reward units
func (r *FarmingRepository) GetRewardBalance(ctx context.Context, ownerID string) (float64, error) {
	query := `SELECT balance FROM reward_balances WHERE owner_id = $1`

	var balance float64
	err := r.db.QueryRow(ctx, query, ownerID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get reward balance: %w", err)
	}
	return balance, nil
}

// BeginTx starts a transaction and returns a FarmingTx
func (r *FarmingRepository) BeginTx(ctx context.Context) (repository.FarmingTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin farming transaction: %w", err)
	}
	return &farmingTx{tx: tx}, nil
}

// farmingTx implements repository.FarmingTx
type farmingTx struct {
	tx pgx.Tx
}

// Commit commits the transaction
func (t *farmingTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *farmingTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// GetFarmingStateWithLock retrieves the farming state with FOR UPDATE lock.
// The lock is what serializes racing settlements on the same plant.
func (t *farmingTx) GetFarmingStateWithLock(ctx context.Context, plantID string) (*domain.FarmingState, error) {
	state, err := fetchFarmingState(ctx, t.tx, plantID, selectFarmingState+" FOR UPDATE")
	if err != nil {
		if errors.Is(err, domain.ErrFarmingStateNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get farming state with lock: %w", err)
	}
	return state, nil
}

// CreateFarmingState inserts a new farming state row
func (t *farmingTx) CreateFarmingState(ctx context.Context, state *domain.FarmingState) error {
	plantUUID, err := parsePlantUUID(state.PlantID)
	if err != nil {
		return err
	}

	itemsJSON, err := json.Marshal(state.ActiveItems)
	if err != nil {
		return fmt.Errorf("failed to marshal active items: %w", err)
	}

	query := `
		INSERT INTO farming_states (plant_id, owner_id, rarity, active_items, farming_started_at, last_settled_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = t.tx.Exec(ctx, query, plantUUID, state.OwnerID, state.Rarity, itemsJSON, state.FarmingStartedAt, state.LastSettledAt)
	if err != nil {
		return fmt.Errorf("failed to create farming state: %w", err)
	}
	return nil
}

// UpdateFarmingState persists active items, farming start, and watermark
func (t *farmingTx) UpdateFarmingState(ctx context.Context, state *domain.FarmingState) error {
	plantUUID, err := parsePlantUUID(state.PlantID)
	if err != nil {
		return err
	}

	itemsJSON, err := json.Marshal(state.ActiveItems)
	if err != nil {
		return fmt.Errorf("failed to marshal active items: %w", err)
	}

	query := `
		UPDATE farming_states
		SET active_items = $2, farming_started_at = $3, last_settled_at = $4, updated_at = NOW()
		WHERE plant_id = $1
	`

	tag, err := t.tx.Exec(ctx, query, plantUUID, itemsJSON, state.FarmingStartedAt, state.LastSettledAt)
	if err != nil {
		return fmt.Errorf("failed to update farming state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFarmingStateNotFound
	}
	return nil
}

// DeductConsumables removes one unit of each given type from the user's
// inventory. The quantity guard in the WHERE clause means a short stack
// affects zero rows, which surfaces as ErrInsufficientQuantity; the caller's
// rollback then undoes any types already deducted.
func (t *farmingTx) DeductConsumables(ctx context.Context, ownerID string, types []domain.ConsumableType) error {
	query := `
		UPDATE consumable_inventory
		SET quantity = quantity - 1, updated_at = NOW()
		WHERE owner_id = $1 AND consumable_type = $2 AND quantity >= 1
	`

	for _, ctype := range types {
		tag, err := t.tx.Exec(ctx, query, ownerID, ctype)
		if err != nil {
			return fmt.Errorf("failed to deduct %s: %w", ctype, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: %s", domain.ErrInsufficientQuantity, ctype)
		}
	}
	return nil
}

// CreditRewardBalance adds net reward units to the user's balance
func (t *farmingTx) CreditRewardBalance(ctx context.Context, ownerID string, amount float64) error {
	query := `
		INSERT INTO reward_balances (owner_id, balance)
		VALUES ($1, $2)
		ON CONFLICT (owner_id)
		DO UPDATE SET balance = reward_balances.balance + EXCLUDED.balance, updated_at = NOW()
	`

	if _, err := t.tx.Exec(ctx, query, ownerID, amount); err != nil {
		return fmt.Errorf("failed to credit reward balance: %w", err)
	}
	return nil
}

// MarkPaymentConsumed records a transaction hash as spent
func (t *farmingTx) MarkPaymentConsumed(ctx context.Context, txHash, purpose string) error {
	return markPaymentConsumed(ctx, t.tx, txHash, purpose)
}

// fetchFarmingState is a helper to fetch and map farming state with common logic
func fetchFarmingState(ctx context.Context, q querier, plantID, query string) (*domain.FarmingState, error) {
	plantUUID, err := parsePlantUUID(plantID)
	if err != nil {
		return nil, err
	}

	var (
		id        uuid.UUID
		state     domain.FarmingState
		itemsJSON []byte
	)
	err = q.QueryRow(ctx, query, plantUUID).Scan(
		&id,
		&state.OwnerID,
		&state.Rarity,
		&itemsJSON,
		&state.FarmingStartedAt,
		&state.LastSettledAt,
		&state.CreatedAt,
		&state.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFarmingStateNotFound
		}
		return nil, err
	}

	state.PlantID = id.String()
	if err := json.Unmarshal(itemsJSON, &state.ActiveItems); err != nil {
		return nil, fmt.Errorf("failed to unmarshal active items: %w", err)
	}
	return &state, nil
}
