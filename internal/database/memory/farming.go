package memory

import (
	"context"
	"fmt"

	"github.com/petalforge/grovetender/internal/domain"
	"github.com/petalforge/grovetender/internal/repository"
)

// FarmingRepository implements the farming repository in memory
type FarmingRepository struct {
	store *Store
}

// NewFarmingRepository creates a new in-memory farming repository
func NewFarmingRepository(store *Store) *FarmingRepository {
	return &FarmingRepository{store: store}
}

// GetFarmingState retrieves the farming state for a plant
func (r *FarmingRepository) GetFarmingState(ctx context.Context, plantID string) (*domain.FarmingState, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	state, ok := r.store.farming[plantID]
	if !ok {
		return nil, domain.ErrFarmingStateNotFound
	}
	out := cloneFarmingState(state)
	return &out, nil
}

// GetRewardBalance returns a user's accumulated reward units
func (r *FarmingRepository) GetRewardBalance(ctx context.Context, ownerID string) (float64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.balances[ownerID], nil
}

// BeginTx starts a transaction, holding the store lock until commit or rollback
func (r *FarmingRepository) BeginTx(ctx context.Context) (repository.FarmingTx, error) {
	r.store.mu.Lock()
	return &farmingTx{tx: tx{store: r.store, saved: r.store.snapshot()}}, nil
}

// farmingTx implements repository.FarmingTx
type farmingTx struct {
	tx
}

// GetFarmingStateWithLock retrieves the farming state. The store lock held by
// the transaction already serializes concurrent settlements.
func (t *farmingTx) GetFarmingStateWithLock(ctx context.Context, plantID string) (*domain.FarmingState, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}

	state, ok := t.store.farming[plantID]
	if !ok {
		return nil, domain.ErrFarmingStateNotFound
	}
	out := cloneFarmingState(state)
	return &out, nil
}

// CreateFarmingState inserts a new farming state
func (t *farmingTx) CreateFarmingState(ctx context.Context, state *domain.FarmingState) error {
	if err := t.guard(); err != nil {
		return err
	}

	stored := cloneFarmingState(*state)
	stored.CreatedAt = now()
	stored.UpdatedAt = stored.CreatedAt
	t.store.farming[state.PlantID] = stored
	return nil
}

// UpdateFarmingState persists active items, farming start, and watermark
func (t *farmingTx) UpdateFarmingState(ctx context.Context, state *domain.FarmingState) error {
	if err := t.guard(); err != nil {
		return err
	}

	existing, ok := t.store.farming[state.PlantID]
	if !ok {
		return domain.ErrFarmingStateNotFound
	}
	stored := cloneFarmingState(*state)
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = now()
	t.store.farming[state.PlantID] = stored
	return nil
}

// DeductConsumables removes one unit of each given type from the user's inventory
func (t *farmingTx) DeductConsumables(ctx context.Context, ownerID string, types []domain.ConsumableType) error {
	if err := t.guard(); err != nil {
		return err
	}

	held := t.store.inventory[ownerID]
	for _, ctype := range types {
		if held[ctype] < 1 {
			return fmt.Errorf("%w: %s", domain.ErrInsufficientQuantity, ctype)
		}
	}
	for _, ctype := range types {
		held[ctype]--
	}
	return nil
}

// CreditRewardBalance adds net reward units to the user's balance
func (t *farmingTx) CreditRewardBalance(ctx context.Context, ownerID string, amount float64) error {
	if err := t.guard(); err != nil {
		return err
	}
	t.store.balances[ownerID] += amount
	return nil
}

// MarkPaymentConsumed records a transaction hash as spent
func (t *farmingTx) MarkPaymentConsumed(ctx context.Context, txHash, purpose string) error {
	if err := t.guard(); err != nil {
		return err
	}
	return t.store.markPaymentConsumed(txHash, purpose)
}
