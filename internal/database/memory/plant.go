package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/petalforge/grovetender/internal/domain"
	"github.com/petalforge/grovetender/internal/repository"
)

// PlantRepository implements the plant repository in memory
type PlantRepository struct {
	store *Store
}

// NewPlantRepository creates a new in-memory plant repository
func NewPlantRepository(store *Store) *PlantRepository {
	return &PlantRepository{store: store}
}

// GetPlant retrieves a plant by id
func (r *PlantRepository) GetPlant(ctx context.Context, plantID string) (*domain.Plant, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	plant, ok := r.store.plants[plantID]
	if !ok {
		return nil, domain.ErrPlantNotFound
	}
	return &plant, nil
}

// GetPlantsByOwner lists a user's plants, burned ones included
func (r *PlantRepository) GetPlantsByOwner(ctx context.Context, ownerID string) ([]domain.Plant, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var plants []domain.Plant
	for _, plant := range r.store.plants {
		if plant.OwnerID == ownerID {
			plants = append(plants, plant)
		}
	}
	sort.Slice(plants, func(i, j int) bool {
		return plants[i].CreatedAt.Before(plants[j].CreatedAt)
	})
	return plants, nil
}

// CreatePlant inserts a new plant, assigning an ID when none is set
func (r *PlantRepository) CreatePlant(ctx context.Context, plant *domain.Plant) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if plant.ID == "" {
		plant.ID = uuid.NewString()
	}
	plant.CreatedAt = now()
	plant.UpdatedAt = plant.CreatedAt
	r.store.plants[plant.ID] = *plant
	return nil
}

// BeginTx starts a transaction, holding the store lock until commit or rollback
func (r *PlantRepository) BeginTx(ctx context.Context) (repository.PlantTx, error) {
	r.store.mu.Lock()
	return &plantTx{tx: tx{store: r.store, saved: r.store.snapshot()}}, nil
}

// plantTx implements repository.PlantTx
type plantTx struct {
	tx
}

// GetPlantWithLock retrieves a plant under the transaction's store lock
func (t *plantTx) GetPlantWithLock(ctx context.Context, plantID string) (*domain.Plant, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}

	plant, ok := t.store.plants[plantID]
	if !ok {
		return nil, domain.ErrPlantNotFound
	}
	return &plant, nil
}

// UpdatePlant persists power and status changes
func (t *plantTx) UpdatePlant(ctx context.Context, plant *domain.Plant) error {
	if err := t.guard(); err != nil {
		return err
	}

	existing, ok := t.store.plants[plant.ID]
	if !ok {
		return domain.ErrPlantNotFound
	}
	stored := *plant
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = now()
	t.store.plants[plant.ID] = stored
	return nil
}

// MarkPaymentConsumed records a transaction hash as spent
func (t *plantTx) MarkPaymentConsumed(ctx context.Context, txHash, purpose string) error {
	if err := t.guard(); err != nil {
		return err
	}
	return t.store.markPaymentConsumed(txHash, purpose)
}
