package repository

import (
	"context"

	"github.com/petalforge/grovetender/internal/domain"
)

// Plant handles plant ownership bookkeeping
type Plant interface {
	// GetPlant retrieves a plant by id.
	// Returns domain.ErrPlantNotFound when it does not exist.
	GetPlant(ctx context.Context, plantID string) (*domain.Plant, error)

	// GetPlantsByOwner lists a user's plants, burned ones included
	GetPlantsByOwner(ctx context.Context, ownerID string) ([]domain.Plant, error)

	// CreatePlant inserts a new plant
	CreatePlant(ctx context.Context, plant *domain.Plant) error

	// BeginTx starts a transaction
	BeginTx(ctx context.Context) (PlantTx, error)
}

// PlantTx is a transaction over plants, used by the merge flow
type PlantTx interface {
	Tx

	// GetPlantWithLock retrieves a plant holding an exclusive row lock
	GetPlantWithLock(ctx context.Context, plantID string) (*domain.Plant, error)

	// UpdatePlant persists power and status changes
	UpdatePlant(ctx context.Context, plant *domain.Plant) error

	// MarkPaymentConsumed records a transaction hash as spent on an action.
	// Returns domain.ErrPaymentAlreadyUsed when the hash was consumed before.
	MarkPaymentConsumed(ctx context.Context, txHash, purpose string) error
}
