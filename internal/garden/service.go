// Package garden implements plant collection actions outside the farming
// loop, currently merging two plants into one.
package garden

import (
	"context"
	"fmt"
	"time"

	"github.com/petalforge/grovetender/internal/domain"
	"github.com/petalforge/grovetender/internal/event"
	"github.com/petalforge/grovetender/internal/gameconfig"
	"github.com/petalforge/grovetender/internal/logger"
	"github.com/petalforge/grovetender/internal/metrics"
	"github.com/petalforge/grovetender/internal/payment"
	"github.com/petalforge/grovetender/internal/repository"
)

// PurposeMerge tags consumed payment proofs from plant merges
const PurposeMerge = "garden.merge"

// MergeRequest asks to combine two owned plants
type MergeRequest struct {
	PlantID      string
	OtherPlantID string
	OwnerID      string
	TxHash       string
}

// Service defines the garden business logic
type Service interface {
	// MergePlants burns the weaker plant and folds its power into the
	// stronger one, gated on the merge-fee payment
	MergePlants(ctx context.Context, req MergeRequest) (*domain.MergePlantsResponse, error)

	// Plants lists a user's plants, burned ones included
	Plants(ctx context.Context, ownerID string) ([]domain.Plant, error)
}

type service struct {
	gate      *payment.Gate
	plantRepo repository.Plant
	cfg       *gameconfig.Config
	bus       event.Bus
	now       func() time.Time
}

// NewService creates a new garden service
func NewService(gate *payment.Gate, plantRepo repository.Plant, cfg *gameconfig.Config, bus event.Bus) Service {
	return &service{
		gate:      gate,
		plantRepo: plantRepo,
		cfg:       cfg,
		bus:       bus,
		now:       time.Now,
	}
}

func (s *service) MergePlants(ctx context.Context, req MergeRequest) (*domain.MergePlantsResponse, error) {
	log := logger.FromContext(ctx)
	log.Info("MergePlants called", "plantID", req.PlantID, "otherPlantID", req.OtherPlantID, "ownerID", req.OwnerID)

	if req.PlantID == req.OtherPlantID {
		return nil, fmt.Errorf("%w: cannot merge a plant with itself", domain.ErrInvalidPlantID)
	}

	if err := s.gate.Require(ctx, req.TxHash, s.cfg.Prices.Merge); err != nil {
		return nil, err
	}

	tx, err := s.plantRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := tx.MarkPaymentConsumed(ctx, req.TxHash, PurposeMerge); err != nil {
		return nil, err
	}

	// Lock in a fixed order to avoid deadlocks between concurrent merges
	firstID, secondID := req.PlantID, req.OtherPlantID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	first, err := tx.GetPlantWithLock(ctx, firstID)
	if err != nil {
		return nil, err
	}
	second, err := tx.GetPlantWithLock(ctx, secondID)
	if err != nil {
		return nil, err
	}

	for _, p := range []*domain.Plant{first, second} {
		if p.OwnerID != req.OwnerID {
			return nil, domain.ErrNotPlantOwner
		}
		if p.Status != domain.PlantStatusActive {
			return nil, domain.ErrPlantBurned
		}
	}

	// The stronger plant survives; ties keep the plant named first in the
	// request
	survivor, burned := first, second
	if second.Power > first.Power {
		survivor, burned = second, first
	} else if first.Power == second.Power && first.ID != req.PlantID {
		survivor, burned = second, first
	}

	now := s.now()
	survivor.Power += burned.Power
	survivor.UpdatedAt = now
	burned.Status = domain.PlantStatusBurned
	burned.UpdatedAt = now

	if err := tx.UpdatePlant(ctx, survivor); err != nil {
		return nil, fmt.Errorf("failed to update surviving plant: %w", err)
	}
	if err := tx.UpdatePlant(ctx, burned); err != nil {
		return nil, fmt.Errorf("failed to burn merged plant: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.PlantsMerged.Inc()

	if s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewPlantsMergedEvent(survivor.ID, burned.ID, req.OwnerID, survivor.Power)); err != nil {
			log.Warn("Failed to publish event", "error", err)
		}
	}

	log.Info("Plants merged", "survivorID", survivor.ID, "burnedID", burned.ID, "newPower", survivor.Power)

	return &domain.MergePlantsResponse{
		SurvivorID: survivor.ID,
		BurnedID:   burned.ID,
		NewPower:   survivor.Power,
		Message:    "Plants merged!",
	}, nil
}

func (s *service) Plants(ctx context.Context, ownerID string) ([]domain.Plant, error) {
	return s.plantRepo.GetPlantsByOwner(ctx, ownerID)
}
