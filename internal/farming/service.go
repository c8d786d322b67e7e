package farming

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/petalforge/grovetender/internal/domain"
	"github.com/petalforge/grovetender/internal/event"
	"github.com/petalforge/grovetender/internal/gameconfig"
	"github.com/petalforge/grovetender/internal/logger"
	"github.com/petalforge/grovetender/internal/metrics"
	"github.com/petalforge/grovetender/internal/payment"
	"github.com/petalforge/grovetender/internal/repository"
	"github.com/petalforge/grovetender/internal/season"
)

// ApplyRequest asks to activate consumables on a plant
type ApplyRequest struct {
	PlantID string
	OwnerID string
	Types   []domain.ConsumableType
	TxHash  string
}

// Service defines the consumable activation business logic
type Service interface {
	// ApplyConsumables verifies the activation payment, deducts inventory,
	// and activates the consumables, all-or-nothing
	ApplyConsumables(ctx context.Context, req ApplyRequest) (*domain.ApplyConsumablesResponse, error)

	// Status reports a plant's current farming state
	Status(ctx context.Context, plantID string) (*domain.FarmingStatusResponse, error)
}

type service struct {
	gate        *payment.Gate
	farmingRepo repository.Farming
	plantRepo   repository.Plant
	cfg         *gameconfig.Config
	clock       *season.Clock
	bus         event.Bus
	now         func() time.Time
}

// NewService creates a new farming service
func NewService(
	gate *payment.Gate,
	farmingRepo repository.Farming,
	plantRepo repository.Plant,
	cfg *gameconfig.Config,
	clock *season.Clock,
	bus event.Bus,
) Service {
	return &service{
		gate:        gate,
		farmingRepo: farmingRepo,
		plantRepo:   plantRepo,
		cfg:         cfg,
		clock:       clock,
		bus:         bus,
		now:         time.Now,
	}
}

func (s *service) ApplyConsumables(ctx context.Context, req ApplyRequest) (*domain.ApplyConsumablesResponse, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgApplyCalled, "plantID", req.PlantID, "ownerID", req.OwnerID, "types", req.Types, "txHash", req.TxHash)

	// 1. Validate the consumable set before touching the chain
	if err := ValidateItemSet(req.Types); err != nil {
		return nil, err
	}

	// 2. Gate on the activation payment
	price, err := payment.ScaleAmount(s.cfg.Prices.ActivationPerItem, len(req.Types))
	if err != nil {
		return nil, err
	}
	if err := s.gate.Require(ctx, req.TxHash, price); err != nil {
		return nil, err
	}

	// 3. Resolve the plant and check ownership
	plant, err := s.plantRepo.GetPlant(ctx, req.PlantID)
	if err != nil {
		return nil, err
	}
	if plant.Status == domain.PlantStatusBurned {
		return nil, domain.ErrPlantBurned
	}
	if plant.OwnerID != req.OwnerID {
		return nil, domain.ErrNotPlantOwner
	}

	// 4. Transactional mutation
	tx, err := s.farmingRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := tx.MarkPaymentConsumed(ctx, req.TxHash, PurposeApply); err != nil {
		return nil, err
	}

	now := s.now()

	state, err := tx.GetFarmingStateWithLock(ctx, req.PlantID)
	created := false
	if err != nil {
		if !errors.Is(err, domain.ErrFarmingStateNotFound) {
			return nil, fmt.Errorf("failed to get farming state: %w", err)
		}
		state = &domain.FarmingState{
			PlantID:          req.PlantID,
			OwnerID:          req.OwnerID,
			Rarity:           plant.Rarity,
			FarmingStartedAt: now,
		}
		created = true
	}

	// Accrual that an overwrite abandons: only relevant when a full but
	// lapsed set is replaced without having been claimed first
	var forfeited int64
	if !created && !IsActive(state, now) {
		forfeited = UnsettledSeconds(state, now)
	}

	// 5. Inventory deduction, atomic with the state change
	if err := tx.DeductConsumables(ctx, req.OwnerID, req.Types); err != nil {
		return nil, err
	}

	Apply(state, req.Types, now, s.cfg.ConsumableDuration())

	if created {
		if err := tx.CreateFarmingState(ctx, state); err != nil {
			return nil, fmt.Errorf("failed to create farming state: %w", err)
		}
		log.Info(LogMsgStateCreated, "plantID", req.PlantID)
	} else {
		if err := tx.UpdateFarmingState(ctx, state); err != nil {
			return nil, fmt.Errorf("failed to update farming state: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	for _, t := range req.Types {
		metrics.ConsumablesApplied.WithLabelValues(string(t)).Inc()
	}
	if forfeited > 0 {
		log.Warn(LogMsgAccrualForfeited, "plantID", req.PlantID, "forfeitedSeconds", forfeited)
	}

	phase := Phase(state, now)
	if s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewConsumablesAppliedEvent(req.PlantID, req.OwnerID, req.Types, phase)); err != nil {
			log.Warn("Failed to publish event", "error", err)
		}
	}

	log.Info(LogMsgConsumablesSet, "plantID", req.PlantID, "phase", phase)

	resp := &domain.ApplyConsumablesResponse{
		PlantID:          req.PlantID,
		Phase:            phase,
		MissingTypes:     MissingTypes(state, now),
		ForfeitedSeconds: forfeited,
		Message:          MsgPartialCoverage,
	}
	if phase == domain.PhaseActive {
		earliest, _ := EarliestExpiry(state)
		resp.ExpiresAt = &earliest
		resp.Message = MsgFarmingStarted
	}
	return resp, nil
}

func (s *service) Status(ctx context.Context, plantID string) (*domain.FarmingStatusResponse, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgStatusCalled, "plantID", plantID)

	now := s.now()
	day, feePct := s.clock.CurrentFee(now)

	state, err := s.farmingRepo.GetFarmingState(ctx, plantID)
	if err != nil {
		if errors.Is(err, domain.ErrFarmingStateNotFound) {
			// Never farmed: idle with everything missing
			return &domain.FarmingStatusResponse{
				PlantID:       plantID,
				Phase:         domain.PhaseIdle,
				MissingTypes:  domain.RequiredConsumableTypes,
				SeasonDay:     day,
				FeePercentage: feePct,
			}, nil
		}
		return nil, fmt.Errorf("failed to get farming state: %w", err)
	}

	return &domain.FarmingStatusResponse{
		PlantID:          plantID,
		Phase:            Phase(state, now),
		MissingTypes:     MissingTypes(state, now),
		SecondsRemaining: int64(TimeRemaining(state, now) / time.Second),
		SeasonDay:        day,
		FeePercentage:    feePct,
		UnsettledSeconds: UnsettledSeconds(state, now),
	}, nil
}
