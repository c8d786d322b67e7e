package settlement

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

// ClaimRequest asks to settle a plant's accrued reward
type ClaimRequest struct {
	PlantID string
	OwnerID string
	TxHash  string
}

// Service defines the claim business logic
type Service interface {
	// Claim verifies the claim-fee payment, settles the accrued interval,
	// advances the watermark, and credits the net reward, all-or-nothing
	Claim(ctx context.Context, req ClaimRequest) (*domain.ClaimResponse, error)

	// Balance returns a user's accumulated reward units
	Balance(ctx context.Context, ownerID string) (float64, error)
}

type service struct {
	gate        *payment.Gate
	farmingRepo repository.Farming
	engine      *Engine
	cfg         *gameconfig.Config
	clock       *season.Clock
	bus         event.Bus
	now         func() time.Time
}

// NewService creates a new settlement service
func NewService(
	gate *payment.Gate,
	farmingRepo repository.Farming,
	engine *Engine,
	cfg *gameconfig.Config,
	clock *season.Clock,
	bus event.Bus,
) Service {
	return &service{
		gate:        gate,
		farmingRepo: farmingRepo,
		engine:      engine,
		cfg:         cfg,
		clock:       clock,
		bus:         bus,
		now:         time.Now,
	}
}

func (s *service) Claim(ctx context.Context, req ClaimRequest) (*domain.ClaimResponse, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgClaimCalled, "plantID", req.PlantID, "ownerID", req.OwnerID, "txHash", req.TxHash)

	// 1. Gate on the claim-fee payment
	if err := s.gate.Require(ctx, req.TxHash, s.cfg.Prices.ClaimFee); err != nil {
		return nil, err
	}

	// 2. Settle inside one serialized transaction per plant: the row lock
	// guarantees no two claims observe the same stale watermark
	tx, err := s.farmingRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := tx.MarkPaymentConsumed(ctx, req.TxHash, PurposeClaim); err != nil {
		return nil, err
	}

	state, err := tx.GetFarmingStateWithLock(ctx, req.PlantID)
	if err != nil {
		if errors.Is(err, domain.ErrFarmingStateNotFound) {
			return nil, domain.ErrNotFarming
		}
		return nil, fmt.Errorf("failed to get farming state: %w", err)
	}
	if state.OwnerID != req.OwnerID {
		return nil, domain.ErrNotPlantOwner
	}

	now := s.now()
	seasonDay, feePct := s.clock.CurrentFee(now)

	result, err := s.engine.Settle(state, now, feePct)
	if err != nil {
		if code := domain.CodeForError(err); code != "" {
			metrics.ClaimsRejected.WithLabelValues(string(code)).Inc()
			log.Warn(LogMsgClaimRejected, "plantID", req.PlantID, "kind", code)
		}
		return nil, err
	}

	state.LastSettledAt = &result.NewLastSettledAt
	if err := tx.UpdateFarmingState(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to update farming state: %w", err)
	}

	if err := tx.CreditRewardBalance(ctx, req.OwnerID, result.NetRewards); err != nil {
		return nil, fmt.Errorf("failed to credit reward balance: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	metrics.ClaimsSettled.WithLabelValues(string(state.Rarity)).Inc()
	metrics.RewardsDistributed.Add(result.NetRewards)
	metrics.FeesCollected.Add(result.Fee)

	if s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewClaimSettledEvent(req.PlantID, req.OwnerID, result.GrossRewards, result.NetRewards, seasonDay, feePct)); err != nil {
			log.Warn("Failed to publish event", "error", err)
		}
	}

	log.Info(LogMsgClaimSettled,
		"plantID", req.PlantID,
		"elapsedSeconds", result.ElapsedSeconds,
		"gross", result.GrossRewards,
		"net", result.NetRewards,
		"seasonDay", seasonDay,
		"feePct", feePct,
	)

	return &domain.ClaimResponse{
		GrossRewards:  result.GrossRewards,
		Fee:           result.Fee,
		NetRewards:    result.NetRewards,
		SeasonDay:     seasonDay,
		FeePercentage: feePct,
		Message:       MsgClaimSettled,
	}, nil
}

func (s *service) Balance(ctx context.Context, ownerID string) (float64, error) {
	return s.farmingRepo.GetRewardBalance(ctx, ownerID)
}
