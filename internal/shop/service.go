// Package shop sells consumables for on-chain LEAF payments.
package shop

import (
	"context"
	"fmt"

	"github.com/petalforge/grovetender/internal/domain"
	"github.com/petalforge/grovetender/internal/event"
	"github.com/petalforge/grovetender/internal/gameconfig"
	"github.com/petalforge/grovetender/internal/logger"
	"github.com/petalforge/grovetender/internal/metrics"
	"github.com/petalforge/grovetender/internal/payment"
	"github.com/petalforge/grovetender/internal/repository"
)

// PurposeBuy tags consumed payment proofs from shop purchases
const PurposeBuy = "shop.buy"

const maxQuantityPerPurchase = 100

// BuyRequest asks to buy a quantity of one consumable type
type BuyRequest struct {
	OwnerID  string
	Type     domain.ConsumableType
	Quantity int
	TxHash   string
}

// Service defines the shop business logic
type Service interface {
	// BuyConsumables credits consumables after verifying the exact purchase
	// payment (unit price times quantity)
	BuyConsumables(ctx context.Context, req BuyRequest) (*domain.BuyConsumablesResponse, error)

	// Inventory returns a user's consumable quantities
	Inventory(ctx context.Context, ownerID string) (*domain.ConsumableInventory, error)
}

type service struct {
	gate          *payment.Gate
	inventoryRepo repository.Inventory
	cfg           *gameconfig.Config
	bus           event.Bus
}

// NewService creates a new shop service
func NewService(gate *payment.Gate, inventoryRepo repository.Inventory, cfg *gameconfig.Config, bus event.Bus) Service {
	return &service{
		gate:          gate,
		inventoryRepo: inventoryRepo,
		cfg:           cfg,
		bus:           bus,
	}
}

func (s *service) BuyConsumables(ctx context.Context, req BuyRequest) (*domain.BuyConsumablesResponse, error) {
	log := logger.FromContext(ctx)
	log.Info("BuyConsumables called", "ownerID", req.OwnerID, "type", req.Type, "quantity", req.Quantity)

	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown type %q", domain.ErrInvalidItemSet, req.Type)
	}
	if req.Quantity < 1 || req.Quantity > maxQuantityPerPurchase {
		return nil, fmt.Errorf("%w: quantity must be in [1,%d]", domain.ErrInvalidAmount, maxQuantityPerPurchase)
	}

	unitPrice := s.cfg.Prices.Consumables[req.Type]
	total, err := payment.ScaleAmount(unitPrice, req.Quantity)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Require(ctx, req.TxHash, total); err != nil {
		return nil, err
	}

	tx, err := s.inventoryRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := tx.MarkPaymentConsumed(ctx, req.TxHash, PurposeBuy); err != nil {
		return nil, err
	}

	balance, err := tx.AddConsumables(ctx, req.OwnerID, req.Type, req.Quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to credit consumables: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.ConsumablesBought.WithLabelValues(string(req.Type)).Add(float64(req.Quantity))

	if s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewConsumablesBoughtEvent(req.OwnerID, req.Type, req.Quantity)); err != nil {
			log.Warn("Failed to publish event", "error", err)
		}
	}

	log.Info("Consumables purchased", "ownerID", req.OwnerID, "type", req.Type, "quantity", req.Quantity, "balance", balance)

	return &domain.BuyConsumablesResponse{
		Type:     req.Type,
		Quantity: req.Quantity,
		Balance:  balance,
		Message:  "Purchase complete!",
	}, nil
}

func (s *service) Inventory(ctx context.Context, ownerID string) (*domain.ConsumableInventory, error) {
	return s.inventoryRepo.GetConsumableInventory(ctx, ownerID)
}
