package shop

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/petalforge/grovetender/internal/domain"
	"github.com/petalforge/grovetender/internal/repository"
)

// MockInventoryRepository implements repository.Inventory for testing
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) GetConsumableInventory(ctx context.Context, ownerID string) (*domain.ConsumableInventory, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConsumableInventory), args.Error(1)
}

func (m *MockInventoryRepository) BeginTx(ctx context.Context) (repository.InventoryTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.InventoryTx), args.Error(1)
}

// MockInventoryTx implements repository.InventoryTx for testing
type MockInventoryTx struct {
	mock.Mock
}

func (m *MockInventoryTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockInventoryTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockInventoryTx) AddConsumables(ctx context.Context, ownerID string, ctype domain.ConsumableType, quantity int) (int, error) {
	args := m.Called(ctx, ownerID, ctype, quantity)
	return args.Int(0), args.Error(1)
}

func (m *MockInventoryTx) MarkPaymentConsumed(ctx context.Context, txHash, purpose string) error {
	args := m.Called(ctx, txHash, purpose)
	return args.Error(0)
}

// recordingVerifier captures the amount the gate was asked to verify
type recordingVerifier struct {
	amount string
	err    error
}

func (r *recordingVerifier) VerifyTransfer(_ context.Context, proof domain.PaymentProof) error {
	r.amount = proof.ExpectedAmount
	return r.err
}
