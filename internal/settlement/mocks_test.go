package settlement

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/petalforge/grovetender/internal/domain"
	"github.com/petalforge/grovetender/internal/repository"
)

// MockFarmingRepository implements repository.Farming for testing
type MockFarmingRepository struct {
	mock.Mock
}

func (m *MockFarmingRepository) GetFarmingState(ctx context.Context, plantID string) (*domain.FarmingState, error) {
	args := m.Called(ctx, plantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FarmingState), args.Error(1)
}

func (m *MockFarmingRepository) GetRewardBalance(ctx context.Context, ownerID string) (float64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockFarmingRepository) BeginTx(ctx context.Context) (repository.FarmingTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.FarmingTx), args.Error(1)
}

// MockFarmingTx implements repository.FarmingTx for testing
type MockFarmingTx struct {
	mock.Mock
}

func (m *MockFarmingTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockFarmingTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockFarmingTx) GetFarmingStateWithLock(ctx context.Context, plantID string) (*domain.FarmingState, error) {
	args := m.Called(ctx, plantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FarmingState), args.Error(1)
}

func (m *MockFarmingTx) CreateFarmingState(ctx context.Context, state *domain.FarmingState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *MockFarmingTx) UpdateFarmingState(ctx context.Context, state *domain.FarmingState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *MockFarmingTx) DeductConsumables(ctx context.Context, ownerID string, types []domain.ConsumableType) error {
	args := m.Called(ctx, ownerID, types)
	return args.Error(0)
}

func (m *MockFarmingTx) CreditRewardBalance(ctx context.Context, ownerID string, amount float64) error {
	args := m.Called(ctx, ownerID, amount)
	return args.Error(0)
}

func (m *MockFarmingTx) MarkPaymentConsumed(ctx context.Context, txHash, purpose string) error {
	args := m.Called(ctx, txHash, purpose)
	return args.Error(0)
}

// stubVerifier lets tests dial payment verification outcomes
type stubVerifier struct {
	err error
}

func (s *stubVerifier) VerifyTransfer(_ context.Context, _ domain.PaymentProof) error {
	return s.err
}
