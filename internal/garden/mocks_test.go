package garden

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/petalforge/grovetender/internal/domain"
	"github.com/petalforge/grovetender/internal/repository"
)

// MockPlantRepository implements repository.Plant for testing
type MockPlantRepository struct {
	mock.Mock
}

func (m *MockPlantRepository) GetPlant(ctx context.Context, plantID string) (*domain.Plant, error) {
	args := m.Called(ctx, plantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plant), args.Error(1)
}

func (m *MockPlantRepository) GetPlantsByOwner(ctx context.Context, ownerID string) ([]domain.Plant, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plant), args.Error(1)
}

func (m *MockPlantRepository) CreatePlant(ctx context.Context, plant *domain.Plant) error {
	args := m.Called(ctx, plant)
	return args.Error(0)
}

func (m *MockPlantRepository) BeginTx(ctx context.Context) (repository.PlantTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.PlantTx), args.Error(1)
}

// MockPlantTx implements repository.PlantTx for testing
type MockPlantTx struct {
	mock.Mock
}

func (m *MockPlantTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPlantTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPlantTx) GetPlantWithLock(ctx context.Context, plantID string) (*domain.Plant, error) {
	args := m.Called(ctx, plantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plant), args.Error(1)
}

func (m *MockPlantTx) UpdatePlant(ctx context.Context, plant *domain.Plant) error {
	args := m.Called(ctx, plant)
	return args.Error(0)
}

func (m *MockPlantTx) MarkPaymentConsumed(ctx context.Context, txHash, purpose string) error {
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
