package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petalforge/grovetender/internal/domain"
)

func TestMemoryBus_PublishReachesAllSubscribers(t *testing.T) {
	bus := NewMemoryBus()

	var calls []string
	bus.Subscribe(ClaimSettled, func(_ context.Context, e Event) error {
		calls = append(calls, "first:"+string(e.Type))
		return nil
	})
	bus.Subscribe(ClaimSettled, func(_ context.Context, e Event) error {
		calls = append(calls, "second:"+string(e.Type))
		return nil
	})

	err := bus.Publish(context.Background(), Event{Version: EventSchemaVersion, Type: ClaimSettled})
	require.NoError(t, err)
	assert.Equal(t, []string{"first:claim.settled", "second:claim.settled"}, calls)
}

func TestMemoryBus_NoSubscribersIsNoop(t *testing.T) {
	bus := NewMemoryBus()

	err := bus.Publish(context.Background(), Event{Type: PlantsMerged})
	assert.NoError(t, err)
}

func TestMemoryBus_HandlerErrorsAggregated(t *testing.T) {
	bus := NewMemoryBus()

	var secondRan bool
	bus.Subscribe(ConsumablesApplied, func(_ context.Context, _ Event) error {
		return errors.New("notify failed")
	})
	bus.Subscribe(ConsumablesApplied, func(_ context.Context, _ Event) error {
		secondRan = true
		return nil
	})

	err := bus.Publish(context.Background(), Event{Type: ConsumablesApplied})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notify failed")
	assert.True(t, secondRan, "a failing handler must not block later handlers")
}

func TestMemoryBus_SubscriptionIsPerType(t *testing.T) {
	bus := NewMemoryBus()

	var called bool
	bus.Subscribe(ClaimSettled, func(_ context.Context, _ Event) error {
		called = true
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), Event{Type: ConsumablesBought}))
	assert.False(t, called)
}

func TestNewClaimSettledEvent(t *testing.T) {
	e := NewClaimSettledEvent("plant-1", "owner-1", 0.08333, 0.066667, 2, 44)

	assert.Equal(t, EventSchemaVersion, e.Version)
	assert.Equal(t, ClaimSettled, e.Type)

	payload, ok := e.Payload.(domain.ClaimSettledPayload)
	require.True(t, ok)
	assert.Equal(t, "plant-1", payload.PlantID)
	assert.Equal(t, "owner-1", payload.OwnerID)
	assert.InDelta(t, 0.08333, payload.GrossRewards, 1e-9)
	assert.InDelta(t, 0.066667, payload.NetRewards, 1e-9)
	assert.Equal(t, 2, payload.SeasonDay)
	assert.Equal(t, 44, payload.FeePercentage)
	assert.NotZero(t, payload.Timestamp)
}

func TestNewConsumablesAppliedEvent(t *testing.T) {
	e := NewConsumablesAppliedEvent("plant-1", "owner-1",
		[]domain.ConsumableType{domain.ConsumableWater, domain.ConsumableFertilizer},
		domain.PhasePartial)

	payload, ok := e.Payload.(domain.ConsumablesAppliedPayload)
	require.True(t, ok)
	assert.Equal(t, []string{"water", "fertilizer"}, payload.Types)
	assert.Equal(t, string(domain.PhasePartial), payload.Phase)
}

func TestNewPlantsMergedEvent(t *testing.T) {
	e := NewPlantsMergedEvent("survivor", "burned", "owner-1", 7)

	payload, ok := e.Payload.(domain.PlantsMergedPayload)
	require.True(t, ok)
	assert.Equal(t, "survivor", payload.SurvivorID)
	assert.Equal(t, "burned", payload.BurnedID)
	assert.Equal(t, 7, payload.NewPower)
}

func TestNewConsumablesBoughtEvent(t *testing.T) {
	e := NewConsumablesBoughtEvent("owner-1", domain.ConsumableAntiBug, 3)

	payload, ok := e.Payload.(domain.ConsumablesBoughtPayload)
	require.True(t, ok)
	assert.Equal(t, "antibug", payload.Type)
	assert.Equal(t, 3, payload.Quantity)
}
