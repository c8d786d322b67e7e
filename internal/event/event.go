// Package event provides the in-process event bus used to decouple side
// effects (notifications, stats) from the transactional core flows.
package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/petalforge/grovetender/internal/domain"
	"github.com/petalforge/grovetender/internal/metrics"
)

// EventSchemaVersion is the current event schema version
const EventSchemaVersion = "1.0"

// Type represents the type of an event
type Type string

// Known event types
const (
	ConsumablesApplied Type = domain.EventTypeConsumablesApplied
	ClaimSettled       Type = domain.EventTypeClaimSettled
	PlantsMerged       Type = domain.EventTypePlantsMerged
	ConsumablesBought  Type = domain.EventTypeConsumablesBought
)

// Event represents a generic event in the system
type Event struct {
	Version string `json:"version"`
	Type    Type   `json:"type"`
	Payload any    `json:"payload"`
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the event bus. Handlers run
// synchronously on the publisher's goroutine.
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	metrics.EventsPublished.WithLabelValues(string(event.Type)).Inc()

	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			metrics.EventHandlerErrors.WithLabelValues(string(event.Type)).Inc()
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("encountered %d errors while handling event %s: %v", len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// NewClaimSettledEvent creates a claim.settled event with a typed payload
func NewClaimSettledEvent(plantID, ownerID string, gross, net float64, seasonDay, feePct int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ClaimSettled,
		Payload: domain.ClaimSettledPayload{
			PlantID:       plantID,
			OwnerID:       ownerID,
			GrossRewards:  gross,
			NetRewards:    net,
			SeasonDay:     seasonDay,
			FeePercentage: feePct,
			Timestamp:     time.Now().Unix(),
		},
	}
}

// NewConsumablesAppliedEvent creates a farm.applied event with a typed payload
func NewConsumablesAppliedEvent(plantID, ownerID string, types []domain.ConsumableType, phase domain.FarmingPhase) Event {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    ConsumablesApplied,
		Payload: domain.ConsumablesAppliedPayload{
			PlantID:   plantID,
			OwnerID:   ownerID,
			Types:     names,
			Phase:     string(phase),
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewPlantsMergedEvent creates a plants.merged event with a typed payload
func NewPlantsMergedEvent(survivorID, burnedID, ownerID string, newPower int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PlantsMerged,
		Payload: domain.PlantsMergedPayload{
			SurvivorID: survivorID,
			BurnedID:   burnedID,
			OwnerID:    ownerID,
			NewPower:   newPower,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewConsumablesBoughtEvent creates a shop.purchased event with a typed payload
func NewConsumablesBoughtEvent(ownerID string, ctype domain.ConsumableType, quantity int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ConsumablesBought,
		Payload: domain.ConsumablesBoughtPayload{
			OwnerID:   ownerID,
			Type:      string(ctype),
			Quantity:  quantity,
			Timestamp: time.Now().Unix(),
		},
	}
}
