package farming

import (
	"fmt"
	"time"

	"github.com/petalforge/grovetender/internal/domain"
)

// ValidateItemSet checks a requested consumable set: 1 to 3 distinct,
// known types. Cardinality and duplicate violations are validation errors,
// not state errors.
func ValidateItemSet(types []domain.ConsumableType) error {
	if len(types) == 0 {
		return fmt.Errorf("%w: no consumables supplied", domain.ErrInvalidItemSet)
	}
	if len(types) > len(domain.RequiredConsumableTypes) {
		return fmt.Errorf("%w: at most %d consumables per application", domain.ErrInvalidItemSet, len(domain.RequiredConsumableTypes))
	}

	seen := make(map[domain.ConsumableType]bool, len(types))
	for _, t := range types {
		if !t.Valid() {
			return fmt.Errorf("%w: unknown type %q", domain.ErrInvalidItemSet, t)
		}
		if seen[t] {
			return fmt.Errorf("%w: duplicate type %q", domain.ErrInvalidItemSet, t)
		}
		seen[t] = true
	}
	return nil
}

// Apply activates the supplied consumables on the state at the given
// instant. Each supplied type expires duration later, replacing any prior
// record of the same type. Inventory is assumed already deducted by the
// caller's transaction.
//
// When the plant was not farming at the activation instant, the farming
// start resets and the settlement watermark is pulled up to the activation
// instant so the dormant gap can never be credited. The watermark only
// moves forward.
func Apply(state *domain.FarmingState, types []domain.ConsumableType, at time.Time, duration time.Duration) {
	wasActive := IsActive(state, at)

	expiresAt := at.Add(duration)
	for _, t := range types {
		replaced := false
		for i := range state.ActiveItems {
			if state.ActiveItems[i].Type == t {
				state.ActiveItems[i].ExpiresAt = expiresAt
				replaced = true
				break
			}
		}
		if !replaced {
			state.ActiveItems = append(state.ActiveItems, domain.ActiveItemRecord{
				Type:      t,
				ExpiresAt: expiresAt,
			})
		}
	}

	if !wasActive {
		state.FarmingStartedAt = at
		if state.LastSettledAt != nil && state.LastSettledAt.Before(at) {
			settled := at
			state.LastSettledAt = &settled
		}
	}
}

// EarliestExpiry returns the soonest expiry across active records, and
// false when no records exist
func EarliestExpiry(state *domain.FarmingState) (time.Time, bool) {
	if len(state.ActiveItems) == 0 {
		return time.Time{}, false
	}
	earliest := state.ActiveItems[0].ExpiresAt
	for _, rec := range state.ActiveItems[1:] {
		if rec.ExpiresAt.Before(earliest) {
			earliest = rec.ExpiresAt
		}
	}
	return earliest, true
}

// IsActive reports whether the plant is farming at the given instant:
// exactly three records, covering the three distinct required types, every
// one strictly unexpired.
func IsActive(state *domain.FarmingState, now time.Time) bool {
	if len(state.ActiveItems) != len(domain.RequiredConsumableTypes) {
		return false
	}

	unexpired := make(map[domain.ConsumableType]bool, len(state.ActiveItems))
	for _, rec := range state.ActiveItems {
		if now.Before(rec.ExpiresAt) {
			unexpired[rec.Type] = true
		}
	}

	for _, required := range domain.RequiredConsumableTypes {
		if !unexpired[required] {
			return false
		}
	}
	return true
}

// TimeRemaining returns how long the plant stays farming from now, zero if
// it is not farming
func TimeRemaining(state *domain.FarmingState, now time.Time) time.Duration {
	if !IsActive(state, now) {
		return 0
	}
	earliest, _ := EarliestExpiry(state)
	return earliest.Sub(now)
}

// MissingTypes returns the required types without a currently-unexpired
// record, in the canonical order
func MissingTypes(state *domain.FarmingState, now time.Time) []domain.ConsumableType {
	covered := make(map[domain.ConsumableType]bool, len(state.ActiveItems))
	for _, rec := range state.ActiveItems {
		if now.Before(rec.ExpiresAt) {
			covered[rec.Type] = true
		}
	}

	var missing []domain.ConsumableType
	for _, required := range domain.RequiredConsumableTypes {
		if !covered[required] {
			missing = append(missing, required)
		}
	}
	return missing
}

// Phase returns the coarse lifecycle phase at the given instant
func Phase(state *domain.FarmingState, now time.Time) domain.FarmingPhase {
	switch {
	case len(state.ActiveItems) == 0:
		return domain.PhaseIdle
	case len(state.ActiveItems) < len(domain.RequiredConsumableTypes):
		return domain.PhasePartial
	case IsActive(state, now):
		return domain.PhaseActive
	default:
		return domain.PhaseExpired
	}
}

// UnsettledSeconds returns the accruable interval not yet covered by the
// settlement watermark: from the baseline up to min(now, earliestExpiry).
// Zero when the plant holds fewer than three records or nothing accrued.
func UnsettledSeconds(state *domain.FarmingState, now time.Time) int64 {
	if len(state.ActiveItems) != len(domain.RequiredConsumableTypes) {
		return 0
	}

	earliest, _ := EarliestExpiry(state)
	effectiveEnd := now
	if earliest.Before(effectiveEnd) {
		effectiveEnd = earliest
	}

	baseline := state.FarmingStartedAt
	if state.LastSettledAt != nil {
		baseline = *state.LastSettledAt
	}

	elapsed := int64(effectiveEnd.Sub(baseline) / time.Second)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}
