// Package settlement converts elapsed farming time into reward units under
// the season's fee schedule and advances the settlement watermark.
package settlement

import (
	"fmt"
	"time"

	"github.com/petalforge/grovetender/internal/domain"
	"github.com/petalforge/grovetender/internal/farming"
)

const secondsPerDay = 86400

// Engine computes settlements. It is pure and deterministic given its
// inputs: no I/O, no locking. The caller must read the farming state,
// settle, and write the new watermark back inside one serialized
// transaction per plant, or the same interval can be credited twice.
type Engine struct {
	dailyRewards map[domain.Rarity]float64
}

// NewEngine creates an engine from the per-rarity daily reward table
func NewEngine(dailyRewards map[domain.Rarity]float64) *Engine {
	table := make(map[domain.Rarity]float64, len(dailyRewards))
	for rarity, reward := range dailyRewards {
		table[rarity] = reward
	}
	return &Engine{dailyRewards: table}
}

// Settle computes the reward for the interval between the state's baseline
// and min(now, earliest consumable expiry).
//
// Amounts are unrounded; rounding to display precision belongs at the
// caller boundary only.
func (e *Engine) Settle(state *domain.FarmingState, now time.Time, feePercentage int) (*domain.SettlementResult, error) {
	// All three records must be present, expired or not. Fewer means the
	// plant never reached farming since the records were last overwritten.
	if len(state.ActiveItems) != len(domain.RequiredConsumableTypes) {
		return nil, domain.ErrNotFarming
	}

	earliestExpiry, _ := farming.EarliestExpiry(state)
	if !now.Before(earliestExpiry) {
		// Fully lapsed with no remaining active window: the unclaimed
		// accrual up to the expiry instant is forfeited.
		return nil, domain.ErrFarmingExpired
	}

	effectiveEnd := now
	if earliestExpiry.Before(effectiveEnd) {
		effectiveEnd = earliestExpiry
	}

	baseline := state.FarmingStartedAt
	if state.LastSettledAt != nil {
		baseline = *state.LastSettledAt
	}

	elapsed := effectiveEnd.Sub(baseline)
	if elapsed <= 0 {
		return nil, domain.ErrNothingToSettle
	}

	dailyReward, ok := e.dailyRewards[state.Rarity]
	if !ok {
		return nil, fmt.Errorf("%s: %q", domain.ErrMsgInvalidRarity, state.Rarity)
	}

	if feePercentage < 0 {
		feePercentage = 0
	} else if feePercentage > 100 {
		feePercentage = 100
	}

	grossRewards := dailyReward * elapsed.Seconds() / secondsPerDay
	fee := grossRewards * float64(feePercentage) / 100
	netRewards := grossRewards - fee
	if netRewards < 0 {
		netRewards = 0
	}

	return &domain.SettlementResult{
		GrossRewards:     grossRewards,
		Fee:              fee,
		NetRewards:       netRewards,
		ElapsedSeconds:   int64(elapsed / time.Second),
		NewLastSettledAt: effectiveEnd,
	}, nil
}
