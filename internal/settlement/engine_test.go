package settlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petalforge/grovetender/internal/domain"
)

func fullyActiveState(now time.Time, rarity domain.Rarity, baseline, expiry time.Time) *domain.FarmingState {
	return &domain.FarmingState{
		PlantID: "plant-1",
		OwnerID: "owner-1",
		Rarity:  rarity,
		ActiveItems: []domain.ActiveItemRecord{
			{Type: domain.ConsumableWater, ExpiresAt: expiry},
			{Type: domain.ConsumableFertilizer, ExpiresAt: expiry},
			{Type: domain.ConsumableAntiBug, ExpiresAt: expiry},
		},
		FarmingStartedAt: baseline,
	}
}

func TestEngine_Settle_AccruesProRata(t *testing.T) {
	engine := NewEngine(map[domain.Rarity]float64{domain.RarityRare: 2})

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	state := fullyActiveState(now, domain.RarityRare, now.Add(-time.Hour), now.Add(time.Hour))

	result, err := engine.Settle(state, now, 20)
	require.NoError(t, err)

	assert.Equal(t, int64(3600), result.ElapsedSeconds)
	assert.InDelta(t, 0.08333, result.GrossRewards, 0.0001)
	assert.InDelta(t, 0.016667, result.Fee, 0.0001)
	assert.InDelta(t, 0.066667, result.NetRewards, 0.0001)
	assert.Equal(t, now, result.NewLastSettledAt)
}

func TestEngine_Settle_WatermarkReplacesStartBaseline(t *testing.T) {
	engine := NewEngine(map[domain.Rarity]float64{domain.RarityRare: 2})

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	state := fullyActiveState(now, domain.RarityRare, now.Add(-3*time.Hour), now.Add(time.Hour))
	settled := now.Add(-30 * time.Minute)
	state.LastSettledAt = &settled

	result, err := engine.Settle(state, now, 0)
	require.NoError(t, err)

	// Only the half hour since the watermark accrues, not the full 3 hours
	assert.Equal(t, int64(1800), result.ElapsedSeconds)
	assert.InDelta(t, 2*1800.0/86400, result.GrossRewards, 1e-9)
}

func TestEngine_Settle_CapsAtEarliestExpiry(t *testing.T) {
	engine := NewEngine(map[domain.Rarity]float64{domain.RarityEpic: 8})

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	state := fullyActiveState(now, domain.RarityEpic, now.Add(-2*time.Hour), now.Add(time.Hour))
	// One consumable expires sooner than the others
	state.ActiveItems[1].ExpiresAt = now.Add(10 * time.Minute)

	result, err := engine.Settle(state, now, 0)
	require.NoError(t, err)

	// Accrual runs to now, the earliest expiry is still ahead
	assert.Equal(t, int64(7200), result.ElapsedSeconds)
	assert.Equal(t, now, result.NewLastSettledAt)
}

func TestEngine_Settle_NotFarming(t *testing.T) {
	engine := NewEngine(map[domain.Rarity]float64{domain.RarityRare: 2})
	now := time.Now().UTC()

	tests := []struct {
		name  string
		items []domain.ActiveItemRecord
	}{
		{name: "no active records", items: nil},
		{name: "partial set", items: []domain.ActiveItemRecord{
			{Type: domain.ConsumableWater, ExpiresAt: now.Add(time.Hour)},
			{Type: domain.ConsumableFertilizer, ExpiresAt: now.Add(time.Hour)},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := &domain.FarmingState{
				PlantID:          "plant-1",
				Rarity:           domain.RarityRare,
				ActiveItems:      tt.items,
				FarmingStartedAt: now.Add(-time.Hour),
			}

			_, err := engine.Settle(state, now, 0)
			assert.ErrorIs(t, err, domain.ErrNotFarming)
		})
	}
}

func TestEngine_Settle_ExpiredForfeitsAccrual(t *testing.T) {
	engine := NewEngine(map[domain.Rarity]float64{domain.RarityRare: 2})

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	// Lapsed an hour ago with substantial unclaimed accrual before that
	state := fullyActiveState(now, domain.RarityRare, now.Add(-5*time.Hour), now.Add(-time.Hour))

	_, err := engine.Settle(state, now, 0)
	assert.ErrorIs(t, err, domain.ErrFarmingExpired)
}

func TestEngine_Settle_NothingToSettle(t *testing.T) {
	engine := NewEngine(map[domain.Rarity]float64{domain.RarityRare: 2})

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	state := fullyActiveState(now, domain.RarityRare, now.Add(-time.Hour), now.Add(time.Hour))
	settled := now
	state.LastSettledAt = &settled

	_, err := engine.Settle(state, now, 0)
	assert.ErrorIs(t, err, domain.ErrNothingToSettle)
}

func TestEngine_Settle_SettleTwiceAccruesNothingExtra(t *testing.T) {
	engine := NewEngine(map[domain.Rarity]float64{domain.RarityRare: 2})

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	state := fullyActiveState(now, domain.RarityRare, now.Add(-time.Hour), now.Add(time.Hour))

	first, err := engine.Settle(state, now, 0)
	require.NoError(t, err)
	state.LastSettledAt = &first.NewLastSettledAt

	// Same instant again: the watermark already covers the interval
	_, err = engine.Settle(state, now, 0)
	assert.ErrorIs(t, err, domain.ErrNothingToSettle)

	// A moment later only the new sliver accrues
	later := now.Add(time.Minute)
	second, err := engine.Settle(state, later, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(60), second.ElapsedSeconds)
}

func TestEngine_Settle_UnknownRarity(t *testing.T) {
	engine := NewEngine(map[domain.Rarity]float64{domain.RarityRare: 2})

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	state := fullyActiveState(now, domain.Rarity("mythic"), now.Add(-time.Hour), now.Add(time.Hour))

	_, err := engine.Settle(state, now, 0)
	assert.Error(t, err)
}

func TestEngine_Settle_FeeClamping(t *testing.T) {
	engine := NewEngine(map[domain.Rarity]float64{domain.RarityRare: 2})
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		feePct  int
		wantNet float64
	}{
		{name: "negative fee treated as zero", feePct: -10, wantNet: 2 * 3600.0 / 86400},
		{name: "fee over 100 takes everything", feePct: 150, wantNet: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := fullyActiveState(now, domain.RarityRare, now.Add(-time.Hour), now.Add(time.Hour))

			result, err := engine.Settle(state, now, tt.feePct)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantNet, result.NetRewards, 1e-9)
		})
	}
}
