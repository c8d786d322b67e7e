package gameconfig

import (
	"time"

	"github.com/petalforge/grovetender/internal/domain"
)

// DefaultFeeSchedule returns the fixed 10-day descending claim fee table:
// day 1 costs 50%, day 10 costs nothing.
func DefaultFeeSchedule() []domain.FeeScheduleEntry {
	return []domain.FeeScheduleEntry{
		{Day: 1, FeePercent: 50},
		{Day: 2, FeePercent: 44},
		{Day: 3, FeePercent: 38},
		{Day: 4, FeePercent: 32},
		{Day: 5, FeePercent: 27},
		{Day: 6, FeePercent: 21},
		{Day: 7, FeePercent: 16},
		{Day: 8, FeePercent: 10},
		{Day: 9, FeePercent: 5},
		{Day: 10, FeePercent: 0},
	}
}

// DefaultDailyRewards returns reward units per day by rarity
func DefaultDailyRewards() map[domain.Rarity]float64 {
	return map[domain.Rarity]float64{
		domain.RarityUncommon:  0.5,
		domain.RarityRare:      2,
		domain.RarityEpic:      8,
		domain.RarityLegendary: 15,
	}
}

// Default returns the built-in configuration, used when no config file is
// supplied (dev mode and tests)
func Default(seasonStart time.Time) *Config {
	cfg := &Config{Version: "1.0"}
	cfg.Season.StartTime = seasonStart
	cfg.Season.DurationDays = 10
	cfg.FeeSchedule = DefaultFeeSchedule()
	cfg.DailyRewards = DefaultDailyRewards()
	cfg.ConsumableDurationHours = 4
	cfg.Prices.ActivationPerItem = "1"
	cfg.Prices.ClaimFee = "0.5"
	cfg.Prices.Merge = "5"
	cfg.Prices.Consumables = map[domain.ConsumableType]string{
		domain.ConsumableWater:      "0.25",
		domain.ConsumableFertilizer: "0.5",
		domain.ConsumableAntiBug:    "0.75",
	}
	return cfg
}
