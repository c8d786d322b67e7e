// Package gameconfig loads the static season and reward configuration.
// The farming core treats everything here as immutable input; it never
// computes or mutates these values.
package gameconfig

import (
	"errors"
	"fmt"
	"time"

	"github.com/petalforge/grovetender/internal/domain"
)

// Sentinel errors for the config loader
var (
	ErrInvalidConfig = errors.New("invalid game configuration")
)

// Config is the parsed farming configuration file
type Config struct {
	Version string `json:"version"`

	Season struct {
		StartTime    time.Time `json:"start_time"`
		DurationDays int       `json:"duration_days"`
	} `json:"season"`

	FeeSchedule []domain.FeeScheduleEntry `json:"fee_schedule"`

	// DailyRewards is reward units per day by rarity
	DailyRewards map[domain.Rarity]float64 `json:"daily_rewards"`

	ConsumableDurationHours int `json:"consumable_duration_hours"`

	// Prices are whole-token decimal strings in LEAF
	Prices struct {
		ActivationPerItem string                           `json:"activation_per_item"`
		ClaimFee          string                           `json:"claim_fee"`
		Merge             string                           `json:"merge"`
		Consumables       map[domain.ConsumableType]string `json:"consumables"`
	} `json:"prices"`
}

// SeasonWindow returns the configured season as a domain value
func (c *Config) SeasonWindow() domain.SeasonWindow {
	return domain.SeasonWindow{
		StartTime:    c.Season.StartTime,
		DurationDays: c.Season.DurationDays,
	}
}

// ConsumableDuration returns how long one applied consumable stays active
func (c *Config) ConsumableDuration() time.Duration {
	return time.Duration(c.ConsumableDurationHours) * time.Hour
}

// DailyReward returns the reward rate for a rarity
func (c *Config) DailyReward(r domain.Rarity) (float64, error) {
	reward, ok := c.DailyRewards[r]
	if !ok {
		return 0, fmt.Errorf("%s: %q", domain.ErrMsgInvalidRarity, r)
	}
	return reward, nil
}

// Validate checks the configuration for semantic errors the JSON schema
// cannot express
func (c *Config) Validate() error {
	if c.Season.DurationDays <= 0 {
		return fmt.Errorf("%w: season duration_days must be positive", ErrInvalidConfig)
	}
	if len(c.FeeSchedule) != c.Season.DurationDays {
		return fmt.Errorf("%w: fee_schedule must have one entry per season day", ErrInvalidConfig)
	}
	if c.ConsumableDurationHours <= 0 {
		return fmt.Errorf("%w: consumable_duration_hours must be positive", ErrInvalidConfig)
	}

	for _, rarity := range []domain.Rarity{domain.RarityUncommon, domain.RarityRare, domain.RarityEpic, domain.RarityLegendary} {
		reward, ok := c.DailyRewards[rarity]
		if !ok {
			return fmt.Errorf("%w: missing daily reward for rarity %q", ErrInvalidConfig, rarity)
		}
		if reward <= 0 {
			return fmt.Errorf("%w: daily reward for rarity %q must be positive", ErrInvalidConfig, rarity)
		}
	}

	for _, ct := range domain.RequiredConsumableTypes {
		if _, ok := c.Prices.Consumables[ct]; !ok {
			return fmt.Errorf("%w: missing shop price for consumable %q", ErrInvalidConfig, ct)
		}
	}

	return nil
}
