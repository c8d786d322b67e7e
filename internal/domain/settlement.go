package domain

import "time"

// SettlementResult is the outcome of converting elapsed farming time into
// reward units. All amounts are unrounded; display rounding happens at the
// HTTP boundary only, so repeated small settlements never compound error.
type SettlementResult struct {
	GrossRewards     float64
	Fee              float64
	NetRewards       float64
	ElapsedSeconds   int64
	NewLastSettledAt time.Time
}

// ClaimResponse is the caller-facing payload for a successful claim
type ClaimResponse struct {
	GrossRewards  float64 `json:"gross_rewards"`
	Fee           float64 `json:"fee"`
	NetRewards    float64 `json:"net_rewards"`
	SeasonDay     int     `json:"season_day"`
	FeePercentage int     `json:"fee_percentage"`
	Message       string  `json:"message"`
}

// ApplyConsumablesResponse reports the result of activating consumables
type ApplyConsumablesResponse struct {
	PlantID          string           `json:"plant_id"`
	Phase            FarmingPhase     `json:"phase"`
	MissingTypes     []ConsumableType `json:"missing_types,omitempty"`
	ExpiresAt        *time.Time       `json:"expires_at,omitempty"`
	ForfeitedSeconds int64            `json:"forfeited_seconds,omitempty"`
	Message          string           `json:"message"`
}

// FarmingStatusResponse describes a plant's current farming state
type FarmingStatusResponse struct {
	PlantID          string           `json:"plant_id"`
	Phase            FarmingPhase     `json:"phase"`
	MissingTypes     []ConsumableType `json:"missing_types,omitempty"`
	SecondsRemaining int64            `json:"seconds_remaining"`
	SeasonDay        int              `json:"season_day,omitempty"`
	FeePercentage    int              `json:"fee_percentage"`
	UnsettledSeconds int64            `json:"unsettled_seconds"`
}

// MergePlantsResponse reports the surviving plant after a merge
type MergePlantsResponse struct {
	SurvivorID string `json:"survivor_id"`
	BurnedID   string `json:"burned_id"`
	NewPower   int    `json:"new_power"`
	Message    string `json:"message"`
}

// BuyConsumablesResponse reports a shop purchase
type BuyConsumablesResponse struct {
	Type     ConsumableType `json:"type"`
	Quantity int            `json:"quantity"`
	Balance  int            `json:"balance"`
	Message  string         `json:"message"`
}
