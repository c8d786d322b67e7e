package domain

import "time"

// ConsumableType identifies a time-limited consumable effect
type ConsumableType string

const (
	ConsumableWater      ConsumableType = "water"
	ConsumableFertilizer ConsumableType = "fertilizer"
	ConsumableAntiBug    ConsumableType = "antibug"
)

// RequiredConsumableTypes lists the three distinct consumables a plant
// needs simultaneously to be farming
var RequiredConsumableTypes = []ConsumableType{
	ConsumableWater,
	ConsumableFertilizer,
	ConsumableAntiBug,
}

// Valid reports whether the type is one of the three known consumables
func (t ConsumableType) Valid() bool {
	switch t {
	case ConsumableWater, ConsumableFertilizer, ConsumableAntiBug:
		return true
	}
	return false
}

// ActiveItemRecord is a consumable currently applied to a plant
type ActiveItemRecord struct {
	Type      ConsumableType `json:"type"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// FarmingState tracks which consumables are in effect on a plant and the
// settlement watermark. Rarity is snapshotted at activation so later plant
// mutations cannot retroactively change accrued rewards.
//
// LastSettledAt is nil until the first successful settlement and is
// monotonically non-decreasing afterwards. The persistence layer must
// serialize concurrent settlements for the same plant (row lock or
// equivalent single-writer transaction); a lost update here credits the
// same interval twice.
type FarmingState struct {
	PlantID          string             `json:"plant_id"`
	OwnerID          string             `json:"owner_id"`
	Rarity           Rarity             `json:"rarity"`
	ActiveItems      []ActiveItemRecord `json:"active_items"`
	FarmingStartedAt time.Time          `json:"farming_started_at"`
	LastSettledAt    *time.Time         `json:"last_settled_at,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// FarmingPhase is the coarse lifecycle phase of a farming state
type FarmingPhase string

const (
	PhaseIdle    FarmingPhase = "idle"    // no active records
	PhasePartial FarmingPhase = "partial" // 1-2 active records
	PhaseActive  FarmingPhase = "active"  // all 3, none expired
	PhaseExpired FarmingPhase = "expired" // all 3 present, at least one lapsed
)
