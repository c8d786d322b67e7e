package domain

import "time"

// Rarity classifies a plant's reward tier
type Rarity string

const (
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Valid reports whether the rarity is one of the four known tiers
func (r Rarity) Valid() bool {
	switch r {
	case RarityUncommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}

// PlantStatus tracks whether a plant is still in play
type PlantStatus string

const (
	PlantStatusActive PlantStatus = "active"
	PlantStatusBurned PlantStatus = "burned"
)

// Plant represents a collectible plant asset
// Ownership and inventory bookkeeping live in the plant repository;
// the farming core only reads Rarity for reward-rate lookup.
type Plant struct {
	ID        string      `json:"id"`
	OwnerID   string      `json:"owner_id"`
	Rarity    Rarity      `json:"rarity"`
	Power     int         `json:"power"`
	Status    PlantStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
