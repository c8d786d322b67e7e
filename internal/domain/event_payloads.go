package domain

// Event type names published on the in-process bus
const (
	EventTypeConsumablesApplied = "farm.applied"
	EventTypeClaimSettled       = "claim.settled"
	EventTypePlantsMerged       = "plants.merged"
	EventTypeConsumablesBought  = "shop.purchased"
)

// ConsumablesAppliedPayload is the typed payload for farm.applied events
type ConsumablesAppliedPayload struct {
	PlantID   string   `json:"plant_id"`
	OwnerID   string   `json:"owner_id"`
	Types     []string `json:"types"`
	Phase     string   `json:"phase"`
	Timestamp int64    `json:"timestamp"`
}

// ClaimSettledPayload is the typed payload for claim.settled events
type ClaimSettledPayload struct {
	PlantID       string  `json:"plant_id"`
	OwnerID       string  `json:"owner_id"`
	GrossRewards  float64 `json:"gross_rewards"`
	NetRewards    float64 `json:"net_rewards"`
	SeasonDay     int     `json:"season_day"`
	FeePercentage int     `json:"fee_percentage"`
	Timestamp     int64   `json:"timestamp"`
}

// PlantsMergedPayload is the typed payload for plants.merged events
type PlantsMergedPayload struct {
	SurvivorID string `json:"survivor_id"`
	BurnedID   string `json:"burned_id"`
	OwnerID    string `json:"owner_id"`
	NewPower   int    `json:"new_power"`
	Timestamp  int64  `json:"timestamp"`
}

// ConsumablesBoughtPayload is the typed payload for shop.purchased events
type ConsumablesBoughtPayload struct {
	OwnerID   string `json:"owner_id"`
	Type      string `json:"type"`
	Quantity  int    `json:"quantity"`
	Timestamp int64  `json:"timestamp"`
}
