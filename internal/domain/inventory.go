package domain

// ConsumableInventory holds a user's consumable quantities, keyed by type.
// Deduction happens atomically inside the same transaction that mutates
// farming state, before any consumable takes effect.
type ConsumableInventory struct {
	OwnerID    string                 `json:"owner_id"`
	Quantities map[ConsumableType]int `json:"quantities"`
}

// Has reports whether the inventory covers one unit of each given type
func (inv *ConsumableInventory) Has(types []ConsumableType) bool {
	for _, t := range types {
		if inv.Quantities[t] < 1 {
			return false
		}
	}
	return true
}
