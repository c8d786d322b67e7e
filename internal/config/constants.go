package config

const (
	// Configuration file paths
	ConfigPathFarming       = "configs/farming.json"
	ConfigPathFarmingSchema = "configs/schemas/farming.schema.json"
)
