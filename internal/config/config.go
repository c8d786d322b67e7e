package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store selects the persistence backend
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config holds the application configuration
type Config struct {
	Port        int
	Environment string // "dev", "staging", "prod"
	LogLevel    string
	LogFormat   string // "json", "text"
	LogDir      string
	APIKey      string // API key for authentication
	Store       string // "postgres" or "memory"

	// TrustedProxies are proxy IPs whose X-Forwarded-For headers are honored
	TrustedProxies []string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	ChainRPCURL     string        // EVM JSON-RPC endpoint
	ChainTimeout    time.Duration // per-request RPC timeout
	TokenAddress    string        // LEAF token contract
	TreasuryAddress string        // transfer recipient payments must credit

	SeasonStart    time.Time // opening instant of the current season
	GameConfigPath string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Environment:     getEnv("ENVIRONMENT", "dev"),
		LogLevel:        getEnv("LOG_LEVEL", "INFO"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		LogDir:          getEnv("LOG_DIR", "logs"),
		APIKey:          getEnv("API_KEY", ""),
		Store:           getEnv("STORE", StorePostgres),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", "postgres"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBName:          getEnv("DB_NAME", "grovetender"),
		ChainRPCURL:     getEnv("CHAIN_RPC_URL", ""),
		TokenAddress:    getEnv("TOKEN_ADDRESS", ""),
		TreasuryAddress: getEnv("TREASURY_ADDRESS", ""),
		GameConfigPath:  getEnv("GAME_CONFIG_PATH", ConfigPathFarming),
	}

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, p)
			}
		}
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	timeoutStr := getEnv("CHAIN_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid CHAIN_TIMEOUT value: %w", err)
	}
	cfg.ChainTimeout = timeout

	seasonStartStr := getEnv("SEASON_START", "")
	if seasonStartStr == "" {
		return nil, fmt.Errorf("SEASON_START environment variable must be set (RFC 3339)")
	}
	seasonStart, err := time.Parse(time.RFC3339, seasonStartStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SEASON_START value: %w", err)
	}
	cfg.SeasonStart = seasonStart.UTC()

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	if cfg.Store != StorePostgres && cfg.Store != StoreMemory {
		return nil, fmt.Errorf("invalid STORE value %q: must be %q or %q", cfg.Store, StorePostgres, StoreMemory)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
