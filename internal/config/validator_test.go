package config

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEnv_MissingVersion(t *testing.T) {
	// Unset ENV_SCHEMA_VERSION
	os.Unsetenv("ENV_SCHEMA_VERSION")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION is not set")
}

func TestValidateEnv_VersionMismatch(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", "0.9")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION mismatch")
	assert.Contains(t, err.Error(), "expected 1.0, got 0.9")
}

func TestValidateEnv_MissingRequired(t *testing.T) {
	clearEnvVars(t)
	// Set version but leave others unset
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required environment variables")
	assert.Contains(t, err.Error(), "CHAIN_RPC_URL")
}

func TestValidateEnv_MemoryStoreSkipsDBVars(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("STORE", StoreMemory)
	t.Setenv("API_KEY", "key")
	t.Setenv("CHAIN_RPC_URL", "https://rpc.example.com")
	t.Setenv("TOKEN_ADDRESS", "0x1111111111111111111111111111111111111111")
	t.Setenv("TREASURY_ADDRESS", "0x2222222222222222222222222222222222222222")
	t.Setenv("SEASON_START", "2026-09-01T00:00:00Z")

	err := ValidateEnv()
	assert.NoError(t, err, "memory store should not require DB variables")
}

func TestValidateEnv_PostgresRequiresDBVars(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("API_KEY", "key")
	t.Setenv("CHAIN_RPC_URL", "https://rpc.example.com")
	t.Setenv("TOKEN_ADDRESS", "0x1111111111111111111111111111111111111111")
	t.Setenv("TREASURY_ADDRESS", "0x2222222222222222222222222222222222222222")
	t.Setenv("SEASON_START", "2026-09-01T00:00:00Z")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_USER")
}

func TestValidateEnvWithWarnings_InsecureDefaults(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("STORE", StoreMemory)
	t.Setenv("API_KEY", "generate_with_openssl_rand_hex_32")
	t.Setenv("CHAIN_RPC_URL", "https://rpc.example.com")
	t.Setenv("TOKEN_ADDRESS", "0x1111111111111111111111111111111111111111")
	t.Setenv("TREASURY_ADDRESS", "0x2222222222222222222222222222222222222222")
	t.Setenv("SEASON_START", "2026-09-01T00:00:00Z")

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err)

	var foundAPIKey, foundMemory bool
	for _, w := range warnings {
		if strings.Contains(w, "API_KEY") {
			foundAPIKey = true
		}
		if strings.Contains(w, "memory") {
			foundMemory = true
		}
	}
	assert.True(t, foundAPIKey, "should warn about example API_KEY")
	assert.True(t, foundMemory, "should warn about memory store")
}
