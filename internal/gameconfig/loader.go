package gameconfig

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/petalforge/grovetender/internal/validation"
)

// FarmingSchemaPath is the JSON schema the config file must satisfy
const FarmingSchemaPath = "configs/schemas/farming.schema.json"

// Loader reads and validates the farming configuration file
type Loader interface {
	Load(path string) (*Config, error)
}

type loader struct {
	schemaValidator validation.SchemaValidator
	schemaPath      string
}

// NewLoader creates a Loader validating against the default schema path
func NewLoader() Loader {
	return &loader{
		schemaValidator: validation.NewSchemaValidator(),
		schemaPath:      FarmingSchemaPath,
	}
}

// Load reads, schema-checks, and semantically validates a config file
func (l *loader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := l.schemaValidator.ValidateBytes(data, l.schemaPath); err != nil {
		return nil, fmt.Errorf("schema validation failed for %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
