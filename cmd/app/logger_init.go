package main

import (
	"github.com/petalforge/grovetender/internal/config"
	"github.com/petalforge/grovetender/internal/handler"
	"github.com/petalforge/grovetender/internal/logger"
)

// initLogger initializes the logger using centralized app configuration
func initLogger(cfg *config.Config) {
	// Determine if we should add source info (only in dev)
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"

	logger.Setup(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "grovetender",
		Version:     handler.Version,
		Environment: cfg.Environment,
		AddSource:   addSource,
	})
}
