package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/petalforge/grovetender/internal/chain"
	"github.com/petalforge/grovetender/internal/config"
	"github.com/petalforge/grovetender/internal/database"
	"github.com/petalforge/grovetender/internal/database/memory"
	"github.com/petalforge/grovetender/internal/database/postgres"
	"github.com/petalforge/grovetender/internal/event"
	"github.com/petalforge/grovetender/internal/farming"
	"github.com/petalforge/grovetender/internal/gameconfig"
	"github.com/petalforge/grovetender/internal/garden"
	"github.com/petalforge/grovetender/internal/logger"
	"github.com/petalforge/grovetender/internal/payment"
	"github.com/petalforge/grovetender/internal/repository"
	"github.com/petalforge/grovetender/internal/season"
	"github.com/petalforge/grovetender/internal/server"
	"github.com/petalforge/grovetender/internal/settlement"
	"github.com/petalforge/grovetender/internal/shop"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		log.Fatalf("Environment validation failed: %v", err)
	}

	initLogger(cfg)
	for _, w := range warnings {
		slog.Default().Warn(w)
	}

	gameCfg, err := loadGameConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to load game configuration: %v", err)
	}

	clock, err := season.NewClock(gameCfg.SeasonWindow(), gameCfg.FeeSchedule)
	if err != nil {
		log.Fatalf("Invalid season configuration: %v", err)
	}

	rpcClient, err := chain.NewClient(chain.Config{
		RPCURL:  cfg.ChainRPCURL,
		Timeout: cfg.ChainTimeout,
	})
	if err != nil {
		log.Fatalf("Failed to create chain client: %v", err)
	}
	verifier := payment.NewVerifier(rpcClient, cfg.ChainTimeout)
	gate := payment.NewGate(verifier, cfg.TokenAddress, cfg.TreasuryAddress)

	engine := settlement.NewEngine(gameCfg.DailyRewards)

	var (
		farmingRepo   repository.Farming
		plantRepo     repository.Plant
		inventoryRepo repository.Inventory
		dbPool        database.Pool
	)
	switch cfg.Store {
	case config.StorePostgres:
		pool, err := database.NewPool(
			cfg.GetDBConnString(),
			database.DefaultMaxConnections,
			database.DefaultMaxConnIdleTime,
			database.DefaultMaxConnLifetime,
		)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()

		if err := database.InitSchema(context.Background(), pool); err != nil {
			log.Fatalf("Failed to initialize database schema: %v", err)
		}

		farmingRepo = postgres.NewFarmingRepository(pool)
		plantRepo = postgres.NewPlantRepository(pool)
		inventoryRepo = postgres.NewInventoryRepository(pool)
		dbPool = pool
	case config.StoreMemory:
		store := memory.NewStore()
		farmingRepo = memory.NewFarmingRepository(store)
		plantRepo = memory.NewPlantRepository(store)
		inventoryRepo = memory.NewInventoryRepository(store)
	}

	bus := event.NewMemoryBus()
	subscribeEventLogging(bus)

	farmingService := farming.NewService(gate, farmingRepo, plantRepo, gameCfg, clock, bus)
	settlementService := settlement.NewService(gate, farmingRepo, engine, gameCfg, clock, bus)
	gardenService := garden.NewService(gate, plantRepo, gameCfg, bus)
	shopService := shop.NewService(gate, inventoryRepo, gameCfg, bus)

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool,
		farmingService, settlementService, gardenService, shopService)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	slog.Default().Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Default().Error("Graceful shutdown failed", "error", err)
	}
}

// loadGameConfig reads the farming configuration file. SEASON_START from the
// environment always wins over the file's start time so a redeploy can roll
// the season without editing the config.
func loadGameConfig(cfg *config.Config) (*gameconfig.Config, error) {
	gameCfg, err := gameconfig.NewLoader().Load(cfg.GameConfigPath)
	if err != nil {
		if os.IsNotExist(errors.Unwrap(err)) {
			slog.Default().Warn("Game config file not found, using built-in defaults", "path", cfg.GameConfigPath)
			return gameconfig.Default(cfg.SeasonStart), nil
		}
		return nil, err
	}

	gameCfg.Season.StartTime = cfg.SeasonStart
	return gameCfg, nil
}

// subscribeEventLogging attaches an audit-log handler to every event type
func subscribeEventLogging(bus event.Bus) {
	logEvent := func(ctx context.Context, e event.Event) error {
		logger.FromContext(ctx).Info("Event published", "type", e.Type, "payload", e.Payload)
		return nil
	}
	for _, t := range []event.Type{
		event.ConsumablesApplied,
		event.ClaimSettled,
		event.PlantsMerged,
		event.ConsumablesBought,
	} {
		bus.Subscribe(t, logEvent)
	}
}
