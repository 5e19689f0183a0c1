// Package main provides the tdnd binary, which runs combat scenarios against
// the equipment catalog and prints a summary of each.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cory-johannsen/tdnd/internal/config"
	"github.com/cory-johannsen/tdnd/internal/game/inventory"
	"github.com/cory-johannsen/tdnd/internal/observability"
	"github.com/cory-johannsen/tdnd/internal/scenario"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file; empty = defaults and environment only")
	scenarioPath := flag.String("scenario", "", "run a single scenario file instead of simulation.scenario_dir")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry, err := inventory.LoadRegistry(cfg.Simulation.ContentDir)
	if err != nil {
		logger.Fatal("loading equipment catalog", zap.Error(err))
	}
	logger.Info("loaded equipment catalog",
		zap.String("dir", cfg.Simulation.ContentDir),
		zap.Int("armor", len(registry.ArmorIDs())),
		zap.Int("weapons", len(registry.WeaponIDs())),
		zap.Int("items", len(registry.ItemIDs())),
	)

	scenarios, err := loadScenarios(*scenarioPath, cfg.Simulation.ScenarioDir)
	if err != nil {
		logger.Fatal("loading scenarios", zap.Error(err))
	}
	logger.Info("loaded scenarios", zap.Int("count", len(scenarios)))

	runner := scenario.NewRunner(registry, logger,
		scenario.WithScriptDir(cfg.Simulation.ScriptDir),
		scenario.WithInstructionLimit(cfg.Simulation.ScriptInstructionLimit),
	)
	reports, err := scenario.RunAll(ctx, runner, scenarios, cfg.Simulation.Workers)
	if err != nil {
		logger.Fatal("running scenarios", zap.Error(err))
	}

	for _, r := range reports {
		if err := writeReport(os.Stdout, r); err != nil {
			logger.Fatal("writing report", zap.String("scenario", r.Scenario), zap.Error(err))
		}
	}
	logger.Info("simulation complete",
		zap.Int("scenarios", len(reports)),
		zap.Duration("elapsed", time.Since(start)),
	)
}

func loadScenarios(path, dir string) ([]*scenario.Scenario, error) {
	if path != "" {
		s, err := scenario.Load(path)
		if err != nil {
			return nil, err
		}
		return []*scenario.Scenario{s}, nil
	}
	return scenario.LoadDir(dir)
}
