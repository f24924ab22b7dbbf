package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"market-pulse/src/analysis"
	"market-pulse/src/briefing"
	"market-pulse/src/config"
	"market-pulse/src/delivery/discord"
	"market-pulse/src/interfaces"
	"market-pulse/src/logger"
	"market-pulse/src/network"
	"market-pulse/src/quotes/coingecko"
	"market-pulse/src/quotes/stooq"
	"market-pulse/src/server"
	"market-pulse/src/session"
	"market-pulse/src/storage"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "config/default.yaml", "path to config file")
	serve := flag.Bool("serve", false, "run the interval scheduler and ops server instead of a single briefing")
	flag.Parse()

	// Load .env if present; env vars may also come from the environment
	// directly (DISCORD_WEBHOOK_URL and friends)
	_ = godotenv.Load()

	// Load config from YAML file
	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(cfg.LogLevel, cfg.Name)

	// Setup Components
	journal, err := storage.NewRunJournal(cfg.MConfig, appLogger)
	if err != nil {
		appLogger.Critical("Failed to init journal: %v", err)
	}
	if err := journal.Initialize(); err != nil {
		appLogger.Critical("Failed to migrate journal: %v", err)
	}
	defer journal.Close()

	gate, err := session.NewGate(cfg.MConfig)
	if err != nil {
		appLogger.Critical("Failed to build session gate: %v", err)
	}

	var netManager interfaces.INetworkManager = network.NewNetworkManager(cfg.MConfig, appLogger)
	var bars interfaces.IBarSource = stooq.NewSource(cfg.MConfig, netManager)
	var spot interfaces.ISpotSource = coingecko.NewSource(cfg.MConfig, netManager)

	aggregator := analysis.NewAggregator(cfg.MConfig, bars, spot)
	var deliverer interfaces.IDeliverer = discord.NewWebhook(cfg.MConfig)

	svc := briefing.NewService(cfg.MConfig, gate, aggregator, deliverer, journal)

	if !*serve {
		runOnce(svc, appLogger)
		return
	}

	runService(svc, journal, cfg, appLogger)
}

// -----------------------------------------------------------------------------

// runOnce executes a single briefing cycle; exit code 1 on failure so cron
// and systemd timers can alert.
func runOnce(svc *briefing.Service, appLogger *logger.Logger) {
	mode, err := svc.Run()
	if err != nil {
		appLogger.Error("Briefing failed: %v", err)
		os.Exit(1)
	}
	appLogger.Info("Done (mode: %s)", mode)
}

// -----------------------------------------------------------------------------

// runService starts the ops server and fires a briefing run on the configured
// interval until SIGINT/SIGTERM.
func runService(svc *briefing.Service, journal interfaces.IRunJournal, cfg *config.Config, appLogger *logger.Logger) {
	srv := server.NewOpsServer(cfg.MConfig, journal)
	srv.Trigger = svc.TryRun
	svc.Exchanger = srv

	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Error("Ops server failed: %v", err)
		}
	}()

	// First run immediately, then on the interval
	if _, _, err := svc.TryRun(); err != nil {
		appLogger.Warning("Initial run failed: %v", err)
	}

	ticker := time.NewTicker(time.Duration(cfg.IntervalMinutes) * time.Minute)
	defer ticker.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	appLogger.Info("Scheduler running (every %d minutes)", cfg.IntervalMinutes)

	for {
		select {
		case <-ticker.C:
			if _, _, err := svc.TryRun(); err != nil {
				appLogger.Warning("Scheduled run failed: %v", err)
			}

		case <-quit:
			appLogger.Info("Shutting down...")
			srv.Stop()
			return
		}
	}
}
