package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"wellness-observer/src/config"
	"wellness-observer/src/interfaces"
	"wellness-observer/src/jobs"
	"wellness-observer/src/logger"
	"wellness-observer/src/models"
	"wellness-observer/src/network"
	"wellness-observer/src/server"
	"wellness-observer/src/storage"
	"wellness-observer/src/utils"
	"wellness-observer/src/wearable"
	"wellness-observer/src/weather"
)

func main() {
	// 1. Parse command line flags
	configPath := flag.String("config", "config/default.yaml", "path to config file")
	flag.Parse()

	// 2. Load config
	conf, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// 3. Setup Logger
	appLogger := logger.NewLogger(conf.Name)

	// 4. Setup Components
	db, err := setupDatabase(conf.MConfig, appLogger)
	if err != nil {
		appLogger.Critical("Database setup failed: %v", err)
	}
	defer db.Close()

	networkManager := network.NewAsyncNetworkManager(conf.MConfig, logger.NewLogger("Network"))

	var weatherProvider interfaces.IWeatherProvider
	if conf.Weather.Enabled {
		weatherProvider = weather.NewOpenMeteoProvider(conf.MConfig, networkManager, logger.NewLogger("OpenMeteo"))
	}

	source := setupDataSource(conf.MConfig, networkManager, appLogger)

	srv := server.NewFastAPIServer(conf.MConfig, db, logger.NewLogger("Server"))

	orchestrator := jobs.NewOrchestrator(conf.MConfig, db, source, weatherProvider, srv)
	scheduler := utils.NewPollScheduler(conf.Pipeline.PollIntervalSeconds, orchestrator.RunOnce)

	// 5. Lifecycle Management
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigs
		appLogger.Info("Received %v, shutting down...", sig)
		cancel()
	}()

	// 6. Start Server (non-blocking) + Scheduler (blocking)
	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Critical("Server failed: %v", err)
		}
	}()

	appLogger.Info("Starting fulfillment loop (source=%s)...", source.Name())
	scheduler.Run(ctx)

	if err := srv.Stop(); err != nil {
		appLogger.Warning("Server stop: %v", err)
	}
	appLogger.Info("Shutdown complete.")
}

// -----------------------------------------------------------------------------

func setupDatabase(cfg *models.MConfig, log *logger.Logger) (interfaces.IDatabase, error) {
	var db interfaces.IDatabase
	var err error

	switch cfg.Storage.DBType {
	case "postgres":
		db, err = storage.NewPostgresDB(cfg, logger.NewLogger("PostgresDB"))
	default:
		db, err = storage.NewAsyncSQLiteDB(cfg, logger.NewLogger("SQLiteDB"))
	}
	if err != nil {
		return nil, err
	}

	if err := db.Initialize(); err != nil {
		return nil, err
	}
	log.Info("Database initialized (%s)", cfg.Storage.DBType)
	return db, nil
}

// -----------------------------------------------------------------------------

func setupDataSource(cfg *models.MConfig, netMgr interfaces.INetworkManager, log *logger.Logger) interfaces.IDataSource {
	if cfg.Pipeline.SourceName == "stub" || cfg.Pipeline.SourceAccessToken == "" {
		log.Warning("No source access token configured, using synthetic stub source")
		return wearable.NewStubSource()
	}
	return wearable.NewWearableAPISource(cfg, netMgr)
}
