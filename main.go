// main.go
package main

import (
	"context"
	"log"

	"cinema-reservation/cmd"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/gateway"
	"cinema-reservation/internal/lock"
	"cinema-reservation/internal/wire"
	"cinema-reservation/internal/worker"
	"cinema-reservation/pkg/database"
	"cinema-reservation/pkg/lockstore"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Connect to the Redis lock store
	redisClient, err := lockstore.InitLockStore(config.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to lock store", zap.Error(err))
	}
	defer redisClient.Close()

	logger.Info("Lock store connected successfully")

	// Initialize repositories, locks and external gateways
	repos := repository.NewRepository(db, logger)
	locker := lock.NewSeatLocker(redisClient, logger)
	clients := gateway.NewClients(config, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, db, locker, clients, config, logger)

	// Background workers: hold expiry, outbox dispatch, refund processing
	ctx := context.Background()

	holdExpiry := worker.New("hold-expiry", config.Hold.CleanupInterval, app.Service.Hold.ExpireActiveHoldsBatch, logger)
	outbox := worker.New("outbox-dispatch", config.Outbox.PollInterval, app.Service.Outbox.ProcessOutboxBatch, logger)
	refunds := worker.New("refund-processor", config.Refund.PollInterval, app.Service.Refund.ProcessRefundBatch, logger)

	holdExpiry.Start(ctx)
	outbox.Start(ctx)
	refunds.Start(ctx)

	// Start server; workers are stopped after the listener drains
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port, logger,
		holdExpiry.Stop,
		outbox.Stop,
		refunds.Stop,
	)
}
