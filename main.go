// main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ticket-service/cmd"
	"ticket-service/internal/data/repository"
	"ticket-service/internal/event"
	"ticket-service/internal/wire"
	"ticket-service/pkg/cache"
	"ticket-service/pkg/database"
	"ticket-service/pkg/lock"
	"ticket-service/pkg/metrics"
	"ticket-service/pkg/utils"

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
		zap.String("store", config.Store),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage
	var repos *repository.Repository
	switch config.Store {
	case utils.StorePostgres:
		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		err = database.Migrate(migrateCtx, db)
		cancel()
		if err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}

		logger.Info("Database connected successfully")
		repos = repository.NewRepository(db, logger)
	case utils.StoreMemory:
		repos = repository.NewMemoryRepository(logger)
	default:
		logger.Fatal("Unknown STORE_DRIVER", zap.String("store", config.Store))
	}

	// Locks: in-process unless Redis is enabled
	var locker lock.Locker = lock.NewLocalLocker()
	if config.Redis.Enabled {
		rdb, err := cache.NewRedis(config.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer rdb.Close()
		locker = lock.NewRedisLocker(rdb, config.Redis.LockTTL, logger)
		logger.Info("Using redis locks", zap.String("addr", config.Redis.Addr))
	}

	// Events
	var publisher event.Publisher = event.NopPublisher{}
	if config.AMQP.Enabled {
		amqpPublisher, err := event.NewAMQPPublisher(config.AMQP.URL, config.AMQP.Queue, logger)
		if err != nil {
			logger.Fatal("Failed to connect to broker", zap.Error(err))
		}
		publisher = amqpPublisher
	}
	defer publisher.Close()

	// Wire all dependencies
	app := wire.Wiring(repos, config, locker, publisher, metrics.New(), logger)

	if err := app.Service.Auth.SeedAdmin(ctx); err != nil {
		logger.Fatal("Failed to seed admin account", zap.Error(err))
	}
	if err := app.Service.Screening.VerifyTimetables(ctx); err != nil {
		logger.Warn("Stored timetable violates scheduling rules", zap.Error(err))
	}

	// Start server
	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
	logger.Info("Server stopped")
}
