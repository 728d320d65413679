package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "key-control-backend/internal/api/http"
	"key-control-backend/internal/cache"
	"key-control-backend/internal/config"
	"key-control-backend/internal/jobs"
	"key-control-backend/internal/logger"
	"key-control-backend/internal/repository/postgres"
	"key-control-backend/internal/scheduler"
	"key-control-backend/internal/search"
	"key-control-backend/internal/service"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// A missing .env is fine; the config file carries the defaults.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting key control backend", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		// The cache is best-effort; a dead Redis costs latency, not
		// correctness.
		logger.Warn("Redis unreachable at startup", "addr", cfg.Redis.Addr, "error", err)
	}
	cacheClient := cache.New(redisClient)

	indexer, err := search.NewBleveIndexer(cfg.Search.IndexPath)
	if err != nil {
		log.Fatalf("Failed to open search index: %v", err)
	}
	defer indexer.Close()

	store := postgres.NewStore(db)

	roomSvc := service.NewRoomService(store.RoomRepository, cacheClient)
	keySvc := service.NewKeyService(store.KeyRepository, store.RoomRepository, cacheClient)
	respSvc := service.NewResponsibleService(store.ResponsibleRepository, indexer, cacheClient)
	resSvc := service.NewReservationService(store.ReservationRepository, store.RoomRepository, store.ResponsibleRepository, cacheClient)
	checkoutSvc := service.NewCheckoutService(store.CheckoutRepository, store.KeyRepository, store.RoomRepository, store.ResponsibleRepository, store.ReservationRepository, cacheClient)
	historySvc := service.NewHistoryService(store.HistoryRepository, cacheClient)

	router := httpapi.NewRouter(httpapi.Services{
		Rooms:        roomSvc,
		Keys:         keySvc,
		Responsibles: respSvc,
		Reservations: resSvc,
		Checkouts:    checkoutSvc,
		History:      historySvc,
	})

	jobRunner := jobs.NewJobRunner(db, cacheClient, cfg)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
