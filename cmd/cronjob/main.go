// Command cronjob runs the scheduled maintenance jobs once and exits,
// for manual invocation or an external scheduler.
package main

import (
	"database/sql"
	"flag"
	"log"

	"key-control-backend/internal/cache"
	"key-control-backend/internal/config"
	"key-control-backend/internal/jobs"
	"key-control-backend/internal/logger"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	jobName := flag.String("job", "all", "Job to run: all, mark-overdue")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	jobRunner := jobs.NewJobRunner(db, cache.New(redisClient), cfg)

	switch *jobName {
	case "all":
		jobRunner.RunAll()
	case "mark-overdue":
		jobRunner.MarkOverdueCheckouts()
	default:
		log.Fatalf("Unknown job: %s", *jobName)
	}
}
