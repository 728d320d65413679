// Package jobs holds the scheduled maintenance work that runs next to
// the request path.
package jobs

import (
	"database/sql"
	"log/slog"

	"key-control-backend/internal/cache"
	"key-control-backend/internal/config"
	"key-control-backend/internal/logger"
)

// JobRunner coordinates the scheduled jobs.
type JobRunner struct {
	db     *sql.DB
	cache  cache.Cache
	config *config.Config
	log    *slog.Logger
}

func NewJobRunner(db *sql.DB, c cache.Cache, cfg *config.Config) *JobRunner {
	return &JobRunner{db: db, cache: c, config: cfg, log: logger.WithComponent("jobs")}
}

// Config exposes the configuration to the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			jr.log.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	jr.log.Info("Starting job", "job", jobName)
	jobFunc()
	jr.log.Info("Job completed", "job", jobName)
}

// RunAll runs every job once, for manual execution from the cron binary.
func (jr *JobRunner) RunAll() {
	jr.MarkOverdueCheckouts()
}
