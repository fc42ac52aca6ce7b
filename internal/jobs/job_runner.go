package jobs

import (
	"github.com/ezhulati/liftout-platform-sub000/internal/config"
	"github.com/ezhulati/liftout-platform-sub000/internal/logger"
	"github.com/ezhulati/liftout-platform-sub000/internal/repository/postgres"
	"github.com/ezhulati/liftout-platform-sub000/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	store    *postgres.Store
	notifier service.Notifier
	config   *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(store *postgres.Store, notifier service.Notifier, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:    store,
		notifier: notifier,
		config:   cfg,
	}
}

// Config exposes the loaded configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}
