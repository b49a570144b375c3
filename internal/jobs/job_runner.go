package jobs

import (
	"memberbase-backend/internal/config"
	"memberbase-backend/internal/logger"
	"memberbase-backend/internal/repository"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	appRepo  repository.ApplicationRepository
	codeRepo repository.AccessCodeRepository
	config   *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(appRepo repository.ApplicationRepository, codeRepo repository.AccessCodeRepository, cfg *config.Config) *JobRunner {
	return &JobRunner{
		appRepo:  appRepo,
		codeRepo: codeRepo,
		config:   cfg,
	}
}

// Config returns the runner's configuration
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
