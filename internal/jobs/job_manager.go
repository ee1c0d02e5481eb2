package jobs

import (
	"fmt"
	"log/slog"

	"courierbot/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	contextSweepJob *ContextSweepJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(contextStore ports.ContextStore, logger *slog.Logger) *JobManager {
	return &JobManager{
		contextSweepJob: NewContextSweepJob(contextStore, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.contextSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start context sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.contextSweepJob.Stop()
}
