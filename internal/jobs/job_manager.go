package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	backlogJob *AmendmentBacklogJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	backlogCounter BacklogCounter,
	backlogSchedule string,
	staleAfter time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		backlogJob: NewAmendmentBacklogJob(backlogCounter, backlogSchedule, staleAfter, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.backlogJob.Start(); err != nil {
		return fmt.Errorf("failed to start amendment backlog job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.backlogJob.Stop()
}
