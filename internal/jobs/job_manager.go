package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	viewResyncJob *ViewResyncJob
}

func NewJobManager(resyncer Resyncer, resyncSchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		viewResyncJob: NewViewResyncJob(resyncer, resyncSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.viewResyncJob.Start(); err != nil {
		return fmt.Errorf("failed to start view resync job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.viewResyncJob.Stop()
}
