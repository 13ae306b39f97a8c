package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Resyncer forces a full refetch in every attached dashboard.
type Resyncer interface {
	ResyncAll() int
}

// ViewResyncJob periodically refetches every dashboard. It repairs views that
// missed a change notification, for example while the change feed was
// reconnecting.
type ViewResyncJob struct {
	resyncer Resyncer
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewViewResyncJob creates the job. schedule is a six-field cron expression
// (seconds first).
func NewViewResyncJob(resyncer Resyncer, schedule string, logger *slog.Logger) *ViewResyncJob {
	return &ViewResyncJob{
		resyncer: resyncer,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "view_resync_job"),
	}
}

func (j *ViewResyncJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		sessions := j.resyncer.ResyncAll()
		j.logger.Debug("Dashboards resynced", "sessions", sessions)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "View resync job started", "schedule", j.schedule)
	return nil
}

func (j *ViewResyncJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "View resync job stopped")
}
