// Package jobs provides scheduled background tasks built on
// github.com/robfig/cron/v3.
//
// # Available Jobs
//
// ViewResyncJob forces a full refetch of every attached dashboard on the
// REALTIME_RESYNC_SCHEDULE cron expression. Change notifications are delivered
// at least once while connected but may be lost across a reconnect of the
// change feed; the periodic resync bounds how long a dashboard can stay stale.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(reconciler, "*/30 * * * * *", logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// Schedules use six fields, seconds first.
package jobs
