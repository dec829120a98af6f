// Package jobs provides scheduled background tasks for the amendment service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds field enabled) and
// read-only: they observe amendment state, they never transition it.
//
// # Available Jobs
//
// AmendmentBacklogJob counts open amendments per non-terminal status, and the
// ones whose last transition is older than the stale threshold, and publishes
// both as the amendments_backlog_open gauge. Stale amendments are logged at
// warn level.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(backlogHandler, cfg.BacklogJobSchedule, cfg.StaleAfter, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
