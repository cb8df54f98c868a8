// Package jobs provides scheduled background tasks for the marketplace.
//
// Jobs are implemented with github.com/robfig/cron/v3 and managed through
// JobManager:
//
//	jobManager := jobs.NewJobManager(sqlDB, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// LedgerAuditJob runs once a minute. It replays every delivery partner's credit
// ledger, verifies the balance_after chain entry by entry and compares the
// replayed total against the cached balance on the partner row. Divergences
// are logged and counted in the gromart_ledger_divergent_partners gauge;
// the job never mutates data.
package jobs
