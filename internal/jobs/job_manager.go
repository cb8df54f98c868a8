package jobs

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	ledgerAuditJob *LedgerAuditJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(db *sql.DB, logger *slog.Logger) *JobManager {
	return &JobManager{
		ledgerAuditJob: NewLedgerAuditJob(db, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.ledgerAuditJob.Start(); err != nil {
		return fmt.Errorf("failed to start ledger audit job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.ledgerAuditJob.Stop()
}
