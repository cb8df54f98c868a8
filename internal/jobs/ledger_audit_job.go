package jobs

import (
	"context"
	"database/sql"
	"log/slog"

	"gromart/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

// auditSchedule replays every partner ledger once a minute. The full replay
// is cheap at this scale and keeps the divergence gauge near-real-time.
const auditSchedule = "0 * * * * *"

// LedgerAuditJob replays every partner's credit ledger and compares the
// result against the cached balance on the partner row. The two must agree:
// entries are the source of truth and the cached balance is derived. Any
// divergence points at a write that bypassed the atomic allocate path.
//
// The job only reports; it never repairs balances.
type LedgerAuditJob struct {
	db     *sql.DB
	cron   *cron.Cron
	logger *slog.Logger
}

// NewLedgerAuditJob creates the periodic ledger audit.
func NewLedgerAuditJob(db *sql.DB, logger *slog.Logger) *LedgerAuditJob {
	return &LedgerAuditJob{
		db:     db,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "ledger_audit_job"),
	}
}

// Start schedules the audit.
func (j *LedgerAuditJob) Start() error {
	_, err := j.cron.AddFunc(auditSchedule, func() {
		ctx := context.Background()
		if err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Ledger audit run failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Ledger audit job started", "schedule", auditSchedule)
	return nil
}

// Stop stops the scheduled audit.
func (j *LedgerAuditJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Ledger audit job stopped")
}

// Run executes one audit pass over all partners with ledger history or a
// non-zero cached balance. Exposed so operators can trigger it out of band.
func (j *LedgerAuditJob) Run(ctx context.Context) error {
	partnerIDs, err := j.partnersToAudit(ctx)
	if err != nil {
		return err
	}

	divergent := 0
	for _, partnerID := range partnerIDs {
		ok, auditErr := j.auditPartner(ctx, partnerID)
		if auditErr != nil {
			return auditErr
		}
		if !ok {
			divergent++
		}
	}

	metrics.LedgerDivergentPartners.Set(float64(divergent))
	j.logger.InfoContext(ctx, "Ledger audit completed",
		"partners_audited", len(partnerIDs),
		"divergent", divergent,
	)
	return nil
}

func (j *LedgerAuditJob) partnersToAudit(ctx context.Context) ([]string, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id::text FROM delivery_partners
		WHERE credit_balance <> 0
		   OR EXISTS (
			SELECT 1 FROM credit_transactions
			WHERE credit_transactions.delivery_partner_id = delivery_partners.id
		   )
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// auditPartner replays one partner's history oldest first. It checks the
// balance_after chain link by link and the final total against the cached
// balance, logging every mismatch.
func (j *LedgerAuditJob) auditPartner(ctx context.Context, partnerID string) (bool, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT
			id::text,
			CASE WHEN transaction_type IN ('credit', 'refund') THEN amount ELSE -amount END,
			balance_after
		FROM credit_transactions
		WHERE delivery_partner_id = $1
		ORDER BY created_at, id
	`, partnerID)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	ok := true
	running := decimal.Zero
	for rows.Next() {
		var entryID string
		var signedAmount, balanceAfter decimal.Decimal
		if err = rows.Scan(&entryID, &signedAmount, &balanceAfter); err != nil {
			return false, err
		}

		running = running.Add(signedAmount)
		if !running.Equal(balanceAfter) {
			ok = false
			j.logger.WarnContext(ctx, "Ledger entry breaks the balance chain",
				"partner_id", partnerID,
				"entry_id", entryID,
				"expected_balance", running.String(),
				"recorded_balance", balanceAfter.String(),
			)
			// Resynchronize on the recorded value so one broken link does
			// not cascade into warnings for every later entry.
			running = balanceAfter
		}
	}
	if err = rows.Err(); err != nil {
		return false, err
	}

	var cachedBalance decimal.Decimal
	err = j.db.QueryRowContext(ctx,
		`SELECT credit_balance FROM delivery_partners WHERE id = $1`, partnerID,
	).Scan(&cachedBalance)
	if err != nil {
		return false, err
	}

	if !running.Equal(cachedBalance) {
		ok = false
		j.logger.WarnContext(ctx, "Cached balance diverges from replayed ledger",
			"partner_id", partnerID,
			"replayed_balance", running.String(),
			"cached_balance", cachedBalance.String(),
		)
	}
	return ok, nil
}
