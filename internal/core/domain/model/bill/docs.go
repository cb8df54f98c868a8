// Package bill implements the delivery-bill reconciliation aggregate: a
// partner's reimbursement claim for an out-of-pocket expense, submitted with
// a receipt image and reviewed exactly once by an admin.
//
// Submitting a bill has no ledger effect; approval is an informational
// decision feeding the net-to-transfer report, not a balance change.
package bill
