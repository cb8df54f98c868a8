// Package ports defines the contracts between the application core and the
// infrastructure adapters: repositories, the unit of work and the outbound
// event publisher. These interfaces enable dependency inversion and
// testability.
package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// PartnerRepository returns a PartnerRepository bound to the current transaction.
	PartnerRepository() PartnerRepository

	// BillRepository returns a BillRepository bound to the current transaction.
	BillRepository() BillRepository
}
