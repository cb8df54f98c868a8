// Package services provides domain services that implement business rules
// spanning multiple aggregates in the marketplace.
//
// The package includes:
//   - AccessPolicy: A domain service deciding which actor role may perform
//     which fulfillment, ledger and billing operation
//
// Domain services coordinate between aggregates, implementing business logic
// that does not naturally belong to a single aggregate root.
package services
