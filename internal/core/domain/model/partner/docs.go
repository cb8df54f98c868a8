// Package partner provides domain entities and business logic for delivery
// partners and their financial ledger. It implements the DeliveryPartner
// aggregate root together with the append-only CreditTransaction entries
// that track cash and credit the partner holds against the platform.
//
// The package includes:
//   - DeliveryPartner: The aggregate root owning status, verification and balance
//   - CreditTransaction: An immutable ledger entry carrying the resulting balance
//   - Balance: The signed running total (negative means the partner owes the platform)
//
// Key business rules:
//   - Every balance change goes through Allocate and produces exactly one entry
//   - Entries carry strictly positive amounts; direction comes from the type
//   - Replaying the history in creation order reproduces the stored balance
//   - Only available partners may be assigned new orders
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package partner
