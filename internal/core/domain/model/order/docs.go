// Package order provides domain entities and business logic for order
// fulfillment in the marketplace. It implements the Order aggregate root with
// lifecycle management, the OTP-gated handoff and frozen checkout snapshots.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, money breakdown, and lifecycle
//   - Status/Action: A state machine driven by a single transition table
//   - Item: Immutable order lines carrying frozen product snapshots
//   - Address: The delivery destination frozen at checkout
//
// Key business rules:
//   - Status moves only along the transition table; everything else is rejected
//   - The final delivered transition requires the stored 4-digit OTP
//   - Milestone timestamps are stamped exactly once, on their transition
//   - Monetary fields are non-negative; the total is derived at creation time
//   - Orders are never deleted; cancel and refund are statuses
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
