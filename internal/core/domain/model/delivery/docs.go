// Package delivery provides domain entities and business logic for the
// deliveries a courier carries. It implements the Delivery aggregate root with
// lifecycle management and state transitions.
//
// The package includes:
//   - Delivery: The aggregate root that manages delivery identity, ownership, and lifecycle
//   - Status: A state machine with an explicit transition table for delivery statuses
//   - CustomerInfo: Recipient details attached to a delivery
//
// Key business rules:
//   - Deliveries must have a valid identifier, owning courier, and tracking number
//   - Status follows the happy path assigned -> picked_up -> in_transit -> delivered
//     and may branch to failed or returned from any non-terminal state
//   - Delivered, failed, and returned are terminal; no transition leaves them
//   - Requesting the current status again is a no-op rejection, not a mutation
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package delivery
