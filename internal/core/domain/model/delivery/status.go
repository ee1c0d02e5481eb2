package delivery

import (
	"fmt"

	"courierbot/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
// It implements a state machine with an explicit transition table so that
// illegal transitions are rejected as typed errors instead of being coerced.
//
// State transitions:
//
//	Assigned ──> PickedUp ──> InTransit ──> Delivered
//	    │            │            │
//	    │            ├──> Returned├──> Returned
//	    └──> Failed  └──> Failed  └──> Failed
//
// Delivered, Failed, and Returned are terminal: no transition leaves them.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusAssigned is the initial status when a delivery is handed to a courier.
	StatusAssigned

	// StatusPickedUp indicates the courier has collected the package.
	StatusPickedUp

	// StatusInTransit indicates the package is on its way to the customer.
	StatusInTransit

	// StatusDelivered indicates the package reached the customer. Terminal.
	StatusDelivered

	// StatusFailed indicates the delivery could not be completed. Terminal.
	StatusFailed

	// StatusReturned indicates the package was sent back to the warehouse. Terminal.
	StatusReturned
)

// getStatusStrings returns a map of Status values to their wire names.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusAssigned:  "assigned",
		StatusPickedUp:  "picked_up",
		StatusInTransit: "in_transit",
		StatusDelivered: "delivered",
		StatusFailed:    "failed",
		StatusReturned:  "returned",
	}
}

// getAllowedTransitions returns the transition table of the delivery state
// machine. A requested transition is legal only if the target appears in the
// slice keyed by the current status. Terminal statuses have no entry.
func getAllowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusAssigned:  {StatusPickedUp, StatusFailed},
		StatusPickedUp:  {StatusInTransit, StatusFailed, StatusReturned},
		StatusInTransit: {StatusDelivered, StatusFailed, StatusReturned},
	}
}

// ParseStatus converts a wire name ("assigned", "picked_up", ...) into a Status.
//
// Returns:
//   - the matching Status if the name is known
//   - (StatusUnknown, error) otherwise
//
// This function is used to interpret status values arriving from the HTTP
// boundary and from free-text chat messages.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid delivery status", s))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Assigned, PickedUp, InTransit, Delivered, Failed, Returned.
// StatusUnknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status.
//
// This method implements the fmt.Stringer interface and is safe to call on
// any Status value, including invalid ones, which render as "unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no further transitions.
// Delivered, Failed, and Returned are terminal.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusDelivered, StatusFailed, StatusReturned:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the state machine allows moving from the
// current status to target. A status never transitions to itself; the
// same-status case is handled separately as a no-op rejection by the
// delivery aggregate.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range getAllowedTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses reachable from the current one, in the
// fixed order of the transition table. Terminal statuses return nil.
//
// Used to ground "what can I do next" answers and to filter follow-up
// suggestions that would propose illegal transitions.
func (s Status) NextStatuses() []Status {
	return getAllowedTransitions()[s]
}

// TransitionTo validates the move from the current status to target.
//
// Returns:
//   - (target, nil) on a legal transition
//   - (StatusUnknown, error) if target is invalid or the transition is not
//     in the state machine's table
//
// The same-status case is not handled here; Delivery.TransitionTo rejects it
// as a no-op before consulting the table.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return StatusUnknown, err
	}

	if !s.CanTransitionTo(target) {
		return StatusUnknown, fmt.Errorf("%w: cannot move from %s to %s", ErrIllegalTransition, s, target)
	}

	return target, nil
}
