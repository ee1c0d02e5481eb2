package conversation

import (
	"fmt"

	"courierbot/internal/pkg/errs"
)

// Intent is the operational domain a courier message was classified into.
// It is a string-tagged enum so the value can travel unchanged through the
// HTTP boundary and the conversation log. Once assigned to a turn an intent
// is never rewritten.
type Intent string

const (
	// IntentEmergency covers accidents, breakdowns, and safety incidents.
	// It outranks every other intent so safety-critical messages are never
	// starved by ambiguous phrasing.
	IntentEmergency Intent = "emergency"

	// IntentStatusUpdate covers delivery-status questions and transitions.
	IntentStatusUpdate Intent = "status_update"

	// IntentRouting covers navigation, traffic, and route planning.
	IntentRouting Intent = "routing"

	// IntentCustomerCommunication covers messages to and about customers.
	IntentCustomerCommunication Intent = "customer_communication"

	// IntentTechnicalSupport covers app, device, and GPS malfunctions.
	IntentTechnicalSupport Intent = "technical_support"

	// IntentEarnings covers pay, COD, and performance questions.
	IntentEarnings Intent = "earnings"

	// IntentPolicyQuery covers company policy and procedure lookups.
	IntentPolicyQuery Intent = "policy_query"

	// IntentUnclassified is the fallback when no domain matched.
	IntentUnclassified Intent = "unclassified"
)

// IntentsByPriority lists the classifiable intents from highest to lowest
// tie-breaking priority. The router resolves equal keyword scores in this
// order.
func IntentsByPriority() []Intent {
	return []Intent{
		IntentEmergency,
		IntentStatusUpdate,
		IntentRouting,
		IntentCustomerCommunication,
		IntentTechnicalSupport,
		IntentEarnings,
		IntentPolicyQuery,
	}
}

// Validate checks that the intent is one of the known tags.
func (i Intent) Validate() error {
	switch i {
	case IntentEmergency, IntentStatusUpdate, IntentRouting,
		IntentCustomerCommunication, IntentTechnicalSupport,
		IntentEarnings, IntentPolicyQuery, IntentUnclassified:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("intent",
			fmt.Errorf("%q is not a known intent", string(i)))
	}
}

// IsKnowledgeBacked reports whether retrieval for this intent goes to the
// knowledge store (as opposed to the courier's delivery records).
func (i Intent) IsKnowledgeBacked() bool {
	switch i {
	case IntentPolicyQuery, IntentTechnicalSupport, IntentCustomerCommunication, IntentRouting, IntentEmergency:
		return true
	default:
		return false
	}
}

// IsDeliveryBacked reports whether retrieval for this intent goes to the
// caller's own delivery records.
func (i Intent) IsDeliveryBacked() bool {
	return i == IntentStatusUpdate || i == IntentEarnings
}

// String implements fmt.Stringer.
func (i Intent) String() string {
	return string(i)
}
