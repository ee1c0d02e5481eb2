package services

import (
	"regexp"
	"strings"

	"courierbot/internal/core/domain/model/delivery"
)

// actionVerbs are the verbs that make a status-change request explicit.
// Without one of them a message merely mentioning a delivery and a status is
// treated as a question, not a command.
var actionVerbs = []string{"mark", "update", "set", "change"}

// deliveryRefPattern captures the tracking reference following a delivery
// noun, e.g. "delivery 42", "order #ORD-1021", "package abc-7".
var deliveryRefPattern = regexp.MustCompile(`(?:delivery|order|package|parcel|shipment)\s*#?\s*([a-z0-9][a-z0-9-]*)`)

// statusPhrases maps spoken status phrases to the state machine's statuses.
// Longer phrases are listed before their substrings so "picked up" wins over
// any single-word overlap.
var statusPhrases = []struct {
	phrase string
	status delivery.Status
}{
	{"picked up", delivery.StatusPickedUp},
	{"in transit", delivery.StatusInTransit},
	{"delivered", delivery.StatusDelivered},
	{"failed", delivery.StatusFailed},
	{"returned", delivery.StatusReturned},
}

// ActionRequest is an unambiguous status-change command extracted from a
// courier message: which delivery, and which target status.
type ActionRequest struct {
	TrackingNumber string
	TargetStatus   delivery.Status
}

// ParseActionRequest scans a message for an explicit status-change command.
//
// A command is recognized only when all three parts are present:
//   - an action verb (mark, update, set, change)
//   - a delivery reference ("delivery 42", "order ORD-1021", ...)
//   - a target status phrase ("delivered", "picked up", ...)
//
// Anything less ambiguous stays a plain question and returns ok == false;
// the Action Dispatcher is never triggered speculatively.
func ParseActionRequest(message string) (ActionRequest, bool) {
	normalized := normalizeMessage(message)

	if countPhraseHits(normalized, actionVerbs) == 0 {
		return ActionRequest{}, false
	}

	// The reference is matched against the raw lowered text so hyphenated
	// tracking numbers like "ORD-1021" survive intact.
	match := deliveryRefPattern.FindStringSubmatch(strings.ToLower(message))
	if match == nil {
		return ActionRequest{}, false
	}
	ref := match[1]

	for _, sp := range statusPhrases {
		if strings.Contains(normalized, " "+sp.phrase+" ") {
			return ActionRequest{TrackingNumber: ref, TargetStatus: sp.status}, true
		}
	}

	return ActionRequest{}, false
}
