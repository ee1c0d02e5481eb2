package services

import (
	"fmt"
	"strings"

	"courierbot/internal/core/domain/model/conversation"
	"courierbot/internal/core/domain/model/delivery"
)

// MaxSuggestions caps how many follow-up prompts accompany one answer.
const MaxSuggestions = 4

// intentSuggestions are the canned follow-ups per domain, in offer order.
var intentSuggestions = map[conversation.Intent][]string{
	conversation.IntentEmergency: {
		"Call dispatch",
		"Share my location with dispatch",
		"Report the incident",
	},
	conversation.IntentStatusUpdate: {
		"Show my active deliveries",
		"What's my next stop?",
	},
	conversation.IntentRouting: {
		"Show the fastest route",
		"Any traffic ahead?",
		"Avoid toll roads",
	},
	conversation.IntentCustomerCommunication: {
		"Send the customer an ETA",
		"Call the customer",
		"Report customer unreachable",
	},
	conversation.IntentTechnicalSupport: {
		"Restart the app",
		"Re-sync my deliveries",
		"Report the issue to support",
	},
	conversation.IntentEarnings: {
		"Show today's earnings",
		"How much COD am I carrying?",
		"Show my rating",
	},
	conversation.IntentPolicyQuery: {
		"Show related policies",
		"Contact dispatch",
	},
	conversation.IntentUnclassified: {
		"Show my deliveries",
		"Show the fastest route",
		"Show today's earnings",
	},
}

// SuggestionGenerator is a domain service that proposes the next things a
// courier might ask. It offers only actions that are currently possible:
// status-change suggestions are derived from the referenced delivery's legal
// transitions, never from a static list.
type SuggestionGenerator struct{}

// NewSuggestionGenerator creates a SuggestionGenerator.
func NewSuggestionGenerator() SuggestionGenerator {
	return SuggestionGenerator{}
}

// Generate proposes up to MaxSuggestions follow-ups for the answered turn.
// dlv is the delivery the turn was about, nil when there was none. Offers
// repeated from the previous turn are dropped so the courier is not shown
// the same prompts twice in a row.
func (g SuggestionGenerator) Generate(intent conversation.Intent, dlv *delivery.Delivery,
	convCtx *conversation.Context) []string {
	var candidates []string

	if dlv != nil {
		for _, next := range dlv.Status().NextStatuses() {
			candidates = append(candidates,
				fmt.Sprintf("Mark %s as %s", dlv.TrackingNumber(), next))
		}
	}
	candidates = append(candidates, intentSuggestions[intent]...)

	seen := make(map[string]struct{}, len(candidates))
	if convCtx != nil {
		for _, prev := range convCtx.LastSuggestions() {
			seen[normalizeSuggestion(prev)] = struct{}{}
		}
	}

	suggestions := make([]string, 0, MaxSuggestions)
	for _, candidate := range candidates {
		key := normalizeSuggestion(candidate)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		suggestions = append(suggestions, candidate)
		if len(suggestions) == MaxSuggestions {
			break
		}
	}

	return suggestions
}

func normalizeSuggestion(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
