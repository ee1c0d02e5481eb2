package services

import (
	"strings"
	"unicode"

	"courierbot/internal/core/domain/model/conversation"
)

// DefaultContinuationMaxWords is the message length, in words, at or below
// which a keyword-less message is treated as a continuation of the previous
// turn.
const DefaultContinuationMaxWords = 4

// continuationPronouns mark a keyword-less message as referring back to the
// previous turn regardless of its length.
var continuationPronouns = []string{"it", "that", "this", "them", "those", "same", "again"}

// intentKeywords associates each classifiable intent with the phrases that
// vote for it. Matching is case-insensitive on word boundaries, so "app"
// does not match "apply". Multi-word phrases match as phrases.
var intentKeywords = map[conversation.Intent][]string{
	conversation.IntentEmergency: {
		"emergency", "accident", "breakdown", "urgent", "danger", "dangerous",
		"unsafe", "injured", "hurt", "stuck", "police", "ambulance", "robbery", "theft",
	},
	conversation.IntentStatusUpdate: {
		"status", "delivered", "deliver", "delivering", "delivery", "deliveries",
		"pickup", "picked up", "transit", "mark", "returned", "reschedule", "undeliverable",
	},
	conversation.IntentRouting: {
		"route", "navigation", "navigate", "direction", "directions", "traffic",
		"map", "fastest", "shortest", "highway", "toll", "parking", "shortcut",
		"congestion", "detour",
	},
	conversation.IntentCustomerCommunication: {
		"customer", "call", "message", "notify", "inform", "text", "phone",
		"delay", "late", "apology", "apologize", "eta", "recipient",
	},
	conversation.IntentTechnicalSupport: {
		"app", "gps", "not working", "crash", "crashes", "crashed", "error",
		"bug", "login", "sync", "freeze", "frozen", "battery", "scanner",
		"barcode", "offline", "cache", "restart",
	},
	conversation.IntentEarnings: {
		"earning", "earnings", "pay", "payout", "salary", "income", "money",
		"cod", "cash", "incentive", "bonus", "rating", "performance", "stats", "metrics",
	},
	conversation.IntentPolicyQuery: {
		"policy", "policies", "procedure", "procedures", "rule", "rules",
		"protocol", "guideline", "guidelines", "allowed", "permitted", "process", "refund",
	},
}

// IntentRouterConfig tunes the deterministic classification heuristics.
type IntentRouterConfig struct {
	// ContinuationMaxWords is the word-count threshold under which a message
	// with no keyword hits inherits the previous turn's intent. Values below
	// one fall back to DefaultContinuationMaxWords.
	ContinuationMaxWords int
}

// IntentRouter is a domain service that classifies a courier message into one
// of the fixed operational domains. Classification is rule based and
// deterministic: keyword votes per domain, ties broken by the fixed priority
// order, emergencies short-circuiting everything else.
//
// Business rules:
//   - Any emergency keyword classifies the message as emergency, no matter
//     how many keywords other domains matched
//   - Equal scores resolve by conversation.IntentsByPriority order
//   - A message with no keyword hits inherits the previous turn's intent when
//     it looks like a continuation (short, or pronoun-referenced)
//   - Everything else is unclassified
//
// Example usage:
//
//	router := services.NewIntentRouter(services.IntentRouterConfig{})
//	intent := router.Classify("my gps is not working", ctx)
//	// intent == conversation.IntentTechnicalSupport
type IntentRouter struct {
	config IntentRouterConfig
}

// NewIntentRouter creates an IntentRouter with the given configuration.
func NewIntentRouter(config IntentRouterConfig) IntentRouter {
	if config.ContinuationMaxWords < 1 {
		config.ContinuationMaxWords = DefaultContinuationMaxWords
	}
	return IntentRouter{config: config}
}

// Classify determines the intent of message given the courier's conversation
// context. The context may be nil, in which case the continuation heuristic
// never fires.
func (r IntentRouter) Classify(message string, ctx *conversation.Context) conversation.Intent {
	normalized := normalizeMessage(message)

	if countPhraseHits(normalized, intentKeywords[conversation.IntentEmergency]) > 0 {
		return conversation.IntentEmergency
	}

	bestIntent := conversation.IntentUnclassified
	bestScore := 0
	for _, intent := range conversation.IntentsByPriority() {
		if intent == conversation.IntentEmergency {
			continue
		}
		if score := countPhraseHits(normalized, intentKeywords[intent]); score > bestScore {
			bestIntent = intent
			bestScore = score
		}
	}

	if bestScore > 0 {
		return bestIntent
	}

	if r.looksLikeContinuation(normalized) && ctx != nil && ctx.LastIntent() != conversation.IntentUnclassified {
		return ctx.LastIntent()
	}

	return conversation.IntentUnclassified
}

// looksLikeContinuation reports whether a keyword-less message plausibly
// refers back to the previous turn: it is short, or it contains a
// back-reference pronoun.
func (r IntentRouter) looksLikeContinuation(normalized string) bool {
	if len(strings.Fields(normalized)) <= r.config.ContinuationMaxWords {
		return true
	}
	return countPhraseHits(normalized, continuationPronouns) > 0
}

// normalizeMessage lowercases the message, strips punctuation, and pads it
// with spaces so phrase matching can rely on word boundaries.
func normalizeMessage(message string) string {
	fields := strings.FieldsFunc(strings.ToLower(message), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return " " + strings.Join(fields, " ") + " "
}

// countPhraseHits counts how many of the phrases occur in the normalized
// message on word boundaries. Each phrase counts at most once.
func countPhraseHits(normalized string, phrases []string) int {
	hits := 0
	for _, phrase := range phrases {
		if strings.Contains(normalized, " "+phrase+" ") {
			hits++
		}
	}
	return hits
}
