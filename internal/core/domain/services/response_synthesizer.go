package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"courierbot/internal/core/domain/model/conversation"
)

const (
	// DefaultGenerationTimeout bounds one language-model call. A slow
	// provider degrades to the deterministic fallback, never blocks the turn.
	DefaultGenerationTimeout = 10 * time.Second

	// DefaultMaxAnswerLength caps the answer returned to the courier.
	DefaultMaxAnswerLength = 2000

	// promptTurnWindow is how many recent turns the prompt carries.
	promptTurnWindow = 5
)

// roleLabels are prefixes some models echo back despite instructions.
var roleLabels = []string{"Assistant:", "AI:", "Bot:"}

// GenerationGateway produces a free-form answer for a fully assembled prompt.
// Implementations must respect context cancellation.
type GenerationGateway interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// SynthesizerConfig tunes the response synthesis behavior.
type SynthesizerConfig struct {
	// Timeout bounds one gateway call. Values at or below zero fall back to
	// DefaultGenerationTimeout.
	Timeout time.Duration

	// MaxAnswerLength truncates answers longer than this many bytes. Values
	// below one fall back to DefaultMaxAnswerLength.
	MaxAnswerLength int
}

// ResponseSynthesizer is a domain service that turns a classified, grounded
// message into the final answer. It prefers the language-model gateway and
// degrades to a deterministic template built from the grounding bundle when
// the gateway fails, times out, or returns an unusable answer. A courier
// always gets an answer.
type ResponseSynthesizer struct {
	gateway GenerationGateway
	config  SynthesizerConfig
}

// NewResponseSynthesizer creates a ResponseSynthesizer over the gateway.
func NewResponseSynthesizer(gateway GenerationGateway, config SynthesizerConfig) ResponseSynthesizer {
	if config.Timeout <= 0 {
		config.Timeout = DefaultGenerationTimeout
	}
	if config.MaxAnswerLength < 1 {
		config.MaxAnswerLength = DefaultMaxAnswerLength
	}

	return ResponseSynthesizer{gateway: gateway, config: config}
}

// Synthesize produces the answer for one turn. The returned flag reports
// whether the deterministic fallback was used instead of the gateway.
func (s ResponseSynthesizer) Synthesize(ctx context.Context, message string,
	intent conversation.Intent, bundle GroundingBundle, convCtx *conversation.Context) (string, bool) {
	prompt := s.buildPrompt(message, intent, bundle, convCtx)

	genCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	raw, err := s.gateway.Generate(genCtx, prompt)
	if err != nil {
		return s.fallback(intent, bundle), true
	}

	answer := s.postProcess(raw)
	if answer == "" {
		return s.fallback(intent, bundle), true
	}

	return answer, false
}

// buildPrompt assembles the grounded prompt: role preamble, retrieved facts,
// the recent turn window, and the current message.
func (s ResponseSynthesizer) buildPrompt(message string, intent conversation.Intent,
	bundle GroundingBundle, convCtx *conversation.Context) string {
	var b strings.Builder

	b.WriteString("You are a dispatch assistant for delivery couriers. ")
	b.WriteString("Answer briefly and concretely, using only the facts below. ")
	b.WriteString("If the facts do not cover the question, say so.\n")
	fmt.Fprintf(&b, "Topic: %s\n", intent)

	if facts := bundle.Facts(); len(facts) > 0 {
		b.WriteString("\nFacts:\n")
		for _, fact := range facts {
			fmt.Fprintf(&b, "- %s\n", fact)
		}
	}

	if convCtx != nil {
		if turns := convCtx.RecentTurns(promptTurnWindow); len(turns) > 0 {
			b.WriteString("\nConversation so far:\n")
			for _, turn := range turns {
				fmt.Fprintf(&b, "%s: %s\n", turn.Role(), turn.Text())
			}
		}
	}

	fmt.Fprintf(&b, "\nCourier: %s\nAnswer:", message)
	return b.String()
}

// postProcess strips echoed role labels, trims whitespace, and enforces the
// answer length cap.
func (s ResponseSynthesizer) postProcess(raw string) string {
	answer := strings.TrimSpace(raw)
	for _, label := range roleLabels {
		if strings.HasPrefix(answer, label) {
			answer = strings.TrimSpace(strings.TrimPrefix(answer, label))
			break
		}
	}

	return s.truncate(answer)
}

// truncate enforces the answer length cap without splitting a multi-byte
// rune, so a capped answer is still valid UTF-8.
func (s ResponseSynthesizer) truncate(answer string) string {
	if len(answer) <= s.config.MaxAnswerLength {
		return answer
	}

	cut := s.config.MaxAnswerLength
	for cut > 0 && !utf8.RuneStart(answer[cut]) {
		cut--
	}
	return strings.TrimSpace(answer[:cut])
}

// fallback builds a deterministic answer from the grounding bundle when the
// gateway is unavailable. Emergencies get the safety script first.
func (s ResponseSynthesizer) fallback(intent conversation.Intent, bundle GroundingBundle) string {
	var parts []string

	if intent == conversation.IntentEmergency {
		parts = append(parts,
			"If you are in danger, stop somewhere safe and call emergency services first. "+
				"Then report the incident to dispatch so your route can be covered.")
	}

	switch {
	case len(bundle.Entries) > 0:
		top := bundle.Entries[0]
		parts = append(parts, fmt.Sprintf("%s: %s", top.Title(), top.Body()))
	case len(bundle.Deliveries) > 0:
		parts = append(parts, fmt.Sprintf("You have %d deliveries on record.", len(bundle.Deliveries)))
		for i, dlv := range bundle.Deliveries {
			if i == 3 {
				break
			}
			parts = append(parts, fmt.Sprintf("%s is %s.", dlv.TrackingNumber(), dlv.Status()))
		}
	case intent == conversation.IntentEmergency:
		// The safety script already answers the turn.
	default:
		parts = append(parts,
			"I can help with your deliveries, routes, customer contact, app issues, "+
				"earnings, and company policy. Could you rephrase your question?")
	}

	return s.truncate(strings.Join(parts, " "))
}
