// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the courier assistant. It implements the
// conversational pipeline steps that don't naturally belong to a single
// aggregate root.
//
// The package includes:
//   - IntentRouter: deterministic classification of courier messages into
//     operational domains
//   - ParseActionRequest: extraction of explicit status-change commands from
//     free text
//   - RetrievalComposer: selection of the grounding material for an answer
//   - ResponseSynthesizer: grounded answer generation with a deterministic
//     fallback
//   - SuggestionGenerator: transition-aware follow-up prompts
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
