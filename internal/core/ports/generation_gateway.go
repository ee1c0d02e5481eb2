package ports

import (
	"context"
	"errors"
)

// Generation gateway failure modes. The synthesizer treats them all as a cue
// to fall back; they stay distinct for logging and metrics.
var (
	// ErrGenerationTimeout is returned when the provider did not answer
	// within the configured deadline.
	ErrGenerationTimeout = errors.New("generation timed out")

	// ErrProviderUnavailable is returned for transport and provider-side
	// failures.
	ErrProviderUnavailable = errors.New("generation provider unavailable")

	// ErrMalformedResponse is returned when the provider answered with no
	// usable text.
	ErrMalformedResponse = errors.New("generation response is malformed")
)

// GenerationGateway produces a free-form answer for a fully assembled prompt.
// Implementations must respect context cancellation and map provider errors
// onto the sentinel failure modes above.
type GenerationGateway interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
