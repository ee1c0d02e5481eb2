// Package anthropic adapts the Anthropic Messages API to the generation
// gateway port. It is the only place in the codebase that knows which model
// answers couriers.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"courierbot/internal/core/ports"
	"courierbot/internal/pkg/errs"
)

// DefaultMaxTokens bounds the model's answer length in tokens.
const DefaultMaxTokens = 1024

// Config carries the provider settings.
type Config struct {
	APIKey    string
	Model     string
	MaxTokens int
}

// Gateway implements ports.GenerationGateway over the Anthropic Messages API.
type Gateway struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

// NewGateway creates a Gateway from the provider settings. MaxTokens values
// below one fall back to DefaultMaxTokens.
func NewGateway(config Config) (*Gateway, error) {
	if config.APIKey == "" {
		return nil, errs.NewValueIsRequiredError("apiKey")
	}
	if config.Model == "" {
		return nil, errs.NewValueIsRequiredError("model")
	}
	if config.MaxTokens < 1 {
		config.MaxTokens = DefaultMaxTokens
	}

	return &Gateway{
		client:    anthropic.NewClient(option.WithAPIKey(config.APIKey)),
		model:     anthropic.Model(config.Model),
		maxTokens: int64(config.MaxTokens),
	}, nil
}

// Generate sends the prompt and returns the model's text answer. Provider
// failures are mapped onto the gateway port's sentinel errors so callers can
// fall back without inspecting provider internals.
func (g *Gateway) Generate(ctx context.Context, prompt string) (string, error) {
	message, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     g.model,
		MaxTokens: g.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", mapProviderError(err)
	}

	var b strings.Builder
	for _, block := range message.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(text.Text)
		}
	}

	answer := strings.TrimSpace(b.String())
	if answer == "" {
		return "", ports.ErrMalformedResponse
	}

	return answer, nil
}

func mapProviderError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ports.ErrGenerationTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %w", ports.ErrProviderUnavailable, err)
}
