package conversation

import (
	"time"

	"courierbot/internal/pkg/errs"
)

// Role identifies which side of the conversation produced a turn.
type Role string

const (
	// RoleCourier marks a turn written by the courier.
	RoleCourier Role = "courier"

	// RoleAssistant marks a turn produced by the assistant.
	RoleAssistant Role = "assistant"
)

// Turn is a single utterance in a conversation: who said what, and when.
// Turns are immutable once appended to a context.
type Turn struct {
	role Role
	text string
	at   time.Time
}

// NewTurn creates a turn with validation.
func NewTurn(role Role, text string, at time.Time) (Turn, error) {
	if role != RoleCourier && role != RoleAssistant {
		return Turn{}, errs.NewValueIsInvalidError("role")
	}
	if text == "" {
		return Turn{}, errs.NewValueIsRequiredError("text")
	}

	return Turn{role: role, text: text, at: at}, nil
}

// Role returns who produced the turn.
func (t Turn) Role() Role {
	return t.role
}

// Text returns the turn's content.
func (t Turn) Text() string {
	return t.text
}

// At returns when the turn happened.
func (t Turn) At() time.Time {
	return t.at
}
