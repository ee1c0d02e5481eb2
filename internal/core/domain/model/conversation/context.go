package conversation

import (
	"time"

	"courierbot/internal/core/domain/model/kernel"
)

// DefaultMaxTurns bounds the turn history kept per courier when no explicit
// limit is configured.
const DefaultMaxTurns = 10

// Context is the short-lived multi-turn state kept for one courier: the last
// N turns, the last classified intent, the last delivery the conversation was
// about, and the suggestions offered on the previous turn (kept so the next
// turn can avoid repeating them).
//
// A Context belongs to exactly one courier. Callers must serialize access per
// courier; the context store provides the per-user lock. Context is created
// lazily on the first message and destroyed on expiry.
type Context struct {
	courierID       kernel.UUID
	turns           []Turn
	maxTurns        int
	lastIntent      Intent
	lastDeliveryRef string
	lastSuggestions []string
	touchedAt       time.Time
}

// NewContext creates an empty conversation context for a courier.
// maxTurns values below one fall back to DefaultMaxTurns.
func NewContext(courierID kernel.UUID, maxTurns int) *Context {
	if maxTurns < 1 {
		maxTurns = DefaultMaxTurns
	}

	return &Context{
		courierID:  courierID,
		maxTurns:   maxTurns,
		lastIntent: IntentUnclassified,
		touchedAt:  time.Now().UTC(),
	}
}

// CourierID returns the owning courier.
func (c *Context) CourierID() kernel.UUID {
	return c.courierID
}

// Append adds a turn to the history, evicting the oldest turn once the
// bounded capacity is exceeded. Appending refreshes the idle timer.
func (c *Context) Append(turn Turn) {
	c.turns = append(c.turns, turn)
	if len(c.turns) > c.maxTurns {
		c.turns = c.turns[len(c.turns)-c.maxTurns:]
	}
	c.touchedAt = time.Now().UTC()
}

// Turns returns the retained history, oldest first.
func (c *Context) Turns() []Turn {
	return c.turns
}

// RecentTurns returns up to n of the newest turns, oldest first.
func (c *Context) RecentTurns(n int) []Turn {
	if n <= 0 || len(c.turns) == 0 {
		return nil
	}
	if n >= len(c.turns) {
		return c.turns
	}
	return c.turns[len(c.turns)-n:]
}

// SetLastIntent records the intent classified for the newest turn.
func (c *Context) SetLastIntent(intent Intent) {
	c.lastIntent = intent
}

// LastIntent returns the previously classified intent, IntentUnclassified
// for a fresh context.
func (c *Context) LastIntent() Intent {
	return c.lastIntent
}

// SetLastDeliveryRef records the tracking number last discussed.
func (c *Context) SetLastDeliveryRef(ref string) {
	c.lastDeliveryRef = ref
}

// LastDeliveryRef returns the tracking number last discussed, empty when the
// conversation has not touched a specific delivery.
func (c *Context) LastDeliveryRef() string {
	return c.lastDeliveryRef
}

// SetLastSuggestions records the follow-up prompts offered on this turn.
func (c *Context) SetLastSuggestions(suggestions []string) {
	c.lastSuggestions = suggestions
}

// LastSuggestions returns the previous turn's follow-up prompts.
func (c *Context) LastSuggestions() []string {
	return c.lastSuggestions
}

// TouchedAt returns when the context last saw activity.
func (c *Context) TouchedAt() time.Time {
	return c.touchedAt
}

// IdleFor reports how long the context has been inactive.
func (c *Context) IdleFor(now time.Time) time.Duration {
	return now.Sub(c.touchedAt)
}
