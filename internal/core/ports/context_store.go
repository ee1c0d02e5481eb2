package ports

import (
	"time"

	"courierbot/internal/core/domain/model/conversation"
	"courierbot/internal/core/domain/model/kernel"
)

// ContextStore keeps the short-lived conversation state per courier. State
// lives in memory only and expires after a period of inactivity.
type ContextStore interface {
	// Lock serializes turn processing for one courier and returns the unlock
	// function. Different couriers proceed concurrently.
	Lock(courierID kernel.UUID) (unlock func())

	// Get returns the courier's conversation context, creating an empty one
	// when none exists or the previous one expired. Callers must hold the
	// courier's lock.
	Get(courierID kernel.UUID) *conversation.Context

	// SweepExpired removes contexts idle longer than the store's TTL and
	// returns how many were removed.
	SweepExpired(now time.Time) int
}
