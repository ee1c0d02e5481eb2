// Package memory keeps the per-courier conversation state. Contexts are
// deliberately not persisted: they are cheap to rebuild and expire within
// minutes anyway.
package memory

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"courierbot/internal/core/domain/model/conversation"
	"courierbot/internal/core/domain/model/kernel"
)

const (
	// DefaultTTL is how long a context survives without activity.
	DefaultTTL = 30 * time.Minute

	// DefaultMaxEntries bounds the number of concurrent conversations kept,
	// evicting the least recently used beyond it.
	DefaultMaxEntries = 10000

	lockStripes = 64
)

// ContextStore implements ports.ContextStore over an expiring LRU cache.
//
// Turn processing for one courier is serialized with striped mutexes keyed by
// the courier ID, so the store never holds one lock per courier ever seen.
type ContextStore struct {
	contexts *expirable.LRU[string, *conversation.Context]
	ttl      time.Duration
	maxTurns int

	locks [lockStripes]sync.Mutex
}

// NewContextStore creates a ContextStore. Non-positive ttl, maxEntries, and
// maxTurns fall back to their defaults.
func NewContextStore(ttl time.Duration, maxEntries int, maxTurns int) *ContextStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxEntries < 1 {
		maxEntries = DefaultMaxEntries
	}
	if maxTurns < 1 {
		maxTurns = conversation.DefaultMaxTurns
	}

	return &ContextStore{
		contexts: expirable.NewLRU[string, *conversation.Context](maxEntries, nil, ttl),
		ttl:      ttl,
		maxTurns: maxTurns,
	}
}

// Lock serializes turn processing for one courier and returns the unlock
// function.
func (s *ContextStore) Lock(courierID kernel.UUID) func() {
	stripe := &s.locks[courierID.Bytes()[0]%lockStripes]
	stripe.Lock()
	return stripe.Unlock
}

// Get returns the courier's conversation context, creating an empty one when
// none exists or the previous one expired. Reading refreshes the TTL.
func (s *ContextStore) Get(courierID kernel.UUID) *conversation.Context {
	key := courierID.String()

	if ctx, ok := s.contexts.Get(key); ok {
		// Re-adding resets the entry's expiry
		s.contexts.Add(key, ctx)
		return ctx
	}

	ctx := conversation.NewContext(courierID, s.maxTurns)
	s.contexts.Add(key, ctx)
	return ctx
}

// SweepExpired removes contexts idle longer than the TTL and returns how many
// were removed. The cache also expires entries on its own; the sweep exists
// so idle state is reclaimed on a schedule rather than on next access.
func (s *ContextStore) SweepExpired(now time.Time) int {
	removed := 0
	for _, key := range s.contexts.Keys() {
		ctx, ok := s.contexts.Peek(key)
		if !ok {
			continue
		}
		if ctx.IdleFor(now) >= s.ttl {
			s.contexts.Remove(key)
			removed++
		}
	}
	return removed
}

// Len reports how many live conversations the store currently holds.
func (s *ContextStore) Len() int {
	return s.contexts.Len()
}
