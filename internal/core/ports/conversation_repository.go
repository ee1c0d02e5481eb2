package ports

import (
	"context"

	"courierbot/internal/core/domain/model/conversation"
	"courierbot/internal/core/domain/model/kernel"
)

// ConversationRepository defines the persistence contract for the append-only
// conversation log.
type ConversationRepository interface {
	// Add persists one answered turn. Failures here must not fail the turn
	// itself; the caller logs and moves on.
	Add(ctx context.Context, record *conversation.LogRecord) error

	// ListForCourier retrieves up to limit of a courier's newest log records,
	// newest first.
	ListForCourier(ctx context.Context, courierID kernel.UUID, limit int) ([]*conversation.LogRecord, error)
}
