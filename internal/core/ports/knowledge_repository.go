package ports

import (
	"context"

	"courierbot/internal/core/domain/model/knowledge"
)

// KnowledgeRepository defines the persistence contract for knowledge entries.
type KnowledgeRepository interface {
	// Add persists a new knowledge entry to storage.
	Add(ctx context.Context, entry *knowledge.Entry) error

	// Search retrieves up to limit entries ranked by keyword and text overlap
	// with the query, best match first. Entries with no overlap are not
	// returned at all.
	Search(ctx context.Context, query string, limit int) ([]*knowledge.Entry, error)

	// Categories lists the distinct entry categories in alphabetical order.
	Categories(ctx context.Context) ([]string, error)
}
