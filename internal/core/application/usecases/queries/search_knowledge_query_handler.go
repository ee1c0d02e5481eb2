package queries

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/knowledge"
)

// SearchKnowledgeQueryHandler loads the knowledge base and ranks it against
// the search text. Ranking happens in memory with the same scoring the
// conversational pipeline uses, so a direct search and a grounded answer
// never disagree about what matches.
type SearchKnowledgeQueryHandler struct {
	db *gorm.DB
}

// NewSearchKnowledgeQueryHandler creates a handler for knowledge search queries.
// Requires a GORM database connection for query execution.
func NewSearchKnowledgeQueryHandler(db *gorm.DB) SearchKnowledgeQueryHandler {
	return SearchKnowledgeQueryHandler{db: db}
}

// Handle executes the search and returns the best matches, strongest first.
// A query that matches nothing returns an empty slice, not an error.
func (h SearchKnowledgeQueryHandler) Handle(
	ctx context.Context,
	query SearchKnowledgeQuery,
) ([]SearchKnowledgeQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			category,
			title,
			body,
			keywords,
			updated_at
		FROM knowledge_entries
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*knowledge.Entry, 0)

	for rows.Next() {
		var id uuid.UUID
		var category, title, body string
		var rawKeywords []byte
		var updatedAt time.Time

		err = rows.Scan(&id, &category, &title, &body, &rawKeywords, &updatedAt)
		if err != nil {
			return nil, err
		}

		var keywords []string
		if len(rawKeywords) > 0 {
			if err = json.Unmarshal(rawKeywords, &keywords); err != nil {
				return nil, err
			}
		}

		entryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		entry, entryErr := knowledge.NewEntry(entryID, category, title, body, keywords, updatedAt)
		if entryErr != nil {
			return nil, entryErr
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	ranked := knowledge.Rank(entries, query.Query(), query.Limit())

	responses := make([]SearchKnowledgeQueryResponse, 0, len(ranked))
	for _, entry := range ranked {
		responses = append(responses, SearchKnowledgeQueryResponse{
			ID:        entry.ID(),
			Category:  entry.Category(),
			Title:     entry.Title(),
			Body:      entry.Body(),
			UpdatedAt: entry.UpdatedAt(),
		})
	}

	return responses, nil
}
