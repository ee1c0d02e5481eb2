package queries

import (
	"errors"
	"strings"
	"time"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/services"
	"courierbot/internal/pkg/errs"
	"courierbot/internal/pkg/guard"
)

var (
	ErrSearchKnowledgeQueryIsNotConstructed = errors.New(
		"SearchKnowledgeQuery must be created via NewSearchKnowledgeQuery constructor",
	)
	ErrSearchQueryIsRequired = errors.New("search query is required")
)

// SearchKnowledgeQuery retrieves the knowledge entries best matching a free
// text question, ranked by keyword overlap.
//
// Example:
//
//	query, err := NewSearchKnowledgeQuery("cod refund", 5)
//	if err != nil {
//	    return fmt.Errorf("invalid knowledge search: %w", err)
//	}
//
//	handler := NewSearchKnowledgeQueryHandler(db)
//	entries, err := handler.Handle(ctx, query)
type SearchKnowledgeQuery struct {
	query string
	limit int

	guard guard.ConstructorGuard
}

// NewSearchKnowledgeQuery creates a knowledge search query.
// Limit values below one fall back to the retrieval default.
func NewSearchKnowledgeQuery(query string, limit int) (SearchKnowledgeQuery, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchKnowledgeQuery{}, ErrSearchQueryIsRequired
	}

	if limit < 1 {
		limit = services.DefaultKnowledgeLimit
	}
	if limit > maxQueryLimit {
		return SearchKnowledgeQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxQueryLimit)
	}

	return SearchKnowledgeQuery{
		query: query,
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrSearchKnowledgeQueryIsNotConstructed if validation fails.
func (q SearchKnowledgeQuery) Validate() error {
	return q.guard.Validate(ErrSearchKnowledgeQueryIsNotConstructed)
}

// Query returns the free text to match against.
func (q SearchKnowledgeQuery) Query() string {
	return q.query
}

// Limit returns the maximum number of entries to return.
func (q SearchKnowledgeQuery) Limit() int {
	return q.limit
}

// SearchKnowledgeQueryResponse represents one matched knowledge entry.
type SearchKnowledgeQueryResponse struct {
	ID        kernel.UUID
	Category  string
	Title     string
	Body      string
	UpdatedAt time.Time
}
