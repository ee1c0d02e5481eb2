package queries

import (
	"errors"
	"time"

	"courierbot/internal/core/domain/model/delivery"
	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/pkg/errs"
	"courierbot/internal/pkg/guard"
)

// DefaultDeliveriesLimit caps the result set when the caller passes no limit.
const DefaultDeliveriesLimit = 50

// maxQueryLimit bounds any caller-supplied limit across the read side.
const maxQueryLimit = 200

var (
	ErrGetDeliveriesQueryIsNotConstructed = errors.New(
		"GetDeliveriesQuery must be created via NewGetDeliveriesQuery constructor",
	)
)

// GetDeliveriesQuery retrieves a courier's own deliveries, newest first,
// optionally narrowed to a single status.
//
// Example:
//
//	query, err := NewGetDeliveriesQuery(courierID, delivery.StatusInTransit, 20)
//	if err != nil {
//	    return fmt.Errorf("invalid deliveries query: %w", err)
//	}
//
//	handler := NewGetDeliveriesQueryHandler(db)
//	deliveries, err := handler.Handle(ctx, query)
type GetDeliveriesQuery struct {
	courierID    kernel.UUID
	statusFilter delivery.Status
	limit        int

	guard guard.ConstructorGuard
}

// NewGetDeliveriesQuery creates a query for a courier's deliveries.
// Pass delivery.StatusUnknown to skip status filtering; limit values below
// one fall back to DefaultDeliveriesLimit.
func NewGetDeliveriesQuery(courierID kernel.UUID, statusFilter delivery.Status,
	limit int) (GetDeliveriesQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetDeliveriesQuery{}, err
	}

	if statusFilter != delivery.StatusUnknown {
		if err := statusFilter.Validate(); err != nil {
			return GetDeliveriesQuery{}, err
		}
	}

	if limit < 1 {
		limit = DefaultDeliveriesLimit
	}
	if limit > maxQueryLimit {
		return GetDeliveriesQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxQueryLimit)
	}

	return GetDeliveriesQuery{
		courierID:    courierID,
		statusFilter: statusFilter,
		limit:        limit,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDeliveriesQueryIsNotConstructed if validation fails.
func (q GetDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveriesQueryIsNotConstructed)
}

// CourierID returns the caller whose deliveries are listed.
func (q GetDeliveriesQuery) CourierID() kernel.UUID {
	return q.courierID
}

// StatusFilter returns the requested status narrowing, delivery.StatusUnknown
// when the caller asked for all statuses.
func (q GetDeliveriesQuery) StatusFilter() delivery.Status {
	return q.statusFilter
}

// Limit returns the maximum number of rows to return.
func (q GetDeliveriesQuery) Limit() int {
	return q.limit
}

// GetDeliveriesQueryResponse represents one delivery row for listing.
type GetDeliveriesQueryResponse struct {
	ID              kernel.UUID
	TrackingNumber  string
	Status          delivery.Status
	CustomerName    string
	CustomerAddress string
	CODAmount       float64
	CreatedAt       time.Time
}
