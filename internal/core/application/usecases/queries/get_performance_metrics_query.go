package queries

import (
	"errors"
	"time"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/pkg/guard"
)

var (
	ErrGetPerformanceMetricsQueryIsNotConstructed = errors.New(
		"GetPerformanceMetricsQuery must be created via NewGetPerformanceMetricsQuery constructor",
	)
)

// GetPerformanceMetricsQuery computes a courier's daily performance figures
// from their deliveries created on a given day.
//
// Example:
//
//	query, err := NewGetPerformanceMetricsQuery(courierID, time.Now().UTC())
//	if err != nil {
//	    return fmt.Errorf("invalid metrics query: %w", err)
//	}
//
//	handler := NewGetPerformanceMetricsQueryHandler(db)
//	metrics, err := handler.Handle(ctx, query)
type GetPerformanceMetricsQuery struct {
	courierID kernel.UUID
	day       time.Time

	guard guard.ConstructorGuard
}

// NewGetPerformanceMetricsQuery creates a metrics query for one courier and
// one calendar day. The day is truncated to midnight UTC.
func NewGetPerformanceMetricsQuery(courierID kernel.UUID, day time.Time) (GetPerformanceMetricsQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetPerformanceMetricsQuery{}, err
	}

	day = day.UTC().Truncate(24 * time.Hour)

	return GetPerformanceMetricsQuery{
		courierID: courierID,
		day:       day,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetPerformanceMetricsQueryIsNotConstructed if validation fails.
func (q GetPerformanceMetricsQuery) Validate() error {
	return q.guard.Validate(ErrGetPerformanceMetricsQueryIsNotConstructed)
}

// CourierID returns the courier the metrics are computed for.
func (q GetPerformanceMetricsQuery) CourierID() kernel.UUID {
	return q.courierID
}

// Day returns the UTC midnight of the day the metrics cover.
func (q GetPerformanceMetricsQuery) Day() time.Time {
	return q.day
}

// GetPerformanceMetricsQueryResponse represents one courier's figures for one
// day. SuccessRate is a percentage of the day's deliveries that were
// delivered; AverageDeliveryMinutes covers delivered ones with a recorded
// completion time.
type GetPerformanceMetricsQueryResponse struct {
	Day                    time.Time
	TotalDeliveries        int
	Completed              int
	Failed                 int
	SuccessRate            float64
	AverageDeliveryMinutes int
	TotalEarnings          float64
}
