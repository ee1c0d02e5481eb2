package queries

import (
	"context"
	"time"

	"gorm.io/gorm"

	"courierbot/internal/core/domain/model/delivery"
)

// GetPerformanceMetricsQueryHandler aggregates a courier's daily figures in
// SQL: totals and outcomes over the day's deliveries, earnings over the
// delivered ones, and the average minutes from creation to completion.
type GetPerformanceMetricsQueryHandler struct {
	db *gorm.DB
}

// NewGetPerformanceMetricsQueryHandler creates a handler for performance metric queries.
// Requires a GORM database connection for query execution.
func NewGetPerformanceMetricsQueryHandler(db *gorm.DB) GetPerformanceMetricsQueryHandler {
	return GetPerformanceMetricsQueryHandler{db: db}
}

// Handle executes the aggregation for the query's courier and day.
// A day with no deliveries yields zeroes, not an error.
func (h GetPerformanceMetricsQueryHandler) Handle(
	ctx context.Context,
	query GetPerformanceMetricsQuery,
) (GetPerformanceMetricsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPerformanceMetricsQueryResponse{}, err
	}

	dayStart := query.Day()
	dayEnd := dayStart.Add(24 * time.Hour)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = ?),
			COUNT(*) FILTER (WHERE status = ?),
			COALESCE(SUM(cod_amount) FILTER (WHERE status = ?), 0),
			COALESCE(AVG(EXTRACT(EPOCH FROM (delivered_at - created_at)) / 60)
				FILTER (WHERE status = ? AND delivered_at IS NOT NULL), 0)
		FROM deliveries
		WHERE courier_id = ?
		  AND created_at >= ?
		  AND created_at < ?
	`,
		int(delivery.StatusDelivered),
		int(delivery.StatusFailed),
		int(delivery.StatusDelivered),
		int(delivery.StatusDelivered),
		query.CourierID().Bytes(),
		dayStart,
		dayEnd,
	).Row()

	resp := GetPerformanceMetricsQueryResponse{Day: dayStart}

	var avgMinutes float64
	err := row.Scan(
		&resp.TotalDeliveries,
		&resp.Completed,
		&resp.Failed,
		&resp.TotalEarnings,
		&avgMinutes,
	)
	if err != nil {
		return GetPerformanceMetricsQueryResponse{}, err
	}

	resp.AverageDeliveryMinutes = int(avgMinutes)
	if resp.TotalDeliveries > 0 {
		resp.SuccessRate = float64(resp.Completed) / float64(resp.TotalDeliveries) * 100
	}

	return resp, nil
}
