package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"courierbot/internal/core/domain/model/delivery"
	"courierbot/internal/core/domain/model/kernel"
)

// GetDeliveriesQueryHandler reads a courier's deliveries straight from the
// database. The read side bypasses the aggregate and repositories: listing
// needs rows, not domain behavior.
//
// Example:
//
//	handler := NewGetDeliveriesQueryHandler(db)
//	query, _ := NewGetDeliveriesQuery(courierID, delivery.StatusUnknown, 0)
//
//	deliveries, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list deliveries: %w", err)
//	}
type GetDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveriesQueryHandler creates a handler for delivery listing queries.
// Requires a GORM database connection for query execution.
func NewGetDeliveriesQueryHandler(db *gorm.DB) GetDeliveriesQueryHandler {
	return GetDeliveriesQueryHandler{db: db}
}

// Handle executes the query and returns the courier's deliveries newest
// first. A status filter, when present, narrows the rows in SQL.
func (h GetDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveriesQuery,
) ([]GetDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			tracking_number,
			status,
			customer_name,
			customer_address,
			cod_amount,
			created_at
		FROM deliveries
		WHERE courier_id = ?
	`
	args := []any{query.CourierID().Bytes()}

	if query.StatusFilter() != delivery.StatusUnknown {
		sql += " AND status = ?"
		args = append(args, int(query.StatusFilter()))
	}

	sql += " ORDER BY created_at DESC LIMIT ?"
	args = append(args, query.Limit())

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := make([]GetDeliveriesQueryResponse, 0)

	for rows.Next() {
		var resp GetDeliveriesQueryResponse
		var id uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&resp.TrackingNumber,
			&status,
			&resp.CustomerName,
			&resp.CustomerAddress,
			&resp.CODAmount,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		deliveryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = deliveryID
		resp.Status = delivery.Status(status)

		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
