// Package deliveryrepo provides data transfer objects and mapping functions for delivery persistence.
// This package implements the repository pattern for the delivery domain aggregate, handling
// the conversion between domain entities and database representations.
package deliveryrepo

import (
	"time"

	"github.com/google/uuid"

	"courierbot/internal/core/domain/model/delivery"
	"courierbot/internal/core/domain/model/kernel"
)

// DeliveryDTO represents the database structure for persisting delivery aggregates.
// Maps delivery domain entities to relational database tables with proper indexing
// for efficient querying by courier and tracking number.
type DeliveryDTO struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey"`
	CourierID      uuid.UUID   `gorm:"type:uuid;index"`
	TrackingNumber string      `gorm:"uniqueIndex"`
	Customer       CustomerDTO `gorm:"embedded;embeddedPrefix:customer_"`
	CODAmount      float64
	Status         int `gorm:"index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeliveredAt    *time.Time
}

// TableName specifies the database table name for delivery entities.
// Overrides GORM's default naming convention to use "deliveries".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// CustomerDTO represents the embedded recipient details within the delivery table.
type CustomerDTO struct {
	Name    string
	Phone   string
	Address string
}

// DeliveryLogDTO is one audit row per applied status transition. Rows are
// append-only and written in the same transaction as the transition itself.
type DeliveryLogDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID uuid.UUID `gorm:"type:uuid;index"`
	FromStatus int
	ToStatus   int
	ActorID    uuid.UUID `gorm:"type:uuid;index"`
	Note       string
	CreatedAt  time.Time
}

// TableName specifies the database table name for delivery audit rows.
func (DeliveryLogDTO) TableName() string {
	return "delivery_logs"
}

// fromDomain converts a delivery domain aggregate to its database representation.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	return DeliveryDTO{
		ID:             aggregate.ID().Bytes(),
		CourierID:      aggregate.CourierID().Bytes(),
		TrackingNumber: aggregate.TrackingNumber(),
		Customer: CustomerDTO{
			Name:    aggregate.Customer().Name,
			Phone:   aggregate.Customer().Phone,
			Address: aggregate.Customer().Address,
		},
		CODAmount:   aggregate.CODAmount(),
		Status:      int(aggregate.Status()),
		CreatedAt:   aggregate.CreatedAt(),
		UpdatedAt:   aggregate.UpdatedAt(),
		DeliveredAt: aggregate.DeliveredAt(),
	}
}

// toDomain converts a database DTO to a delivery domain aggregate.
// Reconstructs the complete aggregate including its status using RestoreDelivery.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(
		id,
		courierID,
		dto.TrackingNumber,
		delivery.CustomerInfo{
			Name:    dto.Customer.Name,
			Phone:   dto.Customer.Phone,
			Address: dto.Customer.Address,
		},
		dto.CODAmount,
		delivery.Status(dto.Status),
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.DeliveredAt,
	)
}
