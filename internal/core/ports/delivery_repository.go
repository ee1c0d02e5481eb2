// Package ports defines the contracts between the assistant's core and its
// infrastructure: persistence, the language-model gateway, and the in-memory
// conversation state. These interfaces establish dependency inversion and
// testability boundaries.
package ports

import (
	"context"
	"errors"

	"courierbot/internal/core/domain/model/delivery"
	"courierbot/internal/core/domain/model/kernel"
)

// ErrStaleDelivery is returned by UpdateStatus when the stored delivery no
// longer carries the status the transition started from.
var ErrStaleDelivery = errors.New("delivery was modified concurrently")

// DeliveryRepository defines the persistence contract for delivery aggregates.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate to storage.
	// The delivery must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate.
	// The delivery must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// UpdateStatus persists a status transition that already happened on the
	// aggregate, guarded by the status the transition started from. The write
	// fails with ErrStaleDelivery when the stored row no longer carries
	// previous, so two couriers' devices cannot apply conflicting moves. The
	// transition is recorded in the delivery's audit log within the same
	// transaction: previous status, new status, the actor who applied it, an
	// optional free-text note, and the timestamp.
	UpdateStatus(ctx context.Context, aggregate *delivery.Delivery, previous delivery.Status,
		actorID kernel.UUID, note string) error

	// Get retrieves a delivery aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetByTrackingNumber retrieves a delivery by its courier-facing tracking
	// reference. Matching is case-insensitive.
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*delivery.Delivery, error)

	// ListForCourier retrieves all deliveries assigned to one courier,
	// newest first.
	ListForCourier(ctx context.Context, courierID kernel.UUID) ([]*delivery.Delivery, error)
}
