package deliveryrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"courierbot/internal/core/domain/model/delivery"
	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/ports"
	"courierbot/internal/pkg/errs"
)

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery to the database.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing delivery to the database.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateStatus persists a status transition guarded by the status it started
// from. The UPDATE matches on both id and the previous status, so a row that
// moved on since the aggregate was loaded is left untouched and the call
// fails with ports.ErrStaleDelivery. An audit row recording who applied the
// move, and why, is written alongside.
func (r *GormDeliveryRepository) UpdateStatus(ctx context.Context,
	aggregate *delivery.Delivery, previous delivery.Status,
	actorID kernel.UUID, note string) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := actorID.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("id = ? AND status = ?", aggregate.ID().Bytes(), int(previous)).
		Updates(map[string]any{
			"status":       int(aggregate.Status()),
			"updated_at":   aggregate.UpdatedAt(),
			"delivered_at": aggregate.DeliveredAt(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrStaleDelivery
	}

	logRow := DeliveryLogDTO{
		ID:         kernel.NewUUID().Bytes(),
		DeliveryID: aggregate.ID().Bytes(),
		FromStatus: int(previous),
		ToStatus:   int(aggregate.Status()),
		ActorID:    actorID.Bytes(),
		Note:       note,
		CreatedAt:  time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&logRow).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a delivery by ID.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByTrackingNumber retrieves a delivery by its tracking reference.
func (r *GormDeliveryRepository) GetByTrackingNumber(ctx context.Context,
	trackingNumber string) (*delivery.Delivery, error) {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return nil, errs.NewValueIsRequiredError("trackingNumber")
	}

	var dto DeliveryDTO
	err := r.db.WithContext(ctx).
		First(&dto, "LOWER(tracking_number) = LOWER(?)", trackingNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", trackingNumber)
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListForCourier retrieves all deliveries assigned to a courier, newest first.
func (r *GormDeliveryRepository) ListForCourier(ctx context.Context,
	courierID kernel.UUID) ([]*delivery.Delivery, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&dtos, "courier_id = ?", courierID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}

	return deliveries, nil
}
