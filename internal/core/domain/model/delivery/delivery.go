package delivery

import (
	"errors"
	"time"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/pkg/errs"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not created
	// through the NewDelivery factory method. This ensures all deliveries are properly validated.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

	// ErrIllegalTransition is returned when a requested status change is not
	// present in the state machine's transition table.
	ErrIllegalTransition = errors.New("status transition is not allowed")

	// ErrStatusUnchanged is returned when a transition targets the status the
	// delivery is already in. The request is a no-op and must not mutate the
	// audit history.
	ErrStatusUnchanged = errors.New("delivery is already in the requested status")
)

// CustomerInfo holds the recipient details attached to a delivery.
// It is carried verbatim into grounding facts so the assistant can answer
// "who am I delivering to" without fabricating contact data.
type CustomerInfo struct {
	Name    string
	Phone   string
	Address string
}

// Delivery represents a package assigned to a courier. It is the aggregate
// root that owns the status lifecycle from assignment through a terminal
// outcome (delivered, failed, or returned).
//
// Delivery follows these invariants:
//   - Must have a valid unique identifier and owning courier
//   - Must have a non-empty tracking number
//   - Status transitions follow the state machine in status.go
//   - Status is monotonic along the happy path and moves into exactly one
//     terminal state
//   - Can only be created through NewDelivery or RestoreDelivery
//
// The struct uses private fields to maintain its invariants through
// validated methods.
type Delivery struct {
	id             kernel.UUID
	courierID      kernel.UUID
	trackingNumber string
	customer       CustomerInfo
	codAmount      float64
	status         Status
	createdAt      time.Time
	updatedAt      time.Time
	deliveredAt    *time.Time

	isConstructed bool
}

// NewDelivery creates a new Delivery in Assigned status with validation.
// This is the only way to create a valid new Delivery.
//
// Parameters:
//   - id: unique identifier for the delivery
//   - courierID: the courier the delivery belongs to
//   - trackingNumber: external reference the courier and customer know the
//     delivery by ("42", "ORD-1021", ...)
//   - customer: recipient details
//   - codAmount: cash to collect on delivery, zero when prepaid
//
// Example:
//
//	d, err := delivery.NewDelivery(kernel.NewUUID(), courierID, "ORD-1021",
//	    delivery.CustomerInfo{Name: "R. Patel", Address: "14 Hill Rd"}, 250)
//	if err != nil {
//	    // Handle validation error
//	}
func NewDelivery(
	id kernel.UUID,
	courierID kernel.UUID,
	trackingNumber string,
	customer CustomerInfo,
	codAmount float64,
) (*Delivery, error) {
	now := time.Now().UTC()
	d := &Delivery{
		status:        StatusAssigned,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setCourierID(courierID),
		d.setTrackingNumber(trackingNumber),
		d.setCODAmount(codAmount),
	); err != nil {
		return nil, err
	}

	d.customer = customer
	return d, nil
}

// RestoreDelivery reconstructs a Delivery from persistence.
// Unlike NewDelivery it accepts an arbitrary status and timestamps, but still
// validates identifiers and the status value itself.
func RestoreDelivery(
	id kernel.UUID,
	courierID kernel.UUID,
	trackingNumber string,
	customer CustomerInfo,
	codAmount float64,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
	deliveredAt *time.Time,
) (*Delivery, error) {
	d := &Delivery{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		deliveredAt:   deliveredAt,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setCourierID(courierID),
		d.setTrackingNumber(trackingNumber),
		d.setCODAmount(codAmount),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	d.customer = customer
	d.status = status
	return d, nil
}

// Validate ensures the Delivery instance was properly constructed.
// Returns ErrDeliveryIsNotConstructed for zero-value instances.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// IsEqual compares two deliveries by their unique identifiers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// CourierID returns the owning courier's identifier.
func (d *Delivery) CourierID() kernel.UUID {
	return d.courierID
}

// TrackingNumber returns the external reference of the delivery.
func (d *Delivery) TrackingNumber() string {
	return d.trackingNumber
}

// Customer returns the recipient details.
func (d *Delivery) Customer() CustomerInfo {
	return d.customer
}

// CODAmount returns the cash-on-delivery amount, zero when prepaid.
func (d *Delivery) CODAmount() float64 {
	return d.codAmount
}

// Status returns the current lifecycle status.
func (d *Delivery) Status() Status {
	return d.status
}

// CreatedAt returns when the delivery was assigned.
func (d *Delivery) CreatedAt() time.Time {
	return d.createdAt
}

// UpdatedAt returns when the delivery last changed.
func (d *Delivery) UpdatedAt() time.Time {
	return d.updatedAt
}

// DeliveredAt returns the completion time, nil while the delivery is not in
// Delivered status.
func (d *Delivery) DeliveredAt() *time.Time {
	return d.deliveredAt
}

// BelongsTo reports whether the delivery is owned by the given courier.
// Every read or mutation on behalf of a courier must pass this check first.
func (d *Delivery) BelongsTo(courierID kernel.UUID) bool {
	return d.courierID.IsEqual(courierID)
}

// TransitionTo moves the delivery to target following the state machine.
//
// This method enforces the following business rules:
//   - Requesting the current status is a no-op and returns ErrStatusUnchanged
//   - The transition must be present in the state machine's table, otherwise
//     ErrIllegalTransition is returned (wrapped with the concrete pair)
//   - Reaching Delivered stamps DeliveredAt
//
// On success the status and UpdatedAt are changed; on any error the delivery
// is left untouched.
//
// Example:
//
//	err := d.TransitionTo(delivery.StatusDelivered)
//	if errors.Is(err, delivery.ErrIllegalTransition) {
//	    // e.g. the package was never picked up
//	}
func (d *Delivery) TransitionTo(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	if target == d.status {
		return ErrStatusUnchanged
	}

	newStatus, err := d.status.TransitionTo(target)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	d.status = newStatus
	d.updatedAt = now
	if newStatus == StatusDelivered {
		d.deliveredAt = &now
	}
	return nil
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	d.courierID = courierID
	return nil
}

func (d *Delivery) setTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	d.trackingNumber = trackingNumber
	return nil
}

func (d *Delivery) setCODAmount(codAmount float64) error {
	if codAmount < 0 {
		return errs.NewValueIsOutOfRangeError("codAmount", codAmount, 0, "unbounded")
	}
	d.codAmount = codAmount
	return nil
}
