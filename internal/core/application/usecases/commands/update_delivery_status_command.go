package commands

import (
	"errors"
	"strings"

	"courierbot/internal/core/domain/model/delivery"
	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/pkg/guard"
)

var (
	ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
		"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
	)
	ErrTrackingNumberIsRequired = errors.New("tracking number is required")
)

// UpdateDeliveryStatusCommand represents a courier's request to move one of
// their deliveries to a new status. The courier identity travels with the
// command: a delivery that belongs to someone else is rejected exactly like
// a delivery that does not exist.
//
// Example:
//
//	cmd, err := NewUpdateDeliveryStatusCommand(courierID, "TRK-1021", delivery.StatusDelivered,
//	    "left at the reception desk")
//	if err != nil {
//	    return fmt.Errorf("invalid status update: %w", err)
//	}
//
//	handler := NewUpdateDeliveryStatusCommandHandler(uowFactory)
//	updated, err := handler.Handle(ctx, cmd)
type UpdateDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	courierID      kernel.UUID
	trackingNumber string
	targetStatus   delivery.Status
	note           string

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryStatusCommand creates a command to change a delivery's status.
// Validates that the courier ID, tracking number, and target status are set.
// The note is optional free text recorded in the delivery's audit log.
func NewUpdateDeliveryStatusCommand(courierID kernel.UUID, trackingNumber string,
	targetStatus delivery.Status, note string) (UpdateDeliveryStatusCommand, error) {
	statusCommand := UpdateDeliveryStatusCommand{
		note:  strings.TrimSpace(note),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		statusCommand.setCourierID(courierID),
		statusCommand.setTrackingNumber(trackingNumber),
		statusCommand.setTargetStatus(targetStatus),
	); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}

	return statusCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateDeliveryStatusCommandIsNotConstructed if validation fails.
func (c UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}

// CourierID returns the courier requesting the change.
func (c UpdateDeliveryStatusCommand) CourierID() kernel.UUID {
	return c.courierID
}

// TrackingNumber returns the delivery's tracking reference.
func (c UpdateDeliveryStatusCommand) TrackingNumber() string {
	return c.trackingNumber
}

// TargetStatus returns the requested status.
func (c UpdateDeliveryStatusCommand) TargetStatus() delivery.Status {
	return c.targetStatus
}

// Note returns the optional audit note, empty when none was given.
func (c UpdateDeliveryStatusCommand) Note() string {
	return c.note
}

func (c *UpdateDeliveryStatusCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *UpdateDeliveryStatusCommand) setTrackingNumber(trackingNumber string) error {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return ErrTrackingNumberIsRequired
	}

	c.trackingNumber = trackingNumber
	return nil
}

func (c *UpdateDeliveryStatusCommand) setTargetStatus(targetStatus delivery.Status) error {
	if err := targetStatus.Validate(); err != nil {
		return err
	}

	c.targetStatus = targetStatus
	return nil
}
