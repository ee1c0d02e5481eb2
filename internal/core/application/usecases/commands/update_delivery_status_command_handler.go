package commands

import (
	"context"

	"courierbot/internal/core/domain/model/delivery"
	"courierbot/internal/pkg/errs"
)

// UpdateDeliveryStatusCommandHandler handles the business logic for delivery
// status changes. It enforces ownership and the state machine before any
// write happens.
//
// A delivery owned by another courier is reported with the same error as a
// missing one. The caller learns nothing about deliveries that are not theirs.
//
// Example:
//
//	handler := NewUpdateDeliveryStatusCommandHandler(uowFactory)
//	cmd, _ := NewUpdateDeliveryStatusCommand(courierID, "TRK-1021", delivery.StatusPickedUp, "")
//
//	updated, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, delivery.ErrIllegalTransition) {
//	    // The move is not allowed from the delivery's current status
//	}
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewUpdateDeliveryStatusCommandHandler creates a handler for status change operations.
// Requires a DeliveryUoWFactory for transactional persistence.
func NewUpdateDeliveryStatusCommandHandler(uowFactory DeliveryUoWFactory) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status change command and returns the updated delivery.
//
// Failure modes, all without any write:
//   - errs.ErrObjectNotFound: unknown tracking number, or a delivery the
//     courier does not own
//   - delivery.ErrStatusUnchanged: the delivery already has the target status
//   - delivery.ErrIllegalTransition: the state machine forbids the move
func (h *UpdateDeliveryStatusCommandHandler) Handle(ctx context.Context,
	cmd UpdateDeliveryStatusCommand) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	aggregate, err := deliveryRepo.GetByTrackingNumber(ctx, cmd.TrackingNumber())
	if err != nil {
		return nil, err
	}

	if !aggregate.BelongsTo(cmd.CourierID()) {
		// Same error as an unknown tracking number
		return nil, errs.NewObjectNotFoundError("delivery", cmd.TrackingNumber())
	}

	previous := aggregate.Status()
	if err = aggregate.TransitionTo(cmd.TargetStatus()); err != nil {
		return nil, err
	}

	if err = deliveryRepo.UpdateStatus(ctx, aggregate, previous, cmd.CourierID(), cmd.Note()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
