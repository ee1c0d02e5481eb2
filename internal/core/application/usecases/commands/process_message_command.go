package commands

import (
	"errors"
	"strings"

	"courierbot/internal/core/domain/model/delivery"
	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/pkg/guard"
)

// MaxMessageLength caps the accepted message size in bytes.
const MaxMessageLength = 4000

var (
	ErrProcessMessageCommandIsNotConstructed = errors.New(
		"ProcessMessageCommand must be created via NewProcessMessageCommand constructor",
	)
	ErrMessageIsRequired = errors.New("message is required")
	ErrMessageIsTooLong  = errors.New("message is too long")
)

// ProcessMessageCommand represents one courier message entering the
// conversational pipeline. The optional tracking number and target status
// carry an explicit structured action from the caller; when absent, the
// pipeline may still detect an action phrased in the message text.
//
// Example:
//
//	cmd, err := NewProcessMessageCommand(courierID, "mark delivery 42 as delivered",
//	    "", delivery.StatusUnknown)
//	if err != nil {
//	    return fmt.Errorf("invalid message: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
type ProcessMessageCommand struct { //nolint:recvcheck //using for validation
	courierID         kernel.UUID
	message           string
	requestedTracking string
	requestedStatus   delivery.Status

	guard guard.ConstructorGuard
}

// NewProcessMessageCommand creates a command for one courier message.
// requestedTracking and requestedStatus are optional; pass "" and
// delivery.StatusUnknown when the caller attached no explicit action.
func NewProcessMessageCommand(courierID kernel.UUID, message string,
	requestedTracking string, requestedStatus delivery.Status) (ProcessMessageCommand, error) {
	messageCommand := ProcessMessageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		messageCommand.setCourierID(courierID),
		messageCommand.setMessage(message),
		messageCommand.setRequestedAction(requestedTracking, requestedStatus),
	); err != nil {
		return ProcessMessageCommand{}, err
	}

	return messageCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrProcessMessageCommandIsNotConstructed if validation fails.
func (c ProcessMessageCommand) Validate() error {
	return c.guard.Validate(ErrProcessMessageCommandIsNotConstructed)
}

// CourierID returns the message author.
func (c ProcessMessageCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Message returns the courier's message text.
func (c ProcessMessageCommand) Message() string {
	return c.message
}

// RequestedTracking returns the tracking number of an explicit action, empty
// when the caller attached none.
func (c ProcessMessageCommand) RequestedTracking() string {
	return c.requestedTracking
}

// RequestedStatus returns the target status of an explicit action,
// delivery.StatusUnknown when the caller attached none.
func (c ProcessMessageCommand) RequestedStatus() delivery.Status {
	return c.requestedStatus
}

// HasExplicitAction reports whether the caller attached a structured
// status-change request alongside the message.
func (c ProcessMessageCommand) HasExplicitAction() bool {
	return c.requestedTracking != "" && c.requestedStatus != delivery.StatusUnknown
}

func (c *ProcessMessageCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *ProcessMessageCommand) setMessage(message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return ErrMessageIsRequired
	}
	if len(message) > MaxMessageLength {
		return ErrMessageIsTooLong
	}

	c.message = message
	return nil
}

func (c *ProcessMessageCommand) setRequestedAction(trackingNumber string, targetStatus delivery.Status) error {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if targetStatus != delivery.StatusUnknown {
		if err := targetStatus.Validate(); err != nil {
			return err
		}
		if trackingNumber == "" {
			return ErrTrackingNumberIsRequired
		}
	}

	c.requestedTracking = trackingNumber
	c.requestedStatus = targetStatus
	return nil
}
