package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courierbot/internal/core/application/usecases/commands"
	"courierbot/internal/core/domain/model/delivery"
	"courierbot/internal/core/domain/model/kernel"
)

func TestNewUpdateDeliveryStatusCommand_ValidInput(t *testing.T) {
	courierID := kernel.NewUUID()
	cmd, err := commands.NewUpdateDeliveryStatusCommand(courierID, "TRK-42", delivery.StatusPickedUp, "")
	require.NoError(t, err)
	assert.Equal(t, courierID, cmd.CourierID())
	assert.Equal(t, "TRK-42", cmd.TrackingNumber())
	assert.Equal(t, delivery.StatusPickedUp, cmd.TargetStatus())
	assert.Empty(t, cmd.Note())
}

func TestNewUpdateDeliveryStatusCommand_TrimsNote(t *testing.T) {
	cmd, err := commands.NewUpdateDeliveryStatusCommand(kernel.NewUUID(), "TRK-42",
		delivery.StatusFailed, "  customer refused the package  ")
	require.NoError(t, err)
	assert.Equal(t, "customer refused the package", cmd.Note())
}

func TestNewUpdateDeliveryStatusCommand_TrimsTrackingNumber(t *testing.T) {
	cmd, err := commands.NewUpdateDeliveryStatusCommand(kernel.NewUUID(), "  TRK-42  ", delivery.StatusDelivered, "")
	require.NoError(t, err)
	assert.Equal(t, "TRK-42", cmd.TrackingNumber())
}

func TestNewUpdateDeliveryStatusCommand_InvalidCourierID(t *testing.T) {
	invalidID := kernel.UUID{} // zero value, should trigger validation error
	_, err := commands.NewUpdateDeliveryStatusCommand(invalidID, "TRK-42", delivery.StatusPickedUp, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewUpdateDeliveryStatusCommand_EmptyTrackingNumber(t *testing.T) {
	_, err := commands.NewUpdateDeliveryStatusCommand(kernel.NewUUID(), "   ", delivery.StatusPickedUp, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrTrackingNumberIsRequired)
}

func TestNewUpdateDeliveryStatusCommand_UnknownStatus(t *testing.T) {
	_, err := commands.NewUpdateDeliveryStatusCommand(kernel.NewUUID(), "TRK-42", delivery.StatusUnknown, "")
	require.Error(t, err)
}

func TestUpdateDeliveryStatusCommand_Validate_NotConstructed(t *testing.T) {
	cmd := commands.UpdateDeliveryStatusCommand{}
	require.ErrorIs(t, cmd.Validate(), commands.ErrUpdateDeliveryStatusCommandIsNotConstructed)
}
