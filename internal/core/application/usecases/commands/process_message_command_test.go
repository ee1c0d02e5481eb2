package commands_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courierbot/internal/core/application/usecases/commands"
	"courierbot/internal/core/domain/model/delivery"
	"courierbot/internal/core/domain/model/kernel"
)

func TestNewProcessMessageCommand_ValidInput(t *testing.T) {
	courierID := kernel.NewUUID()

	cmd, err := commands.NewProcessMessageCommand(courierID, "where is my next stop?",
		"", delivery.StatusUnknown)

	require.NoError(t, err)
	assert.Equal(t, courierID, cmd.CourierID())
	assert.Equal(t, "where is my next stop?", cmd.Message())
	assert.False(t, cmd.HasExplicitAction())
	assert.NoError(t, cmd.Validate())
}

func TestNewProcessMessageCommand_ExplicitAction(t *testing.T) {
	cmd, err := commands.NewProcessMessageCommand(kernel.NewUUID(), "done with this one",
		"TRK-1021", delivery.StatusDelivered)

	require.NoError(t, err)
	assert.True(t, cmd.HasExplicitAction())
	assert.Equal(t, "TRK-1021", cmd.RequestedTracking())
	assert.Equal(t, delivery.StatusDelivered, cmd.RequestedStatus())
}

func TestNewProcessMessageCommand_TrimsMessage(t *testing.T) {
	cmd, err := commands.NewProcessMessageCommand(kernel.NewUUID(), "  hello  ",
		"", delivery.StatusUnknown)

	require.NoError(t, err)
	assert.Equal(t, "hello", cmd.Message())
}

func TestNewProcessMessageCommand_InvalidCourierID(t *testing.T) {
	_, err := commands.NewProcessMessageCommand(kernel.UUID{}, "hello",
		"", delivery.StatusUnknown)

	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewProcessMessageCommand_EmptyMessage(t *testing.T) {
	_, err := commands.NewProcessMessageCommand(kernel.NewUUID(), "   ",
		"", delivery.StatusUnknown)

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrMessageIsRequired)
}

func TestNewProcessMessageCommand_MessageTooLong(t *testing.T) {
	long := strings.Repeat("a", commands.MaxMessageLength+1)

	_, err := commands.NewProcessMessageCommand(kernel.NewUUID(), long,
		"", delivery.StatusUnknown)

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrMessageIsTooLong)
}

func TestNewProcessMessageCommand_StatusWithoutTracking(t *testing.T) {
	_, err := commands.NewProcessMessageCommand(kernel.NewUUID(), "done",
		"", delivery.StatusDelivered)

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrTrackingNumberIsRequired)
}

func TestProcessMessageCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.ProcessMessageCommand

	err := cmd.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrProcessMessageCommandIsNotConstructed)
}
