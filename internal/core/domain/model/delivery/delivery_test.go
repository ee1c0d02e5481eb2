package delivery_test

import (
	"testing"

	"courierbot/internal/core/domain/model/delivery"
	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDelivery(t *testing.T) *delivery.Delivery {
	t.Helper()

	d, err := delivery.NewDelivery(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"ORD-1021",
		delivery.CustomerInfo{Name: "R. Patel", Phone: "+91-98x", Address: "14 Hill Rd"},
		250,
	)
	require.NoError(t, err)
	return d
}

func TestNewDelivery(t *testing.T) {
	t.Run("should create delivery in assigned status", func(t *testing.T) {
		d := newTestDelivery(t)

		assert.Equal(t, delivery.StatusAssigned, d.Status())
		assert.Equal(t, "ORD-1021", d.TrackingNumber())
		assert.Equal(t, "R. Patel", d.Customer().Name)
		assert.InDelta(t, 250, d.CODAmount(), 0.001)
		assert.Nil(t, d.DeliveredAt())
		require.NoError(t, d.Validate())
	})

	t.Run("should reject invalid id", func(t *testing.T) {
		_, err := delivery.NewDelivery(
			kernel.UUID{}, kernel.NewUUID(), "ORD-1", delivery.CustomerInfo{}, 0)
		require.Error(t, err)
	})

	t.Run("should reject invalid courier id", func(t *testing.T) {
		_, err := delivery.NewDelivery(
			kernel.NewUUID(), kernel.UUID{}, "ORD-1", delivery.CustomerInfo{}, 0)
		require.Error(t, err)
	})

	t.Run("should reject empty tracking number", func(t *testing.T) {
		_, err := delivery.NewDelivery(
			kernel.NewUUID(), kernel.NewUUID(), "", delivery.CustomerInfo{}, 0)
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject negative cod amount", func(t *testing.T) {
		_, err := delivery.NewDelivery(
			kernel.NewUUID(), kernel.NewUUID(), "ORD-1", delivery.CustomerInfo{}, -1)
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestDelivery_Validate(t *testing.T) {
	t.Run("zero value delivery is not constructed", func(t *testing.T) {
		var d delivery.Delivery
		require.ErrorIs(t, d.Validate(), delivery.ErrDeliveryIsNotConstructed)
	})

	t.Run("nil delivery is not constructed", func(t *testing.T) {
		var d *delivery.Delivery
		require.ErrorIs(t, d.Validate(), delivery.ErrDeliveryIsNotConstructed)
	})
}

func TestDelivery_BelongsTo(t *testing.T) {
	courierID := kernel.NewUUID()
	d, err := delivery.NewDelivery(
		kernel.NewUUID(), courierID, "ORD-7", delivery.CustomerInfo{}, 0)
	require.NoError(t, err)

	assert.True(t, d.BelongsTo(courierID))
	assert.False(t, d.BelongsTo(kernel.NewUUID()))
}

func TestDelivery_TransitionTo(t *testing.T) {
	t.Run("happy path reaches delivered and stamps completion", func(t *testing.T) {
		d := newTestDelivery(t)

		require.NoError(t, d.TransitionTo(delivery.StatusPickedUp))
		require.NoError(t, d.TransitionTo(delivery.StatusInTransit))
		require.NoError(t, d.TransitionTo(delivery.StatusDelivered))

		assert.Equal(t, delivery.StatusDelivered, d.Status())
		require.NotNil(t, d.DeliveredAt())
	})

	t.Run("same status is a no-op rejection", func(t *testing.T) {
		d := newTestDelivery(t)

		err := d.TransitionTo(delivery.StatusAssigned)

		require.ErrorIs(t, err, delivery.ErrStatusUnchanged)
		assert.Equal(t, delivery.StatusAssigned, d.Status())
	})

	t.Run("illegal transition leaves the delivery unchanged", func(t *testing.T) {
		d := newTestDelivery(t)

		err := d.TransitionTo(delivery.StatusDelivered)

		require.ErrorIs(t, err, delivery.ErrIllegalTransition)
		assert.Equal(t, delivery.StatusAssigned, d.Status())
		assert.Nil(t, d.DeliveredAt())
	})

	t.Run("no transition leaves a terminal state", func(t *testing.T) {
		d := newTestDelivery(t)
		require.NoError(t, d.TransitionTo(delivery.StatusFailed))

		err := d.TransitionTo(delivery.StatusAssigned)

		require.ErrorIs(t, err, delivery.ErrIllegalTransition)
		assert.Equal(t, delivery.StatusFailed, d.Status())
	})

	t.Run("can branch to returned from in transit", func(t *testing.T) {
		d := newTestDelivery(t)
		require.NoError(t, d.TransitionTo(delivery.StatusPickedUp))
		require.NoError(t, d.TransitionTo(delivery.StatusInTransit))

		require.NoError(t, d.TransitionTo(delivery.StatusReturned))
		assert.Equal(t, delivery.StatusReturned, d.Status())
	})
}

func TestRestoreDelivery(t *testing.T) {
	t.Run("should restore delivery with persisted status", func(t *testing.T) {
		original := newTestDelivery(t)
		require.NoError(t, original.TransitionTo(delivery.StatusPickedUp))

		restored, err := delivery.RestoreDelivery(
			original.ID(),
			original.CourierID(),
			original.TrackingNumber(),
			original.Customer(),
			original.CODAmount(),
			original.Status(),
			original.CreatedAt(),
			original.UpdatedAt(),
			original.DeliveredAt(),
		)

		require.NoError(t, err)
		assert.True(t, restored.IsEqual(original))
		assert.Equal(t, delivery.StatusPickedUp, restored.Status())
	})

	t.Run("should reject invalid persisted status", func(t *testing.T) {
		original := newTestDelivery(t)

		_, err := delivery.RestoreDelivery(
			original.ID(),
			original.CourierID(),
			original.TrackingNumber(),
			original.Customer(),
			original.CODAmount(),
			delivery.StatusUnknown,
			original.CreatedAt(),
			original.UpdatedAt(),
			nil,
		)

		require.Error(t, err)
	})
}
