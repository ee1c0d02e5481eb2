package queries_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courierbot/internal/core/application/usecases/queries"
	"courierbot/internal/core/domain/model/kernel"
)

func TestNewGetPerformanceMetricsQuery_Valid(t *testing.T) {
	courierID := kernel.NewUUID()
	at := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

	query, err := queries.NewGetPerformanceMetricsQuery(courierID, at)

	require.NoError(t, err)
	assert.Equal(t, courierID, query.CourierID())
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), query.Day())
	assert.NoError(t, query.Validate())
}

func TestNewGetPerformanceMetricsQuery_InvalidCourierID(t *testing.T) {
	_, err := queries.NewGetPerformanceMetricsQuery(kernel.UUID{}, time.Now())

	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestGetPerformanceMetricsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetPerformanceMetricsQuery{}

	err := query.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetPerformanceMetricsQueryIsNotConstructed)
}
