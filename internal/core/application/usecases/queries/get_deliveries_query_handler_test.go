package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"courierbot/internal/adapters/out/postgres/deliveryrepo"
	"courierbot/internal/core/application/usecases/queries"
	"courierbot/internal/core/domain/model/delivery"
	"courierbot/internal/core/domain/model/kernel"
)

type GetDeliveriesQueryHandlerTestSuite struct {
	suite.Suite
	container    *postgres.PostgresContainer
	db           *gorm.DB
	handler      queries.GetDeliveriesQueryHandler
	deliveryRepo *deliveryrepo.GormDeliveryRepository
}

func (suite *GetDeliveriesQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&deliveryrepo.DeliveryDTO{}, &deliveryrepo.DeliveryLogDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetDeliveriesQueryHandler(db)
	suite.deliveryRepo = deliveryrepo.NewGormDeliveryRepository(db, &mockAggregateTracker{})
}

func (suite *GetDeliveriesQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetDeliveriesQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE deliveries CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetDeliveriesQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewGetDeliveriesQuery(kernel.NewUUID(), delivery.StatusUnknown, 0)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetDeliveriesQueryHandlerTestSuite) TestHandle_ReturnsOnlyOwnDeliveriesNewestFirst() {
	ctx := context.Background()
	courierID := kernel.NewUUID()
	otherID := kernel.NewUUID()

	older := suite.addDelivery(courierID, "TRK-OLD")
	newer := suite.addDelivery(courierID, "TRK-NEW")
	suite.addDelivery(otherID, "TRK-FOREIGN")

	err := suite.db.Exec("UPDATE deliveries SET created_at = created_at - interval '1 hour' WHERE id = ?",
		older.ID().Bytes()).Error
	suite.Require().NoError(err)

	query, err := queries.NewGetDeliveriesQuery(courierID, delivery.StatusUnknown, 0)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(newer.ID(), result[0].ID)
	suite.Equal(older.ID(), result[1].ID)
	suite.Equal("TRK-NEW", result[0].TrackingNumber)
	suite.Equal(delivery.StatusAssigned, result[0].Status)
}

func (suite *GetDeliveriesQueryHandlerTestSuite) TestHandle_StatusFilterNarrowsRows() {
	ctx := context.Background()
	courierID := kernel.NewUUID()

	suite.addDelivery(courierID, "TRK-A")
	picked := suite.addPickedUpDelivery(courierID, "TRK-B")

	query, err := queries.NewGetDeliveriesQuery(courierID, delivery.StatusPickedUp, 0)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(picked.ID(), result[0].ID)
	suite.Equal(delivery.StatusPickedUp, result[0].Status)
}

func (suite *GetDeliveriesQueryHandlerTestSuite) TestHandle_RespectsLimit() {
	ctx := context.Background()
	courierID := kernel.NewUUID()

	suite.addDelivery(courierID, "TRK-1")
	suite.addDelivery(courierID, "TRK-2")
	suite.addDelivery(courierID, "TRK-3")

	query, err := queries.NewGetDeliveriesQuery(courierID, delivery.StatusUnknown, 2)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Len(result, 2)
}

func (suite *GetDeliveriesQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetDeliveriesQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetDeliveriesQuery constructor")
}

func (suite *GetDeliveriesQueryHandlerTestSuite) addDelivery(courierID kernel.UUID,
	trackingNumber string) *delivery.Delivery {
	d, err := delivery.NewDelivery(kernel.NewUUID(), courierID, trackingNumber,
		delivery.CustomerInfo{Name: "Asel N.", Phone: "+77001234567", Address: "12 Abay Ave"}, 0)
	suite.Require().NoError(err)

	err = suite.deliveryRepo.Add(context.Background(), d)
	suite.Require().NoError(err)
	return d
}

func (suite *GetDeliveriesQueryHandlerTestSuite) addPickedUpDelivery(courierID kernel.UUID,
	trackingNumber string) *delivery.Delivery {
	d, err := delivery.NewDelivery(kernel.NewUUID(), courierID, trackingNumber,
		delivery.CustomerInfo{Name: "Asel N.", Phone: "+77001234567", Address: "12 Abay Ave"}, 0)
	suite.Require().NoError(err)

	err = d.TransitionTo(delivery.StatusPickedUp)
	suite.Require().NoError(err)

	err = suite.deliveryRepo.Add(context.Background(), d)
	suite.Require().NoError(err)
	return d
}

func TestGetDeliveriesQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetDeliveriesQueryHandlerTestSuite))
}

// mockAggregateTracker satisfies the repositories' tracker dependency for
// tests that do not care about tracked aggregates.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {
}
