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

	"courierbot/internal/adapters/out/postgres/knowledgerepo"
	"courierbot/internal/core/application/usecases/queries"
	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/knowledge"
)

type SearchKnowledgeQueryHandlerTestSuite struct {
	suite.Suite
	container     *postgres.PostgresContainer
	db            *gorm.DB
	handler       queries.SearchKnowledgeQueryHandler
	knowledgeRepo *knowledgerepo.GormKnowledgeRepository
}

func (suite *SearchKnowledgeQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&knowledgerepo.EntryDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewSearchKnowledgeQueryHandler(db)
	suite.knowledgeRepo = knowledgerepo.NewGormKnowledgeRepository(db)
}

func (suite *SearchKnowledgeQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *SearchKnowledgeQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE knowledge_entries CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *SearchKnowledgeQueryHandlerTestSuite) TestHandle_RanksBestMatchFirst() {
	suite.addEntry("technical", "GPS troubleshooting",
		"Restart the app and re-enable location services.", []string{"gps", "location"})
	suite.addEntry("payments", "COD handling",
		"Count cash in front of the customer.", []string{"cod", "cash"})

	query, err := queries.NewSearchKnowledgeQuery("gps location broken", 5)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().NotEmpty(result)
	suite.Equal("GPS troubleshooting", result[0].Title)
	suite.Equal("technical", result[0].Category)
}

func (suite *SearchKnowledgeQueryHandlerTestSuite) TestHandle_NoMatches_ReturnsEmptySlice() {
	suite.addEntry("payments", "COD handling",
		"Count cash in front of the customer.", []string{"cod", "cash"})

	query, err := queries.NewSearchKnowledgeQuery("vacation schedule", 5)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *SearchKnowledgeQueryHandlerTestSuite) TestHandle_RespectsLimit() {
	suite.addEntry("routing", "Route planning",
		"Plan the route before leaving the hub.", []string{"route"})
	suite.addEntry("routing", "Route changes",
		"Dispatch approves route changes.", []string{"route"})
	suite.addEntry("routing", "Route closures",
		"Report blocked roads on the route.", []string{"route"})

	query, err := queries.NewSearchKnowledgeQuery("route", 2)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Len(result, 2)
}

func (suite *SearchKnowledgeQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.SearchKnowledgeQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewSearchKnowledgeQuery constructor")
}

func (suite *SearchKnowledgeQueryHandlerTestSuite) addEntry(category, title, body string,
	keywords []string) {
	entry, err := knowledge.NewEntry(kernel.NewUUID(), category, title, body,
		keywords, time.Now().UTC())
	suite.Require().NoError(err)

	err = suite.knowledgeRepo.Add(context.Background(), entry)
	suite.Require().NoError(err)
}

func TestSearchKnowledgeQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SearchKnowledgeQueryHandlerTestSuite))
}
