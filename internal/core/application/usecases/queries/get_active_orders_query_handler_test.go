package queries_test

import (
	"context"
	"testing"
	"time"

	"gromart/internal/adapters/out/postgres/billrepo"
	"gromart/internal/adapters/out/postgres/orderrepo"
	"gromart/internal/adapters/out/postgres/partnerrepo"
	"gromart/internal/core/application/usecases/queries"
	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetActiveOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container   *postgres.PostgresContainer
	db          *gorm.DB
	handler     queries.GetActiveOrdersQueryHandler
	orderRepo   *orderrepo.GormOrderRepository
	partnerRepo *partnerrepo.GormPartnerRepository
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&partnerrepo.PartnerDTO{},
		&partnerrepo.CreditTransactionDTO{},
		&billrepo.BillDTO{},
	)
	suite.Require().NoError(err)

	suite.handler = queries.NewGetActiveOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
	suite.partnerRepo = partnerrepo.NewGormPartnerRepository(db, &mockAggregateTracker{})
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetActiveOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_TerminalOrdersExcluded() {
	ctx := context.Background()

	testPartner := newAvailablePartner(suite.T())
	err := suite.partnerRepo.Add(ctx, testPartner)
	suite.Require().NoError(err)

	delivered := newDeliveredCashOrder(suite.T(), testPartner.ID(), time.Now())
	err = suite.orderRepo.Add(ctx, delivered)
	suite.Require().NoError(err)

	cancelled := newTestOrder(suite.T(), time.Now())
	err = cancelled.Cancel("customer changed mind", time.Now())
	suite.Require().NoError(err)
	err = suite.orderRepo.Add(ctx, cancelled)
	suite.Require().NoError(err)

	query := queries.NewGetActiveOrdersQuery()

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_MixedStatuses_ReturnsOnlyActive() {
	ctx := context.Background()

	testPartner := newAvailablePartner(suite.T())
	err := suite.partnerRepo.Add(ctx, testPartner)
	suite.Require().NoError(err)

	pending := newTestOrder(suite.T(), time.Now())
	err = suite.orderRepo.Add(ctx, pending)
	suite.Require().NoError(err)

	confirmed := newTestOrder(suite.T(), time.Now())
	err = confirmed.Confirm(time.Now())
	suite.Require().NoError(err)
	err = suite.orderRepo.Add(ctx, confirmed)
	suite.Require().NoError(err)

	delivered := newDeliveredCashOrder(suite.T(), testPartner.ID(), time.Now())
	err = suite.orderRepo.Add(ctx, delivered)
	suite.Require().NoError(err)

	query := queries.NewGetActiveOrdersQuery()

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	resultIDs := make(map[kernel.UUID]order.Status)
	for _, r := range result {
		resultIDs[r.ID] = r.Status
	}
	suite.Equal(order.StatusPending, resultIDs[pending.ID()])
	suite.Equal(order.StatusConfirmed, resultIDs[confirmed.ID()])
	suite.NotContains(resultIDs, delivered.ID())
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_OldestFirst() {
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	newer := newTestOrder(suite.T(), base.Add(30*time.Minute))
	older := newTestOrder(suite.T(), base)

	err := suite.orderRepo.Add(ctx, newer)
	suite.Require().NoError(err)
	err = suite.orderRepo.Add(ctx, older)
	suite.Require().NoError(err)

	query := queries.NewGetActiveOrdersQuery()

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.True(older.ID().IsEqual(result[0].ID), "oldest order should come first")
	suite.True(newer.ID().IsEqual(result[1].ID))
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_MapsRowFields() {
	ctx := context.Background()

	testOrder := newTestOrder(suite.T(), time.Now())
	err := suite.orderRepo.Add(ctx, testOrder)
	suite.Require().NoError(err)

	query := queries.NewGetActiveOrdersQuery()

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)

	row := result[0]
	suite.Equal(testOrder.Number(), row.Number)
	suite.True(testOrder.CustomerID().IsEqual(row.CustomerID))
	suite.True(testOrder.VendorID().IsEqual(row.VendorID))
	suite.Nil(row.PartnerID)
	suite.Equal(testOrder.Total().Amount().String(), row.Total)
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetActiveOrdersQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetActiveOrdersQuery constructor")
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_ContextCancellation_ReturnsError() {
	query := queries.NewGetActiveOrdersQuery()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().Error(err)
	suite.Nil(result)
}

func TestGetActiveOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetActiveOrdersQueryHandlerTestSuite))
}
