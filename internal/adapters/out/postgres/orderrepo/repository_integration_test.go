package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"morna/internal/adapters/out/postgres/orderrepo"
	"morna/internal/adapters/out/postgres/pgerr"
	"morna/internal/core/domain/model/kernel"
	"morna/internal/core/domain/model/order"
	"morna/internal/core/ports"
	"morna/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(change ports.EventType, id kernel.ID, aggregate any) {
	m.Called(change, id, aggregate)
}

// OrderRepositoryIntegrationTestSuite exercises GormOrderRepository against a
// bare orders table. Box references are not constrained here.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(product string) *order.Order {
	o, err := order.NewOrder(kernel.NewID(), "client-7", product, 2)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) restore(o *order.Order, status order.Status, boxID *kernel.ID, version int) *order.Order {
	restored, err := order.RestoreOrder(order.RestoreParams{
		ID:          o.ID(),
		ClientID:    o.ClientID(),
		ProductName: o.ProductName(),
		Quantity:    o.Quantity(),
		TotalQuote:  o.TotalQuote(),
		Status:      status,
		BoxID:       boxID,
		CreatedAt:   o.CreatedAt(),
		Version:     version,
	})
	suite.Require().NoError(err)
	return restored
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_TracksInsert() {
	ctx := context.Background()
	o := suite.newOrder("kettle")
	suite.tracker.On("TrackAggregate", ports.EventInsert, o.ID(), o).Once()

	suite.Require().NoError(suite.repository.Add(ctx, o))

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Created, stored.Status())
	suite.Equal("kettle", stored.ProductName())
	suite.Equal(1, stored.Version())
	suite.Nil(stored.TotalQuote())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateIsConflict() {
	ctx := context.Background()
	o := suite.newOrder("kettle")
	suite.tracker.On("TrackAggregate", ports.EventInsert, o.ID(), o).Once()

	suite.Require().NoError(suite.repository.Add(ctx, o))
	err := suite.repository.Add(ctx, o)

	suite.Require().Error(err)
	suite.Equal(errs.ReasonConflict, errs.ReasonOf(err))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_WritesQuoteAndBumpsVersion() {
	ctx := context.Background()
	o := suite.newOrder("kettle")
	suite.tracker.On("TrackAggregate", mock.Anything, o.ID(), mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(stored.Quote(kernel.MustParseMoney("12.50")))
	suite.Require().NoError(suite.repository.Update(ctx, stored))

	reloaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Quoted, reloaded.Status())
	suite.Equal(2, reloaded.Version())
	suite.Require().NotNil(reloaded.TotalQuote())
	suite.Equal("25.00", reloaded.TotalQuote().String())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_QuoteReadsBackAsComputed() {
	ctx := context.Background()
	o := suite.newOrder("kettle")
	suite.tracker.On("TrackAggregate", mock.Anything, o.ID(), mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(stored.Quote(kernel.MustParseMoney("0.335")))
	suite.Require().NoError(suite.repository.Update(ctx, stored))

	reloaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(reloaded.TotalQuote())
	suite.True(stored.TotalQuote().Equal(*reloaded.TotalQuote()),
		"computed %s, stored %s", stored.TotalQuote(), reloaded.TotalQuote())
	suite.Equal("0.68", reloaded.TotalQuote().String())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestTotalQuoteOverflowIsInvalidInput() {
	ctx := context.Background()
	o := suite.newOrder("kettle")
	suite.tracker.On("TrackAggregate", mock.Anything, o.ID(), mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	err := suite.db.WithContext(ctx).
		Exec("UPDATE orders SET total_quote = ? WHERE id = ?", "10000000000000", o.ID().UUID()).Error
	suite.Require().Error(err)

	translated := pgerr.Translate(err, "order", o.ID().String())
	suite.Equal(errs.ReasonInvalidInput, errs.ReasonOf(translated))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestPeek_DoesNotWaitForRowLock() {
	ctx := context.Background()
	o := suite.newOrder("kettle")
	suite.tracker.On("TrackAggregate", mock.Anything, o.ID(), mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	tx := suite.db.Begin()
	suite.Require().NoError(tx.Error)
	defer tx.Rollback()
	_, err := orderrepo.NewGormOrderRepository(tx, suite.tracker).Get(ctx, o.ID())
	suite.Require().NoError(err)

	peekCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	peeked, err := suite.repository.Peek(peekCtx, o.ID())

	suite.Require().NoError(err)
	suite.True(peeked.ID().Equal(o.ID()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ClearsBoxReference() {
	ctx := context.Background()
	boxID := kernel.NewID()
	o := suite.newOrder("kettle")
	suite.tracker.On("TrackAggregate", mock.Anything, o.ID(), mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	packed := suite.restore(o, order.PackedInBox, &boxID, 1)
	suite.Require().NoError(suite.repository.Update(ctx, packed))

	unpacked := suite.restore(o, order.ReadyToPack, nil, 2)
	suite.Require().NoError(suite.repository.Update(ctx, unpacked))

	reloaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Nil(reloaded.BoxID())
	suite.Equal(order.ReadyToPack, reloaded.Status())
	suite.Equal(3, reloaded.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersionIsConflict() {
	ctx := context.Background()
	o := suite.newOrder("kettle")
	suite.tracker.On("TrackAggregate", ports.EventInsert, o.ID(), o).Once()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	stale := suite.restore(o, order.ReceivedByStaff, nil, 4)
	err := suite.repository.Update(ctx, stale)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrConflict)
	suite.tracker.AssertNotCalled(suite.T(), "TrackAggregate", ports.EventUpdate, o.ID(), stale)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_MissingIsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewID())

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListByBox_ReturnsOnlyThatBoxInCreationOrder() {
	ctx := context.Background()
	boxID, otherBox := kernel.NewID(), kernel.NewID()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything, mock.Anything)

	first := suite.newOrder("first")
	second := suite.newOrder("second")
	stray := suite.newOrder("stray")
	for _, o := range []*order.Order{first, second, stray} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
		time.Sleep(time.Millisecond)
	}

	suite.Require().NoError(suite.repository.Update(ctx, suite.restore(second, order.PackedInBox, &boxID, 1)))
	suite.Require().NoError(suite.repository.Update(ctx, suite.restore(first, order.PackedInBox, &boxID, 1)))
	suite.Require().NoError(suite.repository.Update(ctx, suite.restore(stray, order.PackedInBox, &otherBox, 1)))

	orders, err := suite.repository.ListByBox(ctx, boxID)
	suite.Require().NoError(err)
	suite.Require().Len(orders, 2)
	suite.Equal("first", orders[0].ProductName())
	suite.Equal("second", orders[1].ProductName())

	count, err := suite.repository.CountByBox(ctx, boxID)
	suite.Require().NoError(err)
	suite.Equal(2, count)

	count, err = suite.repository.CountByBox(ctx, kernel.NewID())
	suite.Require().NoError(err)
	suite.Zero(count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
