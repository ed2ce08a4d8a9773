package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	postgres_adapter "github.com/3suji3/Inventory-management-test/internal/adapters/out/postgres"
	"github.com/3suji3/Inventory-management-test/internal/core/application/usecases/commands"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/kernel"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/lot"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/order"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/services"
	"github.com/3suji3/Inventory-management-test/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, events ...order.StatusChanged) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// noLocker grants every lock at once, leaving all protection to the database.
type noLocker struct{}

func (noLocker) Lock(context.Context, ...string) (func(), error) { return func() {}, nil }

type uowFactoryFunc func() ports.UnitOfWork

func (f uowFactoryFunc) Create() commands.UoW { return f() }

// UnitOfWorkIntegrationTestSuite runs the GORM unit of work against a real
// PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	publisher *MockEventPublisher
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_lines, order_allocations, lots").Error
	suite.Require().NoError(err)

	suite.publisher = new(MockEventPublisher)
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.db, suite.publisher, slog.New(slog.DiscardHandler))
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) addLot(id string, quantity int, expiry kernel.Date) {
	l, err := lot.NewLot(id, "FG001", quantity, expiry, "P2-"+id)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().StockLedger().Add(context.Background(), l))
}

func (suite *UnitOfWorkIntegrationTestSuite) addOrder(id string, quantity int) {
	line, err := order.NewLine("FG001", "애니콩 펫베이커리 A", quantity, "ea")
	suite.Require().NoError(err)
	o, err := order.NewOrder(id, order.B2C, "customer "+id, order.Normal,
		kernel.NewDate(2025, time.September, 10), kernel.NewDate(2025, time.September, 12), []*order.Line{line})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(context.Background(), o))
}

func (suite *UnitOfWorkIntegrationTestSuite) available(id string) int {
	l, err := suite.factory.Create().StockLedger().Get(context.Background(), id)
	suite.Require().NoError(err)
	return l.QuantityAvailable()
}

func (suite *UnitOfWorkIntegrationTestSuite) handler() commands.AllocateOrderCommandHandler {
	factory := suite.factory
	return commands.NewAllocateOrderCommandHandler(
		uowFactoryFunc(factory.Create), noLocker{}, 5, slog.New(slog.DiscardHandler),
	)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsEverything() {
	ctx := context.Background()
	suite.addLot("L1", 100, kernel.NewDate(2025, time.October, 9))
	suite.addOrder("SO001", 100)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.StockLedger().Deduct(ctx, "L1", 100))
	inside, err := uow.StockLedger().Get(ctx, "L1")
	suite.Require().NoError(err)
	suite.Equal(0, inside.QuantityAvailable())

	o, err := uow.OrderRepository().Get(ctx, "SO001")
	suite.Require().NoError(err)
	a, err := order.NewAllocation("L1", 100, "P2-L1", kernel.NewDate(2025, time.October, 9))
	suite.Require().NoError(err)
	suite.Require().NoError(o.Allocate(map[kernel.UUID][]order.Allocation{o.Lines()[0].ID(): {a}}))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Equal(100, suite.available("L1"))
	stored, err := suite.factory.Create().OrderRepository().Get(ctx, "SO001")
	suite.Require().NoError(err)
	suite.Equal(order.Pending, stored.Status())
	suite.Zero(stored.TotalAllocated())
	suite.publisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAllocate_EndToEnd() {
	ctx := context.Background()
	suite.addLot("L1", 100, kernel.NewDate(2025, time.October, 9))
	suite.addLot("L2", 320, kernel.NewDate(2025, time.October, 10))
	suite.addOrder("SO001", 120)

	suite.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []order.StatusChanged) bool {
		return len(events) == 1 && events[0].OrderID == "SO001" &&
			events[0].From == order.Pending && events[0].To == order.Allocated
	})).Return(nil).Once()

	cmd, err := commands.NewAllocateOrderCommand("SO001")
	suite.Require().NoError(err)
	result, err := suite.handler().Handle(ctx, cmd)

	suite.Require().NoError(err)
	suite.Equal(order.Allocated, result.Status)
	suite.Equal(0, suite.available("L1"))
	suite.Equal(300, suite.available("L2"))
	suite.publisher.AssertExpectations(suite.T())

	entries, err := services.NewPickingListGenerator().Generate(suite.mustGetOrder("SO001"))
	suite.Require().NoError(err)
	suite.Require().Len(entries, 2)
	suite.Equal("L1", entries[0].LotID)
	suite.Equal(100, entries[0].Quantity)
	suite.Equal("L2", entries[1].LotID)
	suite.Equal(20, entries[1].Quantity)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAllocate_ShortOrderChangesNothing() {
	ctx := context.Background()
	suite.addLot("L1", 50, kernel.NewDate(2025, time.October, 9))
	suite.addOrder("SO001", 120)

	cmd, err := commands.NewAllocateOrderCommand("SO001")
	suite.Require().NoError(err)
	_, err = suite.handler().Handle(ctx, cmd)

	var short *services.InsufficientStockError
	suite.Require().True(errors.As(err, &short))
	suite.Equal(70, short.Shortages[0].Shortfall)
	suite.Equal(50, suite.available("L1"))
	suite.Equal(order.Pending, suite.mustGetOrder("SO001").Status())
	suite.publisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAllocate_ConcurrentNeverOversells() {
	suite.addLot("L1", 60, kernel.NewDate(2025, time.October, 9))
	suite.addLot("L2", 40, kernel.NewDate(2025, time.October, 10))
	const orders = 8
	for i := 0; i < orders; i++ {
		suite.addOrder(fmt.Sprintf("SO%03d", i), 30)
	}
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	handler := suite.handler()
	errs := make(chan error, orders)
	var wg sync.WaitGroup
	for i := 0; i < orders; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			cmd, err := commands.NewAllocateOrderCommand(id)
			if err != nil {
				errs <- err
				return
			}
			_, err = handler.Handle(context.Background(), cmd)
			errs <- err
		}(fmt.Sprintf("SO%03d", i))
	}
	wg.Wait()
	close(errs)

	allocated := 0
	for err := range errs {
		if err == nil {
			allocated++
			continue
		}
		suite.ErrorIs(err, services.ErrInsufficientStock)
	}

	suite.Equal(3, allocated)
	suite.Equal(10, suite.available("L1")+suite.available("L2"))
	suite.GreaterOrEqual(suite.available("L1"), 0)
	suite.GreaterOrEqual(suite.available("L2"), 0)
}

func (suite *UnitOfWorkIntegrationTestSuite) mustGetOrder(id string) *order.Order {
	o, err := suite.factory.Create().OrderRepository().Get(context.Background(), id)
	suite.Require().NoError(err)
	return o
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
