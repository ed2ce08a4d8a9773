package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	httpadapter "github.com/3suji3/Inventory-management-test/internal/adapters/in/http"
	"github.com/3suji3/Inventory-management-test/internal/adapters/out/events"
	"github.com/3suji3/Inventory-management-test/internal/adapters/out/memory"
	"github.com/3suji3/Inventory-management-test/internal/adapters/out/postgres"
	"github.com/3suji3/Inventory-management-test/internal/adapters/out/postgres/trackingrepo"
	"github.com/3suji3/Inventory-management-test/internal/adapters/out/redislock"
	"github.com/3suji3/Inventory-management-test/internal/core/application/usecases/commands"
	"github.com/3suji3/Inventory-management-test/internal/core/application/usecases/queries"
	"github.com/3suji3/Inventory-management-test/internal/core/ports"
	"github.com/3suji3/Inventory-management-test/internal/jobs"

	"github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CompositionRoot owns the adapters selected by Config and builds the use
// case handlers on top of them.
type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	uowFactory ports.UnitOfWorkFactory
	locker     ports.KeyLocker
	tracking   ports.TrackingNumberGenerator
	publisher  ports.EventPublisher

	closers []func() error
}

// NewCompositionRoot connects the configured adapters: postgres or the
// in-memory store, Redis or in-process key locks, RabbitMQ or log events.
func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{cfg: cfg, logger: logger}

	if err := c.initPublisher(); err != nil {
		return nil, err
	}
	if err := c.initLocker(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err := c.initStorage(); err != nil {
		_ = c.Close()
		return nil, err
	}

	return c, nil
}

func (c *CompositionRoot) initPublisher() error {
	if c.cfg.RabbitMQURL == "" {
		c.publisher = events.NewLogPublisher(c.logger)
		return nil
	}

	publisher, err := events.DialRabbitMQ(c.cfg.RabbitMQURL, c.cfg.RabbitMQExchange, c.logger)
	if err != nil {
		return err
	}
	c.publisher = publisher
	c.closers = append(c.closers, publisher.Close)
	return nil
}

func (c *CompositionRoot) initLocker(ctx context.Context) error {
	if c.cfg.RedisAddr == "" {
		c.locker = memory.NewKeyLocker()
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     c.cfg.RedisAddr,
		Password: c.cfg.RedisPassword,
		DB:       c.cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to redis at %s: %w", c.cfg.RedisAddr, err)
	}

	c.locker = redislock.NewLocker(client, c.cfg.LockTTL, c.logger)
	c.closers = append(c.closers, client.Close)
	return nil
}

func (c *CompositionRoot) initStorage() error {
	if c.cfg.StorageDriver != StoragePostgres {
		c.uowFactory = memory.NewUnitOfWorkFactory(memory.NewStore(), c.publisher, c.logger)
		c.tracking = memory.NewTrackingNumberGenerator(c.cfg.TrackingPrefix)
		return nil
	}

	db, err := OpenDB(c.cfg)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	c.closers = append(c.closers, sqlDB.Close)

	c.uowFactory = postgres.NewGormUnitOfWorkFactory(db, c.publisher, c.logger)
	c.tracking = trackingrepo.NewGormTrackingNumberGenerator(db, c.cfg.TrackingPrefix)
	return nil
}

// OpenDB connects to postgres. TranslateError lets repositories see
// gorm.ErrDuplicatedKey.
func OpenDB(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	return db, nil
}

// Close releases connections in reverse order of creation.
func (c *CompositionRoot) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errs...)
}

// CreateRegisterOrderCommandHandler builds the order intake handler.
func (c *CompositionRoot) CreateRegisterOrderCommandHandler() commands.RegisterOrderCommandHandler {
	return commands.NewRegisterOrderCommandHandler(c.orderUoWFactory())
}

// CreateReceiveLotCommandHandler builds the lot receiving handler.
func (c *CompositionRoot) CreateReceiveLotCommandHandler() commands.ReceiveLotCommandHandler {
	return commands.NewReceiveLotCommandHandler(c.ledgerUoWFactory())
}

// CreateAllocateOrderCommandHandler builds the allocation handler on the
// configured locker and retry budget.
func (c *CompositionRoot) CreateAllocateOrderCommandHandler() commands.AllocateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAllocateOrderCommandHandler(f, c.locker, c.cfg.AllocationMaxAttempts, c.logger)
}

// CreateCompletePickingCommandHandler builds the picking handler.
func (c *CompositionRoot) CreateCompletePickingCommandHandler() commands.CompletePickingCommandHandler {
	return commands.NewCompletePickingCommandHandler(c.orderUoWFactory())
}

// CreateShipOrderCommandHandler builds the shipping handler on the
// configured tracking number generator.
func (c *CompositionRoot) CreateShipOrderCommandHandler() commands.ShipOrderCommandHandler {
	return commands.NewShipOrderCommandHandler(c.orderUoWFactory(), c.tracking)
}

// CreateGetOrderQueryHandler builds the order detail handler.
func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.uowFactory.Create().OrderRepository())
}

// CreateListOrdersQueryHandler builds the order list handler.
func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.uowFactory.Create().OrderRepository())
}

// CreateGetOrderSummaryQueryHandler builds the status count handler.
func (c *CompositionRoot) CreateGetOrderSummaryQueryHandler() queries.GetOrderSummaryQueryHandler {
	return queries.NewGetOrderSummaryQueryHandler(c.uowFactory.Create().OrderRepository())
}

// CreateGetPickingListQueryHandler builds the picking list handler.
func (c *CompositionRoot) CreateGetPickingListQueryHandler() queries.GetPickingListQueryHandler {
	return queries.NewGetPickingListQueryHandler(c.uowFactory.Create().OrderRepository())
}

// CreateGetAvailableStockQueryHandler builds the stock view handler with the
// configured warning window.
func (c *CompositionRoot) CreateGetAvailableStockQueryHandler() queries.GetAvailableStockQueryHandler {
	return queries.NewGetAvailableStockQueryHandler(c.uowFactory.Create().StockLedger(), c.cfg.ExpiryWarningDays, time.Now)
}

// CreateHTTPServer wires every handler into the HTTP adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		RegisterOrder:     c.CreateRegisterOrderCommandHandler(),
		ReceiveLot:        c.CreateReceiveLotCommandHandler(),
		AllocateOrder:     c.CreateAllocateOrderCommandHandler(),
		CompletePicking:   c.CreateCompletePickingCommandHandler(),
		ShipOrder:         c.CreateShipOrderCommandHandler(),
		GetOrder:          c.CreateGetOrderQueryHandler(),
		ListOrders:        c.CreateListOrdersQueryHandler(),
		GetOrderSummary:   c.CreateGetOrderSummaryQueryHandler(),
		GetPickingList:    c.CreateGetPickingListQueryHandler(),
		GetAvailableStock: c.CreateGetAvailableStockQueryHandler(),
	})
}

// CreateJobManager builds the scheduled jobs from the configured schedules.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateListOrdersQueryHandler(),
		c.CreateAllocateOrderCommandHandler(),
		c.CreateGetAvailableStockQueryHandler(),
		jobs.Schedules{
			AutoAllocation:    c.cfg.AutoAllocateSchedule,
			ExpiringLots:      c.cfg.ExpiryScanSchedule,
			ExpiryWarningDays: c.cfg.ExpiryWarningDays,
		},
		c.logger,
	)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) ledgerUoWFactory() commands.LedgerUoWFactory {
	return FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
}

// FuncOrderUoWFactory adapts a function to commands.OrderUoWFactory.
type FuncOrderUoWFactory func() commands.OrderUoW

// Create calls f.
func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

// FuncLedgerUoWFactory adapts a function to commands.LedgerUoWFactory.
type FuncLedgerUoWFactory func() commands.LedgerUoW

// Create calls f.
func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}

// FuncUoWFactory adapts a function to commands.UoWFactory.
type FuncUoWFactory func() commands.UoW

// Create calls f.
func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
