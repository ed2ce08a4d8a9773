package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/lot"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/order"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/services"
	"github.com/3suji3/Inventory-management-test/internal/core/ports"
)

// DefaultAllocationAttempts bounds the retries after a ledger race.
const DefaultAllocationAttempts = 3

// AllocatedOrder is the result of a successful allocation.
type AllocatedOrder struct {
	OrderID string
	Status  order.Status
	Lines   []services.LinePlan
}

// AllocateOrderCommandHandler runs plan-then-commit for one order.
//
// Each attempt locks the order key, loads the order in a fresh unit of
// work, locks the keys of its SKUs, reads their lots, plans FEFO and, if no
// line is short, commits. A short line aborts with
// *services.InsufficientStockError and nothing is written.
//
// Lost races against another writer (lot.ErrInsufficientLotQuantity,
// ports.ErrConcurrentModification) roll back and retry up to maxAttempts
// times, then surface as *services.InsufficientStockError. Its shortages come
// from one more read-only plan, or from the lot contested in the last
// attempt when stock has come back in the meantime.
type AllocateOrderCommandHandler struct {
	uowFactory  UoWFactory
	locker      ports.KeyLocker
	allocator   services.FEFOAllocator
	committer   AllocationCommitter
	maxAttempts int
	logger      *slog.Logger
}

// NewAllocateOrderCommandHandler wires the handler.
//
// Parameters:
//   - uowFactory: opens one unit of work per attempt
//   - locker: serializes allocations touching the same order or SKU
//   - maxAttempts: attempts before a lost race is reported; values below 1
//     mean DefaultAllocationAttempts
//   - logger: receives retries and outcomes
func NewAllocateOrderCommandHandler(
	uowFactory UoWFactory,
	locker ports.KeyLocker,
	maxAttempts int,
	logger *slog.Logger,
) AllocateOrderCommandHandler {
	if maxAttempts <= 0 {
		maxAttempts = DefaultAllocationAttempts
	}
	return AllocateOrderCommandHandler{
		uowFactory:  uowFactory,
		locker:      locker,
		allocator:   services.NewFEFOAllocator(),
		committer:   NewAllocationCommitter(),
		maxAttempts: maxAttempts,
		logger:      logger.With("component", "allocate_order"),
	}
}

// Handle allocates every line of a pending order or none of them.
//
// Returns:
//   - the committed plans on success
//   - *services.InsufficientStockError when a line cannot be covered
//   - *order.InvalidTransitionError when the order is not pending
//   - *errs.ObjectNotFoundError for an unknown order
func (h AllocateOrderCommandHandler) Handle(ctx context.Context, command AllocateOrderCommand) (AllocatedOrder, error) {
	if err := command.Validate(); err != nil {
		return AllocatedOrder{}, err
	}

	var (
		raceErr   error
		lastPlans []services.LinePlan
	)
	for attempt := 1; attempt <= h.maxAttempts; attempt++ {
		result, err := h.allocate(ctx, command.OrderID())
		if err == nil {
			h.logger.InfoContext(ctx, "order allocated",
				"order_id", result.OrderID, "lines", len(result.Lines), "attempt", attempt)
			return result, nil
		}
		if !isLedgerRace(err) {
			return AllocatedOrder{}, err
		}

		raceErr = err
		lastPlans = result.Lines
		h.logger.WarnContext(ctx, "allocation lost a race, retrying",
			"order_id", command.OrderID(), "attempt", attempt, "error", err)
	}

	shortages := h.shortagesAfterRaces(ctx, command.OrderID(), lastPlans, raceErr)
	return AllocatedOrder{}, fmt.Errorf("%w (gave up after %d attempts: %w)",
		services.NewInsufficientStockError(command.OrderID(), shortages), h.maxAttempts, raceErr)
}

// shortagesAfterRaces explains an allocation that kept losing races.
func (h AllocateOrderCommandHandler) shortagesAfterRaces(
	ctx context.Context,
	orderID string,
	lastPlans []services.LinePlan,
	raceErr error,
) []services.Shortage {
	var short *services.InsufficientStockError
	if err := h.replan(ctx, orderID); errors.As(err, &short) {
		return short.Shortages
	} else if err != nil {
		h.logger.WarnContext(ctx, "re-planning after lost races failed", "order_id", orderID, "error", err)
	}

	var contested *lot.InsufficientLotQuantityError
	lotID := ""
	if errors.As(raceErr, &contested) {
		lotID = contested.LotID
	}

	shortages := make([]services.Shortage, 0, len(lastPlans))
	for _, plan := range lastPlans {
		if lotID != "" && !slices.ContainsFunc(plan.Picks, func(p services.PlannedPick) bool { return p.LotID == lotID }) {
			continue
		}
		shortfall := plan.Requested
		if contested != nil {
			shortfall = max(1, min(plan.Requested, contested.Requested-contested.Available))
		}
		shortages = append(shortages, services.Shortage{
			LineID:    plan.LineID,
			SKU:       plan.SKU,
			Requested: plan.Requested,
			Shortfall: shortfall,
		})
	}
	return shortages
}

// replan runs the planning half of an allocation against current stock. It
// takes no allocation locks and its unit of work is always rolled back.
func (h AllocateOrderCommandHandler) replan(ctx context.Context, orderID string) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return err
	}
	_, err = h.plan(ctx, uow.StockLedger(), o)
	return err
}

func (h AllocateOrderCommandHandler) plan(
	ctx context.Context,
	ledger ports.StockLedger,
	o *order.Order,
) ([]services.LinePlan, error) {
	skus := o.SKUs()
	lotsBySKU := make(map[string][]*lot.Lot, len(skus))
	for _, sku := range skus {
		lots, err := ledger.LotsFor(ctx, sku)
		if err != nil {
			return nil, err
		}
		lotsBySKU[sku] = lots
	}
	return h.allocator.PlanOrder(o, lotsBySKU)
}

func (h AllocateOrderCommandHandler) allocate(ctx context.Context, orderID string) (AllocatedOrder, error) {
	releaseOrder, err := h.locker.Lock(ctx, "order:"+orderID)
	if err != nil {
		return AllocatedOrder{}, err
	}
	defer releaseOrder()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return AllocatedOrder{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	ledger := uow.StockLedger()

	o, err := orders.Get(ctx, orderID)
	if err != nil {
		return AllocatedOrder{}, err
	}
	if _, err = o.Status().Allocate(); err != nil {
		return AllocatedOrder{}, err
	}

	skus := o.SKUs()
	skuKeys := make([]string, 0, len(skus))
	for _, sku := range skus {
		skuKeys = append(skuKeys, "sku:"+sku)
	}
	releaseSKUs, err := h.locker.Lock(ctx, skuKeys...)
	if err != nil {
		return AllocatedOrder{}, err
	}
	defer releaseSKUs()

	plans, err := h.plan(ctx, ledger, o)
	if err != nil {
		return AllocatedOrder{}, err
	}

	// Plans travel with a failed commit so a final give-up can name the lines
	// that were contested.
	attempted := AllocatedOrder{OrderID: o.ID(), Status: o.Status(), Lines: plans}
	if err = h.committer.Commit(ctx, ledger, o, plans); err != nil {
		return attempted, err
	}
	if err = orders.Update(ctx, o); err != nil {
		return attempted, err
	}
	if err = uow.Commit(ctx); err != nil {
		return attempted, err
	}

	return AllocatedOrder{OrderID: o.ID(), Status: o.Status(), Lines: plans}, nil
}

func isLedgerRace(err error) bool {
	return errors.Is(err, lot.ErrInsufficientLotQuantity) || errors.Is(err, ports.ErrConcurrentModification)
}
