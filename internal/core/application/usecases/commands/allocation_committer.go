package commands

import (
	"context"
	"fmt"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/kernel"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/order"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/services"
	"github.com/3suji3/Inventory-management-test/internal/core/ports"
)

// AllocationCommitter makes a set of shortfall-free line plans durable: it
// deducts every pick from the ledger and then hands all line allocations to
// the order in a single Order.Allocate call.
//
// It must run inside a unit of work. When a deduction fails the committer
// stops and returns the error without touching the order; the caller rolls
// the unit of work back, which discards the deductions already made.
type AllocationCommitter struct{}

// NewAllocationCommitter returns a stateless committer.
func NewAllocationCommitter() AllocationCommitter {
	return AllocationCommitter{}
}

// Commit deducts every pick and allocates the order. Any short plan is
// rejected with services.ErrInsufficientStock before the ledger is touched.
func (c AllocationCommitter) Commit(
	ctx context.Context,
	ledger ports.StockLedger,
	o *order.Order,
	plans []services.LinePlan,
) error {
	if err := o.Validate(); err != nil {
		return err
	}

	allocations := make(map[kernel.UUID][]order.Allocation, len(plans))
	for _, plan := range plans {
		if !plan.IsSatisfied() {
			return fmt.Errorf("%w: line %s plan for %s is short by %d",
				services.ErrInsufficientStock, plan.LineID, plan.SKU, plan.Shortfall)
		}
		lineAllocations, err := plan.Allocations()
		if err != nil {
			return err
		}
		allocations[plan.LineID] = append(allocations[plan.LineID], lineAllocations...)
	}

	for _, plan := range plans {
		for _, pick := range plan.Picks {
			if err := ledger.Deduct(ctx, pick.LotID, pick.Quantity); err != nil {
				return fmt.Errorf("deduct %d from lot %s: %w", pick.Quantity, pick.LotID, err)
			}
		}
	}

	return o.Allocate(allocations)
}
