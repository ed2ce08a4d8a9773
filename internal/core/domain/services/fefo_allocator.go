package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/lot"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/order"
	"github.com/3suji3/Inventory-management-test/internal/pkg/errs"
)

// FEFOAllocator plans allocations First-Expired-First-Out.
//
// Candidate lots are those of the requested SKU with quantity left. They are
// consumed in ascending expiry order, ties broken by ascending lot ID, each
// up to its available quantity, until the request is met or the lots run
// out. The same snapshot always yields the same plan.
//
// Example:
//
//	plan, err := services.NewFEFOAllocator().Plan("FG001", 120, lots)
//	if err != nil {
//	    return err
//	}
//	if !plan.IsSatisfied() {
//	    // plan.Shortfall units are missing
//	}
type FEFOAllocator struct{}

// NewFEFOAllocator returns a stateless allocator. It is safe for concurrent
// use.
func NewFEFOAllocator() FEFOAllocator {
	return FEFOAllocator{}
}

// Plan proposes picks for a single SKU. lots may contain other SKUs and
// depleted lots; both are skipped. A zero request yields an empty plan.
func (a FEFOAllocator) Plan(sku string, requested int, lots []*lot.Lot) (AllocationPlan, error) {
	if requested < 0 {
		return AllocationPlan{}, errs.NewValueIsOutOfRangeError("requested", requested, 0, math.MaxInt)
	}

	candidates, err := newCandidates(sku, lots)
	if err != nil {
		return AllocationPlan{}, err
	}
	return candidates.take(sku, requested), nil
}

// PlanOrder plans every line's outstanding quantity in line order.
// Consumption carries over between lines so two lines of the same SKU never
// plan the same units. If any line is short it returns *InsufficientStockError
// naming every short line and no plans.
func (a FEFOAllocator) PlanOrder(o *order.Order, lotsBySKU map[string][]*lot.Lot) ([]LinePlan, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	bySKU := make(map[string]*candidates)
	plans := make([]LinePlan, 0, len(o.Lines()))
	var shortages []Shortage

	for _, line := range o.Lines() {
		c, ok := bySKU[line.SKU()]
		if !ok {
			var err error
			if c, err = newCandidates(line.SKU(), lotsBySKU[line.SKU()]); err != nil {
				return nil, err
			}
			bySKU[line.SKU()] = c
		}

		plan := c.take(line.SKU(), line.OutstandingQuantity())
		if !plan.IsSatisfied() {
			shortages = append(shortages, Shortage{
				LineID:    line.ID(),
				SKU:       line.SKU(),
				Requested: plan.Requested,
				Shortfall: plan.Shortfall,
			})
		}
		plans = append(plans, LinePlan{LineID: line.ID(), AllocationPlan: plan})
	}

	if len(shortages) > 0 {
		return nil, NewInsufficientStockError(o.ID(), shortages)
	}
	return plans, nil
}

// SortFEFO orders lots by expiry then lot ID, in place.
func SortFEFO(lots []*lot.Lot) {
	sort.SliceStable(lots, func(i, j int) bool {
		return lessFEFO(lots[i], lots[j])
	})
}

func lessFEFO(a, b *lot.Lot) bool {
	if c := a.Expiry().Compare(b.Expiry()); c != 0 {
		return c < 0
	}
	return a.ID() < b.ID()
}

type candidate struct {
	lot       *lot.Lot
	remaining int
}

// candidates is a FEFO-sorted working copy of a lot snapshot. take consumes
// from remaining; the lots themselves are never touched.
type candidates struct {
	items []candidate
}

func newCandidates(sku string, lots []*lot.Lot) (*candidates, error) {
	c := &candidates{}
	for i, l := range lots {
		if err := l.Validate(); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("lots[%d]", i), err)
		}
		if l.SKU() != sku || l.QuantityAvailable() <= 0 {
			continue
		}
		c.items = append(c.items, candidate{lot: l, remaining: l.QuantityAvailable()})
	}
	sort.SliceStable(c.items, func(i, j int) bool {
		return lessFEFO(c.items[i].lot, c.items[j].lot)
	})
	return c, nil
}

func (c *candidates) take(sku string, requested int) AllocationPlan {
	plan := AllocationPlan{SKU: sku, Requested: requested}
	outstanding := requested

	for i := range c.items {
		if outstanding == 0 {
			break
		}
		item := &c.items[i]
		if item.remaining == 0 {
			continue
		}

		qty := min(item.remaining, outstanding)
		plan.Picks = append(plan.Picks, PlannedPick{
			LotID:    item.lot.ID(),
			Quantity: qty,
			Location: item.lot.Location(),
			Expiry:   item.lot.Expiry(),
		})
		item.remaining -= qty
		outstanding -= qty
	}

	plan.Shortfall = outstanding
	return plan
}
