package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/order"
	"github.com/3suji3/Inventory-management-test/internal/core/ports"
	"github.com/3suji3/Inventory-management-test/internal/pkg/errs"
)

// OrderRepository implements ports.OrderRepository over a Store.
type OrderRepository struct {
	uow *UnitOfWork
}

// Add stages a new order. An ID already stored or staged fails with
// ports.ErrAlreadyExists.
func (r *OrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	stored, err := cloneOrder(aggregate, aggregate.Version())
	if err != nil {
		return err
	}

	return r.uow.write(ctx, func(cs *changeSet) error {
		s := r.uow.store
		s.mu.RLock()
		_, exists := s.orders[aggregate.ID()]
		s.mu.RUnlock()
		if _, staged := cs.newOrders[aggregate.ID()]; exists || staged {
			return fmt.Errorf("%w: order %s", ports.ErrAlreadyExists, aggregate.ID())
		}
		cs.newOrders[aggregate.ID()] = stored
		cs.recordEvents(aggregate)
		return nil
	})
}

// Update stages the new state. A stale version is reported right away when
// it is already visible, and again at commit.
func (r *OrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	staged, err := cloneOrder(aggregate, aggregate.Version())
	if err != nil {
		return err
	}

	return r.uow.write(ctx, func(cs *changeSet) error {
		id := aggregate.ID()
		if _, isNew := cs.newOrders[id]; !isNew {
			s := r.uow.store
			s.mu.RLock()
			committed, ok := s.orders[id]
			s.mu.RUnlock()
			if !ok {
				return errs.NewObjectNotFoundError("orderId", id)
			}
			if committed.Version() != aggregate.Version() {
				return errs.NewVersionIsInvalidErrorWithCause(
					"order "+id,
					fmt.Errorf("stored version %d, written from version %d", committed.Version(), aggregate.Version()),
				)
			}
		}
		cs.updated[id] = staged
		cs.recordEvents(aggregate)
		return nil
	})
}

// Get returns a copy of the order including staged changes.
func (r *OrderRepository) Get(_ context.Context, id string) (*order.Order, error) {
	cs := r.uow.view()
	if o, ok := cs.updated[id]; ok {
		return cloneOrder(o, o.Version())
	}
	if o, ok := cs.newOrders[id]; ok {
		return cloneOrder(o, o.Version())
	}

	s := r.uow.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	if o, ok := s.orders[id]; ok {
		return cloneOrder(o, o.Version())
	}
	return nil, errs.NewObjectNotFoundError("orderId", id)
}

// List returns copies of the matching orders, oldest order date first.
func (r *OrderRepository) List(_ context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	all, err := r.snapshot()
	if err != nil {
		return nil, err
	}

	out := make([]*order.Order, 0, len(all))
	for _, o := range all {
		if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, o.Status()) {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].OrderDate().Compare(out[j].OrderDate()); c != 0 {
			return c < 0
		}
		return out[i].ID() < out[j].ID()
	})
	return out, nil
}

// CountByStatus counts orders per status as this unit of work sees them.
func (r *OrderRepository) CountByStatus(_ context.Context) (map[order.Status]int, error) {
	all, err := r.snapshot()
	if err != nil {
		return nil, err
	}

	counts := make(map[order.Status]int)
	for _, o := range all {
		counts[o.Status()]++
	}
	return counts, nil
}

// snapshot merges committed orders with the staged ones, as copies.
func (r *OrderRepository) snapshot() ([]*order.Order, error) {
	cs := r.uow.view()
	merged := make(map[string]*order.Order)

	s := r.uow.store
	s.mu.RLock()
	for id, o := range s.orders {
		merged[id] = o
	}
	s.mu.RUnlock()
	for id, o := range cs.newOrders {
		merged[id] = o
	}
	for id, o := range cs.updated {
		merged[id] = o
	}

	out := make([]*order.Order, 0, len(merged))
	for _, o := range merged {
		c, err := cloneOrder(o, o.Version())
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
