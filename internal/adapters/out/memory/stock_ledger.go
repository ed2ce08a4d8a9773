package memory

import (
	"context"
	"fmt"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/lot"
	"github.com/3suji3/Inventory-management-test/internal/core/ports"
	"github.com/3suji3/Inventory-management-test/internal/pkg/errs"
)

// StockLedger implements ports.StockLedger over a Store.
type StockLedger struct {
	uow *UnitOfWork
}

// LotsFor returns copies of every lot of the SKU, staged ones included. The
// allocator does the ordering.
func (l *StockLedger) LotsFor(_ context.Context, sku string) ([]*lot.Lot, error) {
	cs := l.uow.view()
	s := l.uow.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*lot.Lot
	for _, committed := range s.lots {
		if committed.SKU() == sku {
			out = append(out, current(committed, cs))
		}
	}
	for _, staged := range cs.newLots {
		if staged.SKU() == sku {
			out = append(out, staged.Clone())
		}
	}
	return out, nil
}

// Get returns a copy of one lot.
func (l *StockLedger) Get(_ context.Context, lotID string) (*lot.Lot, error) {
	cs := l.uow.view()
	s := l.uow.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	if staged, ok := cs.newLots[lotID]; ok {
		return staged.Clone(), nil
	}
	if committed, ok := s.lots[lotID]; ok {
		return current(committed, cs), nil
	}
	return nil, errs.NewObjectNotFoundError("lotId", lotID)
}

// ListAvailable returns copies of every lot with stock left.
func (l *StockLedger) ListAvailable(_ context.Context) ([]*lot.Lot, error) {
	cs := l.uow.view()
	s := l.uow.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*lot.Lot
	for _, committed := range s.lots {
		if c := current(committed, cs); !c.IsDepleted() {
			out = append(out, c)
		}
	}
	for _, staged := range cs.newLots {
		if !staged.IsDepleted() {
			out = append(out, staged.Clone())
		}
	}
	return out, nil
}

// Deduct checks the quantity against the committed amount minus what this
// unit of work already deducted. Commit checks it again.
func (l *StockLedger) Deduct(ctx context.Context, lotID string, quantity int) error {
	return l.uow.write(ctx, func(cs *changeSet) error {
		if staged, ok := cs.newLots[lotID]; ok {
			return staged.Deduct(quantity)
		}

		s := l.uow.store
		s.mu.RLock()
		committed, ok := s.lots[lotID]
		var view *lot.Lot
		if ok {
			view = current(committed, cs)
		}
		s.mu.RUnlock()
		if !ok {
			return errs.NewObjectNotFoundError("lotId", lotID)
		}

		if err := view.Deduct(quantity); err != nil {
			return err
		}
		cs.deductions[lotID] += quantity
		return nil
	})
}

// Add stages a received lot. An ID already stored or staged fails with
// ports.ErrAlreadyExists.
func (l *StockLedger) Add(ctx context.Context, received *lot.Lot) error {
	if err := received.Validate(); err != nil {
		return err
	}
	return l.uow.write(ctx, func(cs *changeSet) error {
		s := l.uow.store
		s.mu.RLock()
		_, exists := s.lots[received.ID()]
		s.mu.RUnlock()
		if _, staged := cs.newLots[received.ID()]; exists || staged {
			return fmt.Errorf("%w: lot %s", ports.ErrAlreadyExists, received.ID())
		}
		cs.newLots[received.ID()] = received.Clone()
		return nil
	})
}

// current returns a copy of a committed lot with the staged deductions
// applied. The caller holds the store lock.
func current(committed *lot.Lot, cs *changeSet) *lot.Lot {
	c := committed.Clone()
	if qty := cs.deductions[committed.ID()]; qty > 0 {
		// another commit may have drained the lot meanwhile
		if qty > c.QuantityAvailable() {
			qty = c.QuantityAvailable()
		}
		if qty > 0 {
			_ = c.Deduct(qty)
		}
	}
	return c
}
