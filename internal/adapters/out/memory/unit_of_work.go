package memory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/lot"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/order"
	"github.com/3suji3/Inventory-management-test/internal/core/ports"
	"github.com/3suji3/Inventory-management-test/internal/pkg/errs"
)

// ErrNoTransaction is returned by Commit and Rollback without a Begin.
var ErrNoTransaction = errors.New("no transaction in progress")

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store     *Store
	publisher ports.EventPublisher
	logger    *slog.Logger
}

// NewUnitOfWorkFactory opens units of work on store. publisher may be nil, in
// which case events are dropped.
func NewUnitOfWorkFactory(store *Store, publisher ports.EventPublisher, logger *slog.Logger) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		store:     store,
		publisher: publisher,
		logger:    logger.With("component", "memory_uow"),
	}
}

// Create returns a unit of work that has not begun.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store, publisher: f.publisher, logger: f.logger}
}

// UnitOfWork stages writes and applies them on Commit under the store lock.
//
// Reads inside a transaction see the committed state overlaid with the
// staged writes. Commit re-validates every staged deduction against the
// committed quantities and every order update against the committed
// version, so a plan built on a stale snapshot is rejected as a whole.
// Outside Begin each write commits on its own.
type UnitOfWork struct {
	store     *Store
	publisher ports.EventPublisher
	logger    *slog.Logger
	tx        *changeSet
}

type changeSet struct {
	deductions map[string]int
	newLots    map[string]*lot.Lot
	newOrders  map[string]*order.Order
	updated    map[string]*order.Order
	events     map[string][]order.StatusChanged
	eventOrder []string
}

func newChangeSet() *changeSet {
	return &changeSet{
		deductions: make(map[string]int),
		newLots:    make(map[string]*lot.Lot),
		newOrders:  make(map[string]*order.Order),
		updated:    make(map[string]*order.Order),
		events:     make(map[string][]order.StatusChanged),
	}
}

// Begin is a no-op when a transaction is already open.
func (u *UnitOfWork) Begin(_ context.Context) error {
	if u.tx == nil {
		u.tx = newChangeSet()
	}
	return nil
}

// Commit re-validates the staged changes against the store and applies them
// atomically, then publishes the recorded events.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return ErrNoTransaction
	}
	cs := u.tx
	u.tx = nil
	return u.apply(ctx, cs)
}

// Rollback drops the staged changes. After Commit it only returns
// ErrNoTransaction.
func (u *UnitOfWork) Rollback(_ context.Context) error {
	if u.tx == nil {
		return ErrNoTransaction
	}
	u.tx = nil
	return nil
}

// OrderRepository returns the repository bound to this unit of work.
func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{uow: u}
}

// StockLedger returns the ledger bound to this unit of work.
func (u *UnitOfWork) StockLedger() ports.StockLedger {
	return &StockLedger{uow: u}
}

// write stages fn into the open transaction, or into a throwaway one that
// is committed immediately.
func (u *UnitOfWork) write(ctx context.Context, fn func(cs *changeSet) error) error {
	if u.tx != nil {
		return fn(u.tx)
	}
	cs := newChangeSet()
	if err := fn(cs); err != nil {
		return err
	}
	return u.apply(ctx, cs)
}

// view returns the open change set or an empty one.
func (u *UnitOfWork) view() *changeSet {
	if u.tx != nil {
		return u.tx
	}
	return newChangeSet()
}

func (u *UnitOfWork) apply(ctx context.Context, cs *changeSet) error {
	s := u.store
	s.mu.Lock()

	if err := validate(s, cs); err != nil {
		s.mu.Unlock()
		return err
	}

	for id, l := range cs.newLots {
		s.lots[id] = l.Clone()
	}
	for id, qty := range cs.deductions {
		// validate checked every quantity above
		_ = s.lots[id].Deduct(qty)
	}
	for id, o := range cs.newOrders {
		s.orders[id] = o
	}
	for id, o := range cs.updated {
		stored, err := cloneOrder(o, o.Version()+1)
		if err != nil {
			s.mu.Unlock()
			return err
		}
		s.orders[id] = stored
	}
	s.mu.Unlock()

	u.publish(ctx, cs)
	return nil
}

func validate(s *Store, cs *changeSet) error {
	for id := range cs.newLots {
		if _, ok := s.lots[id]; ok {
			return fmt.Errorf("%w: lot %s", ports.ErrAlreadyExists, id)
		}
	}
	for id, qty := range cs.deductions {
		committed, ok := s.lots[id]
		if !ok {
			return errs.NewObjectNotFoundError("lotId", id)
		}
		if qty > committed.QuantityAvailable() {
			return lot.NewInsufficientLotQuantityError(id, qty, committed.QuantityAvailable())
		}
	}
	for id := range cs.newOrders {
		if _, ok := s.orders[id]; ok {
			return fmt.Errorf("%w: order %s", ports.ErrAlreadyExists, id)
		}
	}
	for id, o := range cs.updated {
		if _, isNew := cs.newOrders[id]; isNew {
			continue
		}
		committed, ok := s.orders[id]
		if !ok {
			return errs.NewObjectNotFoundError("orderId", id)
		}
		if committed.Version() != o.Version() {
			return errs.NewVersionIsInvalidErrorWithCause(
				"order "+id,
				fmt.Errorf("stored version %d, written from version %d", committed.Version(), o.Version()),
			)
		}
	}
	return nil
}

func (u *UnitOfWork) publish(ctx context.Context, cs *changeSet) {
	if u.publisher == nil {
		return
	}
	var events []order.StatusChanged
	for _, id := range cs.eventOrder {
		events = append(events, cs.events[id]...)
	}
	if len(events) == 0 {
		return
	}
	if err := u.publisher.Publish(ctx, events...); err != nil {
		u.logger.WarnContext(ctx, "publishing order events failed", "events", len(events), "error", err)
	}
}

func (cs *changeSet) recordEvents(o *order.Order) {
	events := o.DomainEvents()
	if len(events) == 0 {
		return
	}
	if _, seen := cs.events[o.ID()]; !seen {
		cs.eventOrder = append(cs.eventOrder, o.ID())
	}
	cs.events[o.ID()] = events
}
