package order

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/kernel"
	"github.com/3suji3/Inventory-management-test/internal/pkg/errs"
	"github.com/3suji3/Inventory-management-test/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrIncompleteAllocation is returned when picking is completed while a
	// line still has allocated < ordered, and when Allocate is given a set of
	// allocations that does not cover every line exactly.
	ErrIncompleteAllocation = errors.New("incomplete allocation")
)

// Order is the unit of fulfillment and the aggregate root of this package.
// It owns its lines; the allocator and committer reach them only through
// Allocate.
//
// Order follows these invariants:
//   - ID, customer and at least one line are present
//   - Line identifiers are unique within the order
//   - A Pending order has nothing allocated
//   - Any other status implies every line is fully allocated
//   - A Shipped order, and only a Shipped order, has a tracking number
//   - The requested ship date is not before the order date
//
// Version is the persisted revision the order was loaded at. Repositories
// use it for optimistic concurrency; the aggregate never changes it.
type Order struct {
	id             string
	channel        Channel
	customer       string
	priority       Priority
	orderDate      kernel.Date
	requestedDate  kernel.Date
	status         Status
	trackingNumber string
	lines          []*Line
	version        int

	events []StatusChanged

	guard guard.ConstructorGuard
}

// NewOrder registers a pending order.
//
// Example:
//
//	line, _ := order.NewLine("FG001", "애니콩 펫베이커리 A", 100, "ea")
//	o, err := order.NewOrder("SO001", order.B2B, "펫마트 강남점", order.Normal,
//	    orderDate, requestedDate, []*order.Line{line})
func NewOrder(
	id string,
	channel Channel,
	customer string,
	priority Priority,
	orderDate, requestedDate kernel.Date,
	lines []*Line,
) (*Order, error) {
	return RestoreOrder(id, channel, customer, priority, orderDate, requestedDate, Pending, "", 0, lines)
}

// RestoreOrder rebuilds an order from storage. Besides the field checks of
// NewOrder it verifies that status, allocations and tracking number agree
// with each other, so an inconsistent row is rejected rather than loaded.
func RestoreOrder(
	id string,
	channel Channel,
	customer string,
	priority Priority,
	orderDate, requestedDate kernel.Date,
	status Status,
	trackingNumber string,
	version int,
	lines []*Line,
) (*Order, error) {
	o := &Order{
		trackingNumber: trackingNumber,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setChannel(channel),
		o.setCustomer(customer),
		o.setPriority(priority),
		o.setDates(orderDate, requestedDate),
		o.setStatus(status),
		o.setVersion(version),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}
	if err := o.checkConsistency(); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID returns the order's unique identifier, for example "SO001".
func (o *Order) ID() string { return o.id }

// Channel returns the sales channel the order came through.
func (o *Order) Channel() Channel { return o.channel }

// Customer returns the name of the ordering customer.
func (o *Order) Customer() string { return o.customer }

// Priority returns the dispatch urgency.
func (o *Order) Priority() Priority { return o.priority }

// OrderDate returns the day the order was placed.
func (o *Order) OrderDate() kernel.Date { return o.orderDate }

// RequestedDate returns the day the customer expects delivery.
func (o *Order) RequestedDate() kernel.Date { return o.requestedDate }

// Status returns the current fulfillment status.
func (o *Order) Status() Status { return o.status }

// TrackingNumber is empty until the order ships.
func (o *Order) TrackingNumber() string { return o.trackingNumber }

// Version returns the stored version the order was loaded at. Repositories
// compare it on update to detect concurrent writers.
func (o *Order) Version() int { return o.version }

// Lines returns the lines in registration order.
func (o *Order) Lines() []*Line {
	out := make([]*Line, len(o.lines))
	copy(out, o.lines)
	return out
}

// Line looks a line up by its identifier.
func (o *Order) Line(id kernel.UUID) (*Line, bool) {
	for _, l := range o.lines {
		if l.id.IsEqual(id) {
			return l, true
		}
	}
	return nil, false
}

// SKUs returns the distinct SKUs of the order in ascending order.
func (o *Order) SKUs() []string {
	seen := make(map[string]struct{}, len(o.lines))
	skus := make([]string, 0, len(o.lines))
	for _, l := range o.lines {
		if _, ok := seen[l.sku]; ok {
			continue
		}
		seen[l.sku] = struct{}{}
		skus = append(skus, l.sku)
	}
	sort.Strings(skus)
	return skus
}

// TotalOrdered sums the ordered quantity of every line.
func (o *Order) TotalOrdered() int {
	total := 0
	for _, l := range o.lines {
		total += l.orderedQuantity
	}
	return total
}

// TotalAllocated sums the committed allocations of every line.
func (o *Order) TotalAllocated() int {
	total := 0
	for _, l := range o.lines {
		total += l.AllocatedQuantity()
	}
	return total
}

// IsFullyAllocated reports whether every line is fully allocated. Picking can
// only complete when it holds.
func (o *Order) IsFullyAllocated() bool {
	for _, l := range o.lines {
		if !l.IsFullyAllocated() {
			return false
		}
	}
	return true
}

// Allocate commits lot allocations to the lines and moves the order to
// Allocated.
//
// Business rules:
//   - The order must be Pending
//   - allocations must name every line and no other
//   - Each line must receive exactly its outstanding quantity
//
// Either every line is updated or none is.
func (o *Order) Allocate(allocations map[kernel.UUID][]Allocation) error {
	next, err := o.status.Allocate()
	if err != nil {
		return err
	}

	for lineID := range allocations {
		if _, ok := o.Line(lineID); !ok {
			return errs.NewValueIsInvalidErrorWithCause(
				"allocations",
				fmt.Errorf("line %s does not belong to order %s", lineID, o.id),
			)
		}
	}
	for _, l := range o.lines {
		given := allocations[l.id]
		for _, a := range given {
			if a.lotID == "" || a.quantity <= 0 {
				return errs.NewValueIsInvalidErrorWithCause(
					"allocations",
					fmt.Errorf("line %s has an allocation that was not built by NewAllocation", l.id),
				)
			}
		}
		if got := sumAllocations(given); got != l.OutstandingQuantity() {
			return fmt.Errorf("%w: line %s (%s) needs %d, got %d",
				ErrIncompleteAllocation, l.id, l.sku, l.OutstandingQuantity(), got)
		}
	}

	for _, l := range o.lines {
		l.allocations = append(l.allocations, allocations[l.id]...)
	}
	o.moveTo(next)
	return nil
}

// CompletePicking moves an Allocated order to Picked. An order with any
// line short of its ordered quantity fails with ErrIncompleteAllocation;
// that check runs first, so a Pending order reports the missing allocation
// rather than the transition.
func (o *Order) CompletePicking() error {
	for _, l := range o.lines {
		if !l.IsFullyAllocated() {
			return fmt.Errorf("%w: line %s (%s) has %d of %d allocated",
				ErrIncompleteAllocation, l.id, l.sku, l.AllocatedQuantity(), l.orderedQuantity)
		}
	}

	next, err := o.status.CompletePicking()
	if err != nil {
		return err
	}

	o.moveTo(next)
	return nil
}

// Ship moves a Picked order to Shipped and stamps the tracking number.
func (o *Order) Ship(trackingNumber string) error {
	next, err := o.status.Ship()
	if err != nil {
		return err
	}
	if strings.TrimSpace(trackingNumber) == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}

	o.trackingNumber = trackingNumber
	o.moveTo(next)
	return nil
}

// DomainEvents returns the transitions recorded since the order was loaded
// or last cleared.
func (o *Order) DomainEvents() []StatusChanged {
	out := make([]StatusChanged, len(o.events))
	copy(out, o.events)
	return out
}

// ClearDomainEvents drops the recorded transitions once they were handed to
// the event publisher.
func (o *Order) ClearDomainEvents() {
	o.events = nil
}

func (o *Order) moveTo(next Status) {
	o.events = append(o.events, StatusChanged{
		OrderID:        o.id,
		From:           o.status,
		To:             next,
		TrackingNumber: o.trackingNumber,
		OccurredAt:     time.Now().UTC(),
	})
	o.status = next
}

func (o *Order) setID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errs.NewValueIsRequiredError("orderId")
	}
	o.id = id
	return nil
}

func (o *Order) setChannel(channel Channel) error {
	if err := channel.Validate(); err != nil {
		return err
	}
	o.channel = channel
	return nil
}

func (o *Order) setCustomer(customer string) error {
	if strings.TrimSpace(customer) == "" {
		return errs.NewValueIsRequiredError("customer")
	}
	o.customer = customer
	return nil
}

func (o *Order) setPriority(priority Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	o.priority = priority
	return nil
}

func (o *Order) setDates(orderDate, requestedDate kernel.Date) error {
	if err := orderDate.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderDate", err)
	}
	if err := requestedDate.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("requestedDate", err)
	}
	if requestedDate.Before(orderDate) {
		return errs.NewValueIsInvalidErrorWithCause(
			"requestedDate",
			fmt.Errorf("%s is before order date %s", requestedDate, orderDate),
		)
	}
	o.orderDate = orderDate
	o.requestedDate = requestedDate
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setVersion(version int) error {
	if version < 0 {
		return errs.NewValueIsInvalidErrorWithCause("version", fmt.Errorf("%d is negative", version))
	}
	o.version = version
	return nil
}

func (o *Order) setLines(lines []*Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}

	seen := make(map[kernel.UUID]struct{}, len(lines))
	for i, l := range lines {
		if err := l.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("lines[%d]", i), err)
		}
		if _, dup := seen[l.id]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("lines[%d]", i),
				fmt.Errorf("duplicate line id %s", l.id),
			)
		}
		seen[l.id] = struct{}{}
	}

	o.lines = append([]*Line(nil), lines...)
	return nil
}

func (o *Order) checkConsistency() error {
	switch {
	case o.status == Pending && o.TotalAllocated() != 0:
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("pending order %s has %d units allocated", o.id, o.TotalAllocated()),
		)
	case o.status != Pending && !o.IsFullyAllocated():
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s order %s is not fully allocated", o.status, o.id),
		)
	case o.status == Shipped && strings.TrimSpace(o.trackingNumber) == "":
		return errs.NewValueIsRequiredError("trackingNumber")
	case o.status != Shipped && o.trackingNumber != "":
		return errs.NewValueIsInvalidErrorWithCause(
			"trackingNumber",
			fmt.Errorf("%s order %s cannot have a tracking number", o.status, o.id),
		)
	}
	return nil
}
