package queries

import (
	"errors"
	"fmt"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/kernel"
	"github.com/3suji3/Inventory-management-test/internal/pkg/errs"
	"github.com/3suji3/Inventory-management-test/internal/pkg/guard"
)

// DefaultExpiryWarningDays is the days-to-expiry at or below which a lot is
// flagged as expiring soon.
const DefaultExpiryWarningDays = 3

// ErrGetAvailableStockQueryIsNotConstructed is returned by Validate for a
// zero GetAvailableStockQuery.
var ErrGetAvailableStockQueryIsNotConstructed = errors.New(
	"GetAvailableStockQuery must be created via NewGetAvailableStockQuery constructor",
)

// GetAvailableStockQuery lists lots that still hold stock, in the order the
// allocator would consume them.
//
// Example:
//
//	query, err := NewGetAvailableStockQuery("FG001", nil)
//	if err != nil {
//	    return err
//	}
//	lots, err := handler.Handle(ctx, query)
//	for _, l := range lots {
//	    if l.ExpiringSoon {
//	        fmt.Printf("%s at %s expires in %d days\n", l.LotID, l.Location, l.DaysToExpiry)
//	    }
//	}
type GetAvailableStockQuery struct {
	sku                string
	expiringWithinDays *int

	guard guard.ConstructorGuard
}

// NewGetAvailableStockQuery filters by SKU when sku is not empty, and to lots
// expiring within the given number of days when expiringWithinDays is set.
func NewGetAvailableStockQuery(sku string, expiringWithinDays *int) (GetAvailableStockQuery, error) {
	q := GetAvailableStockQuery{sku: sku, guard: guard.NewConstructorGuard()}
	if expiringWithinDays != nil {
		if *expiringWithinDays < 0 {
			return GetAvailableStockQuery{}, errs.NewValueIsOutOfRangeErrorWithCause(
				"expiringWithinDays", *expiringWithinDays, 0, "unbounded",
				fmt.Errorf("%d is negative", *expiringWithinDays),
			)
		}
		days := *expiringWithinDays
		q.expiringWithinDays = &days
	}
	return q, nil
}

// Validate ensures the query was built by NewGetAvailableStockQuery.
func (q GetAvailableStockQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableStockQueryIsNotConstructed)
}

// SKU returns the SKU filter; empty means every SKU.
func (q GetAvailableStockQuery) SKU() string { return q.sku }

// ExpiringWithinDays reports the expiry window filter, if any.
func (q GetAvailableStockQuery) ExpiringWithinDays() (int, bool) {
	if q.expiringWithinDays == nil {
		return 0, false
	}
	return *q.expiringWithinDays, true
}

// GetAvailableStockQueryResponse is one lot with stock left, in FEFO order.
type GetAvailableStockQueryResponse struct {
	LotID             string
	SKU               string
	QuantityAvailable int
	Expiry            kernel.Date
	Location          string
	DaysToExpiry      int
	ExpiringSoon      bool
}
