package order

import (
	"errors"
	"fmt"
	"strings"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/kernel"
	"github.com/3suji3/Inventory-management-test/internal/pkg/errs"
)

// Allocation is a committed reservation of quantity units from one lot for
// one order line. Location and expiry are copied from the lot at commit time
// so the picking list never has to go back to the ledger.
type Allocation struct {
	lotID    string
	quantity int
	location string
	expiry   kernel.Date
}

// NewAllocation creates an allocation of quantity units from a lot.
//
// Parameters:
//   - lotID: the lot the units are drawn from
//   - quantity: units drawn, greater than 0
//   - location: the lot's bin at commit time
//   - expiry: the lot's expiry at commit time
//
// Returns:
//   - the allocation on success
//   - every validation failure joined with errors.Join otherwise
func NewAllocation(lotID string, quantity int, location string, expiry kernel.Date) (Allocation, error) {
	var errList []error
	if strings.TrimSpace(lotID) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("lotId"))
	}
	if quantity <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity)))
	}
	if strings.TrimSpace(location) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("location"))
	}
	if err := expiry.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("expiryDate", err))
	}
	if err := errors.Join(errList...); err != nil {
		return Allocation{}, err
	}

	return Allocation{lotID: lotID, quantity: quantity, location: location, expiry: expiry}, nil
}

// LotID returns the lot the units are drawn from.
func (a Allocation) LotID() string { return a.lotID }

// Quantity returns the number of units drawn.
func (a Allocation) Quantity() int { return a.quantity }

// Location returns the bin the picker goes to.
func (a Allocation) Location() string { return a.location }

// Expiry returns the lot's expiry copied at commit time.
func (a Allocation) Expiry() kernel.Date { return a.expiry }

func sumAllocations(allocations []Allocation) int {
	total := 0
	for _, a := range allocations {
		total += a.quantity
	}
	return total
}
