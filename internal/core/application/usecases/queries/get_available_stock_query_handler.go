package queries

import (
	"context"
	"time"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/kernel"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/services"
	"github.com/3suji3/Inventory-management-test/internal/core/ports"
)

// GetAvailableStockQueryHandler reads the stock ledger without locking it.
// Days to expiry are counted from the handler's clock.
type GetAvailableStockQueryHandler struct {
	ledger      ports.StockLedger
	warningDays int
	now         func() time.Time
}

// NewGetAvailableStockQueryHandler wires the handler. A negative warningDays
// means DefaultExpiryWarningDays and a nil now means time.Now.
func NewGetAvailableStockQueryHandler(
	ledger ports.StockLedger,
	warningDays int,
	now func() time.Time,
) GetAvailableStockQueryHandler {
	if warningDays < 0 {
		warningDays = DefaultExpiryWarningDays
	}
	if now == nil {
		now = time.Now
	}
	return GetAvailableStockQueryHandler{ledger: ledger, warningDays: warningDays, now: now}
}

// Handle lists lots holding stock in FEFO order, filtered as the query asks.
func (h GetAvailableStockQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableStockQuery,
) ([]GetAvailableStockQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	lots, err := h.ledger.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	services.SortFEFO(lots)

	today := kernel.DateOf(h.now())
	within, filtered := query.ExpiringWithinDays()

	resp := make([]GetAvailableStockQueryResponse, 0, len(lots))
	for _, l := range lots {
		if query.SKU() != "" && l.SKU() != query.SKU() {
			continue
		}
		days := l.DaysToExpiry(today)
		if filtered && days > within {
			continue
		}
		resp = append(resp, GetAvailableStockQueryResponse{
			LotID:             l.ID(),
			SKU:               l.SKU(),
			QuantityAvailable: l.QuantityAvailable(),
			Expiry:            l.Expiry(),
			Location:          l.Location(),
			DaysToExpiry:      days,
			ExpiringSoon:      days <= h.warningDays,
		})
	}
	return resp, nil
}
