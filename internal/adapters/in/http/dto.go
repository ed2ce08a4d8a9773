package http

import (
	"github.com/3suji3/Inventory-management-test/internal/core/application/usecases/commands"
	"github.com/3suji3/Inventory-management-test/internal/core/application/usecases/queries"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/services"
)

// NewOrderLine is one line of an order intake request.
type NewOrderLine struct {
	SKU         string `json:"sku" validate:"required"`
	ProductName string `json:"productName" validate:"required"`
	Quantity    int    `json:"quantity" validate:"gt=0"`
	Unit        string `json:"unit" validate:"required"`
}

// NewOrder is the body of POST /api/v1/orders.
type NewOrder struct {
	ID            string         `json:"id" validate:"required"`
	Channel       string         `json:"channel" validate:"required"`
	Customer      string         `json:"customer" validate:"required"`
	Priority      string         `json:"priority" validate:"omitempty,oneof=urgent normal low"`
	OrderDate     string         `json:"orderDate" validate:"required,datetime=2006-01-02"`
	RequestedDate string         `json:"requestedDate" validate:"required,datetime=2006-01-02"`
	Lines         []NewOrderLine `json:"lines" validate:"required,min=1,dive"`
}

// NewLot is the body of POST /api/v1/lots.
type NewLot struct {
	ID         string `json:"id" validate:"required"`
	SKU        string `json:"sku" validate:"required"`
	Quantity   int    `json:"quantity" validate:"gt=0"`
	ExpiryDate string `json:"expiryDate" validate:"required,datetime=2006-01-02"`
	Location   string `json:"location" validate:"required"`
}

// Allocation is a committed draw from one lot.
type Allocation struct {
	LotID      string `json:"lotId"`
	Quantity   int    `json:"quantity"`
	Location   string `json:"location"`
	ExpiryDate string `json:"expiryDate"`
}

// OrderLine is one line of an order with its allocations.
type OrderLine struct {
	ID                string       `json:"id"`
	SKU               string       `json:"sku"`
	ProductName       string       `json:"productName"`
	OrderedQuantity   int          `json:"orderedQuantity"`
	AllocatedQuantity int          `json:"allocatedQuantity"`
	Unit              string       `json:"unit"`
	Allocations       []Allocation `json:"allocations"`
}

// Order is the full order returned by detail, intake and allocation.
type Order struct {
	ID             string      `json:"id"`
	Channel        string      `json:"channel"`
	Customer       string      `json:"customer"`
	Priority       string      `json:"priority"`
	OrderDate      string      `json:"orderDate"`
	RequestedDate  string      `json:"requestedDate"`
	Status         string      `json:"status"`
	TrackingNumber string      `json:"trackingNumber,omitempty"`
	Lines          []OrderLine `json:"lines"`
}

// OrderSummary is one row of the order list.
type OrderSummary struct {
	ID             string `json:"id"`
	Channel        string `json:"channel"`
	Customer       string `json:"customer"`
	Priority       string `json:"priority"`
	OrderDate      string `json:"orderDate"`
	RequestedDate  string `json:"requestedDate"`
	Status         string `json:"status"`
	TrackingNumber string `json:"trackingNumber,omitempty"`
	TotalOrdered   int    `json:"totalOrdered"`
	TotalAllocated int    `json:"totalAllocated"`
}

// OrderStatusSummary holds the dashboard counts per status.
type OrderStatusSummary struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

// PickingListEntry tells the picker what to take from which bin.
type PickingListEntry struct {
	LineID      string `json:"lineId"`
	SKU         string `json:"sku"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Unit        string `json:"unit"`
	LotID       string `json:"lotId"`
	Location    string `json:"location"`
	ExpiryDate  string `json:"expiryDate"`
}

// Shipment is returned once an order ships.
type Shipment struct {
	OrderID        string `json:"orderId"`
	TrackingNumber string `json:"trackingNumber"`
}

// StockLot is one lot of the FEFO stock view.
type StockLot struct {
	LotID             string `json:"lotId"`
	SKU               string `json:"sku"`
	QuantityAvailable int    `json:"quantityAvailable"`
	ExpiryDate        string `json:"expiryDate"`
	Location          string `json:"location"`
	DaysToExpiry      int    `json:"daysToExpiry"`
	ExpiringSoon      bool   `json:"expiringSoon"`
}

// Shortage is the missing quantity of one order line.
type Shortage struct {
	LineID    string `json:"lineId"`
	SKU       string `json:"sku"`
	Requested int    `json:"requested"`
	Shortfall int    `json:"shortfall"`
}

// Error is the body of every failed request.
type Error struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	Shortages []Shortage        `json:"shortages,omitempty"`
}

func toNewOrderLines(lines []NewOrderLine) []commands.RegisterOrderLine {
	out := make([]commands.RegisterOrderLine, len(lines))
	for i, l := range lines {
		out[i] = commands.RegisterOrderLine{
			SKU:         l.SKU,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			Unit:        l.Unit,
		}
	}
	return out
}

func fromOrderResponse(o queries.GetOrderQueryResponse) Order {
	lines := make([]OrderLine, len(o.Lines))
	for i, l := range o.Lines {
		allocations := make([]Allocation, len(l.Allocations))
		for j, a := range l.Allocations {
			allocations[j] = Allocation{
				LotID:      a.LotID,
				Quantity:   a.Quantity,
				Location:   a.Location,
				ExpiryDate: a.Expiry.String(),
			}
		}
		lines[i] = OrderLine{
			ID:                l.ID,
			SKU:               l.SKU,
			ProductName:       l.ProductName,
			OrderedQuantity:   l.OrderedQuantity,
			AllocatedQuantity: l.AllocatedQuantity,
			Unit:              l.Unit,
			Allocations:       allocations,
		}
	}

	return Order{
		ID:             o.ID,
		Channel:        o.Channel.String(),
		Customer:       o.Customer,
		Priority:       o.Priority.String(),
		OrderDate:      o.OrderDate.String(),
		RequestedDate:  o.RequestedDate.String(),
		Status:         o.Status.String(),
		TrackingNumber: o.TrackingNumber,
		Lines:          lines,
	}
}

func fromListResponse(rows []queries.ListOrdersQueryResponse) []OrderSummary {
	out := make([]OrderSummary, len(rows))
	for i, r := range rows {
		out[i] = OrderSummary{
			ID:             r.ID,
			Channel:        r.Channel.String(),
			Customer:       r.Customer,
			Priority:       r.Priority.String(),
			OrderDate:      r.OrderDate.String(),
			RequestedDate:  r.RequestedDate.String(),
			Status:         r.Status.String(),
			TrackingNumber: r.TrackingNumber,
			TotalOrdered:   r.TotalOrdered,
			TotalAllocated: r.TotalAllocated,
		}
	}
	return out
}

func fromSummaryResponse(s queries.GetOrderSummaryQueryResponse) OrderStatusSummary {
	counts := make(map[string]int, len(s.Counts))
	for _, c := range s.Counts {
		counts[c.Status.String()] = c.Count
	}
	return OrderStatusSummary{Counts: counts, Total: s.Total}
}

func fromPickingList(entries []services.PickingListEntry) []PickingListEntry {
	out := make([]PickingListEntry, len(entries))
	for i, e := range entries {
		out[i] = PickingListEntry{
			LineID:      e.LineID.String(),
			SKU:         e.SKU,
			ProductName: e.ProductName,
			Quantity:    e.Quantity,
			Unit:        e.Unit,
			LotID:       e.LotID,
			Location:    e.Location,
			ExpiryDate:  e.Expiry.String(),
		}
	}
	return out
}

func fromStockResponse(lots []queries.GetAvailableStockQueryResponse) []StockLot {
	out := make([]StockLot, len(lots))
	for i, l := range lots {
		out[i] = StockLot{
			LotID:             l.LotID,
			SKU:               l.SKU,
			QuantityAvailable: l.QuantityAvailable,
			ExpiryDate:        l.Expiry.String(),
			Location:          l.Location,
			DaysToExpiry:      l.DaysToExpiry,
			ExpiringSoon:      l.ExpiringSoon,
		}
	}
	return out
}

func fromShortages(shortages []services.Shortage) []Shortage {
	out := make([]Shortage, len(shortages))
	for i, s := range shortages {
		out[i] = Shortage{
			LineID:    s.LineID.String(),
			SKU:       s.SKU,
			Requested: s.Requested,
			Shortfall: s.Shortfall,
		}
	}
	return out
}
