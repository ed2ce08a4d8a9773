// Package orderrepo persists order aggregates in three tables: orders,
// order_lines and order_allocations. It converts between the domain
// aggregate and its rows.
package orderrepo

import (
	"time"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/kernel"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the orders row. Version backs optimistic concurrency.
type OrderDTO struct {
	ID             string    `gorm:"type:varchar(64);primaryKey"`
	Channel        string    `gorm:"type:varchar(8);not null"`
	Customer       string    `gorm:"type:varchar(255);not null"`
	Priority       string    `gorm:"type:varchar(16);not null"`
	OrderDate      time.Time `gorm:"type:date;not null;index"`
	RequestedDate  time.Time `gorm:"type:date;not null"`
	Status         int       `gorm:"type:smallint;not null;index"`
	TrackingNumber *string   `gorm:"type:varchar(64);uniqueIndex"`
	Version        int       `gorm:"not null;default:0"`
	Lines          []LineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the orders table name.
func (OrderDTO) TableName() string {
	return "orders"
}

// LineDTO is one order line. Position keeps the order the lines were
// registered in.
type LineDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID         string          `gorm:"type:varchar(64);not null;index"`
	Position        int             `gorm:"not null"`
	SKU             string          `gorm:"type:varchar(64);not null;index"`
	ProductName     string          `gorm:"type:varchar(255);not null"`
	OrderedQuantity int             `gorm:"not null"`
	Unit            string          `gorm:"type:varchar(16);not null"`
	Allocations     []AllocationDTO `gorm:"foreignKey:LineID;constraint:OnDelete:CASCADE"`
}

// TableName returns the order lines table name.
func (LineDTO) TableName() string {
	return "order_lines"
}

// AllocationDTO is a committed reservation of lot quantity for a line. A line
// draws on a lot at most once, so (line_id, lot_id) is the key.
type AllocationDTO struct {
	LineID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	LotID      string    `gorm:"type:varchar(64);primaryKey;index"`
	Position   int       `gorm:"not null"`
	Quantity   int       `gorm:"not null"`
	Location   string    `gorm:"type:varchar(64);not null"`
	ExpiryDate time.Time `gorm:"type:date;not null"`
}

// TableName returns the allocations table name.
func (AllocationDTO) TableName() string {
	return "order_allocations"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var trackingNumber *string
	if tn := aggregate.TrackingNumber(); tn != "" {
		trackingNumber = &tn
	}

	domainLines := aggregate.Lines()
	lines := make([]LineDTO, 0, len(domainLines))
	for i, l := range domainLines {
		lines = append(lines, LineDTO{
			ID:              l.ID().Bytes(),
			OrderID:         aggregate.ID(),
			Position:        i,
			SKU:             l.SKU(),
			ProductName:     l.ProductName(),
			OrderedQuantity: l.OrderedQuantity(),
			Unit:            l.Unit(),
			Allocations:     allocationsFromDomain(l),
		})
	}

	return OrderDTO{
		ID:             aggregate.ID(),
		Channel:        string(aggregate.Channel()),
		Customer:       aggregate.Customer(),
		Priority:       string(aggregate.Priority()),
		OrderDate:      aggregate.OrderDate().Time(),
		RequestedDate:  aggregate.RequestedDate().Time(),
		Status:         int(aggregate.Status()),
		TrackingNumber: trackingNumber,
		Version:        aggregate.Version(),
		Lines:          lines,
	}
}

func allocationsFromDomain(l *order.Line) []AllocationDTO {
	allocations := l.Allocations()
	out := make([]AllocationDTO, 0, len(allocations))
	for i, a := range allocations {
		out = append(out, AllocationDTO{
			LineID:     l.ID().Bytes(),
			LotID:      a.LotID(),
			Position:   i,
			Quantity:   a.Quantity(),
			Location:   a.Location(),
			ExpiryDate: a.Expiry().Time(),
		})
	}
	return out
}

// toDomain expects Lines and their Allocations sorted by Position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	lines := make([]*order.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		id, err := kernel.UUIDFromBytes(lineDTO.ID[:])
		if err != nil {
			return nil, err
		}

		allocations := make([]order.Allocation, 0, len(lineDTO.Allocations))
		for _, a := range lineDTO.Allocations {
			allocation, allocErr := order.NewAllocation(a.LotID, a.Quantity, a.Location, kernel.DateOf(a.ExpiryDate))
			if allocErr != nil {
				return nil, allocErr
			}
			allocations = append(allocations, allocation)
		}

		line, err := order.RestoreLine(id, lineDTO.SKU, lineDTO.ProductName, lineDTO.OrderedQuantity, lineDTO.Unit, allocations)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	var trackingNumber string
	if dto.TrackingNumber != nil {
		trackingNumber = *dto.TrackingNumber
	}

	return order.RestoreOrder(
		dto.ID,
		order.Channel(dto.Channel),
		dto.Customer,
		order.Priority(dto.Priority),
		kernel.DateOf(dto.OrderDate),
		kernel.DateOf(dto.RequestedDate),
		order.Status(dto.Status),
		trackingNumber,
		dto.Version,
		lines,
	)
}
