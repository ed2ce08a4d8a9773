// Package lotrepo implements the stock ledger on the lots table.
package lotrepo

import (
	"time"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/kernel"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/lot"
)

// LotDTO is the lots row. The check constraint keeps quantities from going
// negative even if a conditional update is bypassed.
type LotDTO struct {
	ID                string    `gorm:"type:varchar(64);primaryKey"`
	SKU               string    `gorm:"type:varchar(64);not null;index:idx_lots_sku_expiry,priority:1"`
	QuantityAvailable int       `gorm:"not null;check:chk_lots_quantity_available,quantity_available >= 0"`
	ExpiryDate        time.Time `gorm:"type:date;not null;index:idx_lots_sku_expiry,priority:2"`
	Location          string    `gorm:"type:varchar(64);not null"`
}

// TableName returns the lots table name.
func (LotDTO) TableName() string {
	return "lots"
}

func fromDomain(l *lot.Lot) LotDTO {
	return LotDTO{
		ID:                l.ID(),
		SKU:               l.SKU(),
		QuantityAvailable: l.QuantityAvailable(),
		ExpiryDate:        l.Expiry().Time(),
		Location:          l.Location(),
	}
}

func toDomain(dto LotDTO) (*lot.Lot, error) {
	return lot.RestoreLot(dto.ID, dto.SKU, dto.QuantityAvailable, kernel.DateOf(dto.ExpiryDate), dto.Location)
}

func toDomainList(dtos []LotDTO) ([]*lot.Lot, error) {
	lots := make([]*lot.Lot, 0, len(dtos))
	for _, dto := range dtos {
		l, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		lots = append(lots, l)
	}
	return lots, nil
}
