package postgres

import (
	"github.com/3suji3/Inventory-management-test/internal/adapters/out/postgres/lotrepo"
	"github.com/3suji3/Inventory-management-test/internal/adapters/out/postgres/orderrepo"
	"github.com/3suji3/Inventory-management-test/internal/adapters/out/postgres/trackingrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the fulfillment schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineDTO{},
		&orderrepo.AllocationDTO{},
		&lotrepo.LotDTO{},
	); err != nil {
		return err
	}

	return trackingrepo.CreateSequence(db)
}
