package lotrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/lot"
	"github.com/3suji3/Inventory-management-test/internal/core/ports"
	"github.com/3suji3/Inventory-management-test/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockLedger implements ports.StockLedger using GORM.
//
// Inside a transaction LotsFor takes row locks on the SKU's lots, so two
// allocations of the same SKU serialize in the database as well. Deduct is
// a conditional decrement and cannot take a lot below zero.
type GormStockLedger struct {
	db *gorm.DB
}

// NewGormStockLedger works on db, usually an open transaction.
func NewGormStockLedger(db *gorm.DB) *GormStockLedger {
	return &GormStockLedger{db: db}
}

// LotsFor locks and returns every lot of the SKU, in FEFO order.
func (l *GormStockLedger) LotsFor(ctx context.Context, sku string) ([]*lot.Lot, error) {
	var dtos []LotDTO
	err := l.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("sku = ?", sku).
		Order("expiry_date, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// Deduct decrements a lot only if it still has quantity units, so a stale
// plan fails with *lot.InsufficientLotQuantityError instead of overselling.
func (l *GormStockLedger) Deduct(ctx context.Context, lotID string, quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	result := l.db.WithContext(ctx).
		Model(&LotDTO{}).
		Where("id = ? AND quantity_available >= ?", lotID, quantity).
		UpdateColumn("quantity_available", gorm.Expr("quantity_available - ?", quantity))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		current, err := l.Get(ctx, lotID)
		if err != nil {
			return err
		}
		return lot.NewInsufficientLotQuantityError(lotID, quantity, current.QuantityAvailable())
	}

	return nil
}

// Add inserts a received lot.
func (l *GormStockLedger) Add(ctx context.Context, received *lot.Lot) error {
	if err := received.Validate(); err != nil {
		return err
	}

	dto := fromDomain(received)
	if err := l.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: lot %s", ports.ErrAlreadyExists, received.ID())
		}
		return err
	}

	return nil
}

// Get reads one lot.
func (l *GormStockLedger) Get(ctx context.Context, lotID string) (*lot.Lot, error) {
	var dto LotDTO
	if err := l.db.WithContext(ctx).First(&dto, "id = ?", lotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("lotId", lotID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListAvailable reads every lot with stock left.
func (l *GormStockLedger) ListAvailable(ctx context.Context) ([]*lot.Lot, error) {
	var dtos []LotDTO
	err := l.db.WithContext(ctx).
		Where("quantity_available > 0").
		Order("expiry_date, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}
