package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/order"
	"github.com/3suji3/Inventory-management-test/internal/core/ports"
	"github.com/3suji3/Inventory-management-test/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker collects the aggregates written through a unit of work.
type aggregateTracker interface {
	TrackAggregate(ctx context.Context, id string, aggregate any)
}

// NewGormOrderRepository works on db and reports written aggregates to
// tracker so their events are published after commit.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order with its lines and allocations.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: order %s", ports.ErrAlreadyExists, aggregate.ID())
		}
		return err
	}

	r.tracker.TrackAggregate(ctx, aggregate.ID(), aggregate)
	return nil
}

// Update writes the order header when the stored version still matches and
// bumps it. Lines never change after registration and allocations are only
// ever appended, so only new allocation rows are inserted.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":          dto.Status,
			"tracking_number": dto.TrackingNumber,
			"version":         gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("trackingNumber", result.Error)
		}
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.missOrConflict(ctx, dto)
	}

	var allocations []AllocationDTO
	for _, line := range dto.Lines {
		allocations = append(allocations, line.Allocations...)
	}
	if len(allocations) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&allocations).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(ctx, aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) missOrConflict(ctx context.Context, dto OrderDTO) error {
	var stored OrderDTO
	err := r.db.WithContext(ctx).Select("id", "version").Take(&stored, "id = ?", dto.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("orderId", dto.ID)
	}
	if err != nil {
		return err
	}

	return errs.NewVersionIsInvalidErrorWithCause(
		"order "+dto.ID,
		fmt.Errorf("stored version %d, written from version %d", stored.Version, dto.Version),
	)
}

// Get loads an order with its lines and allocations.
func (r *GormOrderRepository) Get(ctx context.Context, id string) (*order.Order, error) {
	var dto OrderDTO
	if err := r.withLines(r.db.WithContext(ctx)).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// List loads the matching orders, oldest order date first.
func (r *GormOrderRepository) List(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	query := r.withLines(r.db.WithContext(ctx)).Order("order_date, id")
	if len(filter.Statuses) > 0 {
		statuses := make([]int, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, int(s))
		}
		query = query.Where("status IN ?", statuses)
	}

	var dtos []OrderDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// CountByStatus groups orders by status.
func (r *GormOrderRepository) CountByStatus(ctx context.Context) (map[order.Status]int, error) {
	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*)
		FROM orders
		GROUP BY status
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[order.Status]int)
	for rows.Next() {
		var status, count int
		if err = rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[order.Status(status)] = count
	}

	return counts, rows.Err()
}

func (r *GormOrderRepository) withLines(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Lines.Allocations", func(db *gorm.DB) *gorm.DB { return db.Order("position") })
}
