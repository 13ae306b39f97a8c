package orderrepo

import (
	"context"

	"morna/internal/adapters/out/postgres/pgerr"
	"morna/internal/core/domain/model/kernel"
	"morna/internal/core/domain/model/order"
	"morna/internal/core/ports"
	"morna/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entity = "order"

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker records the rows written inside a unit of work.
type aggregateTracker interface {
	TrackAggregate(change ports.EventType, id kernel.ID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, entity, aggregate.ID().String())
	}

	r.tracker.TrackAggregate(ports.EventInsert, aggregate.ID(), aggregate)
	return nil
}

// Update writes the order only if nobody else changed it since it was read.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	values := dto.columns()
	values["version"] = gorm.Expr("version + 1")

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(values)
	if result.Error != nil {
		return pgerr.Translate(result.Error, entity, aggregate.ID().String())
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError(entity, aggregate.ID().String())
	}

	r.tracker.TrackAggregate(ports.EventUpdate, aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by id and locks its row for the rest of the transaction.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.UUID()).Error
	if err != nil {
		return nil, pgerr.Translate(err, entity, id.String())
	}

	return toDomain(dto)
}

// Peek retrieves an order by id without locking it.
func (r *GormOrderRepository) Peek(ctx context.Context, id kernel.ID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.UUID()).Error; err != nil {
		return nil, pgerr.Translate(err, entity, id.String())
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) ListByBox(ctx context.Context, boxID kernel.ID) ([]*order.Order, error) {
	if err := boxID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("box_id = ?", boxID.UUID()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Translate(err, "box", boxID.String())
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) CountByBox(ctx context.Context, boxID kernel.ID) (int, error) {
	if err := boxID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("box_id = ?", boxID.UUID()).
		Count(&count).Error
	if err != nil {
		return 0, pgerr.Translate(err, "box", boxID.String())
	}

	return int(count), nil
}
