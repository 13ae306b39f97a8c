package containerrepo

import (
	"context"

	"morna/internal/adapters/out/postgres/pgerr"
	"morna/internal/core/domain/model/container"
	"morna/internal/core/domain/model/kernel"
	"morna/internal/core/ports"
	"morna/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entity = "container"

// GormContainerRepository implements ports.ContainerRepository using GORM.
type GormContainerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(change ports.EventType, id kernel.ID, aggregate any)
}

func NewGormContainerRepository(db *gorm.DB, tracker aggregateTracker) *GormContainerRepository {
	return &GormContainerRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormContainerRepository) Add(ctx context.Context, aggregate *container.Container) error {
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

func (r *GormContainerRepository) Update(ctx context.Context, aggregate *container.Container) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ContainerDTO{}).
		Where("container_id = ? AND version = ?", dto.ContainerID, dto.Version).
		Updates(map[string]any{
			"state":            dto.State,
			"tracking_number":  dto.TrackingNumber,
			"tracking_company": dto.TrackingCompany,
			"arrive_date":      dto.ArriveDate,
			"version":          gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return pgerr.Translate(result.Error, entity, aggregate.ID().String())
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError(entity, aggregate.ID().String())
	}

	r.tracker.TrackAggregate(ports.EventUpdate, aggregate.ID(), aggregate)
	return nil
}

func (r *GormContainerRepository) Delete(ctx context.Context, aggregate *container.Container) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("container_id = ? AND version = ?", aggregate.ID().UUID(), aggregate.Version()).
		Delete(&ContainerDTO{})
	if result.Error != nil {
		return pgerr.Translate(result.Error, entity, aggregate.ID().String())
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError(entity, aggregate.ID().String())
	}

	r.tracker.TrackAggregate(ports.EventDelete, aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a container and locks its row for the rest of the transaction.
func (r *GormContainerRepository) Get(ctx context.Context, id kernel.ID) (*container.Container, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ContainerDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "container_id = ?", id.UUID()).Error
	if err != nil {
		return nil, pgerr.Translate(err, entity, id.String())
	}

	return toDomain(dto)
}
