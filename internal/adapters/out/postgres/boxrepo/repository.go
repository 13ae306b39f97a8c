package boxrepo

import (
	"context"

	"morna/internal/adapters/out/postgres/pgerr"
	"morna/internal/core/domain/model/box"
	"morna/internal/core/domain/model/kernel"
	"morna/internal/core/ports"
	"morna/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entity = "box"

// GormBoxRepository implements ports.BoxRepository using GORM. Reads lock the
// returned rows.
type GormBoxRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(change ports.EventType, id kernel.ID, aggregate any)
}

func NewGormBoxRepository(db *gorm.DB, tracker aggregateTracker) *GormBoxRepository {
	return &GormBoxRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormBoxRepository) Add(ctx context.Context, aggregate *box.Box) error {
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

// Update writes state and container reference. A stale version yields a
// conflict.
func (r *GormBoxRepository) Update(ctx context.Context, aggregate *box.Box) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&BoxDTO{}).
		Where("box_id = ? AND version = ?", dto.BoxID, dto.Version).
		Updates(map[string]any{
			"state":        dto.State,
			"container_id": dto.ContainerID,
			"version":      gorm.Expr("version + 1"),
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

// Delete removes the row. Orders still referencing it make the store refuse.
func (r *GormBoxRepository) Delete(ctx context.Context, aggregate *box.Box) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("box_id = ? AND version = ?", aggregate.ID().UUID(), aggregate.Version()).
		Delete(&BoxDTO{})
	if result.Error != nil {
		return pgerr.Translate(result.Error, entity, aggregate.ID().String())
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError(entity, aggregate.ID().String())
	}

	r.tracker.TrackAggregate(ports.EventDelete, aggregate.ID(), aggregate)
	return nil
}

func (r *GormBoxRepository) Get(ctx context.Context, id kernel.ID) (*box.Box, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BoxDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "box_id = ?", id.UUID()).Error
	if err != nil {
		return nil, pgerr.Translate(err, entity, id.String())
	}

	return toDomain(dto)
}

func (r *GormBoxRepository) Peek(ctx context.Context, id kernel.ID) (*box.Box, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BoxDTO
	if err := r.db.WithContext(ctx).First(&dto, "box_id = ?", id.UUID()).Error; err != nil {
		return nil, pgerr.Translate(err, entity, id.String())
	}

	return toDomain(dto)
}

func (r *GormBoxRepository) ListByContainer(ctx context.Context, containerID kernel.ID) ([]*box.Box, error) {
	if err := containerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []BoxDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("container_id = ?", containerID.UUID()).
		Order("creation_date, box_id").
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Translate(err, "container", containerID.String())
	}

	boxes := make([]*box.Box, 0, len(dtos))
	for _, dto := range dtos {
		b, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		boxes = append(boxes, b)
	}

	return boxes, nil
}

func (r *GormBoxRepository) CountByContainer(ctx context.Context, containerID kernel.ID) (int, error) {
	if err := containerID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&BoxDTO{}).
		Where("container_id = ?", containerID.UUID()).
		Count(&count).Error
	if err != nil {
		return 0, pgerr.Translate(err, "container", containerID.String())
	}

	return int(count), nil
}
