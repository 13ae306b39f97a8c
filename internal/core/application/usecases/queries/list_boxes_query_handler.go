package queries

import (
	"context"
	"strings"
	"time"

	"morna/internal/core/domain/model/box"
	"morna/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type boxRow struct {
	BoxID        uuid.UUID
	State        int
	ContainerID  *uuid.UUID
	CreationDate time.Time
}

type ListBoxesQueryHandler struct {
	db *gorm.DB
}

func NewListBoxesQueryHandler(db *gorm.DB) ListBoxesQueryHandler {
	return ListBoxesQueryHandler{db: db}
}

// Handle returns matching boxes, newest first.
func (h ListBoxesQueryHandler) Handle(ctx context.Context, query ListBoxesQuery) ([]BoxView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).
		Table("boxes").
		Select("box_id, state, container_id, creation_date")
	if filter := strings.TrimSpace(query.Filter()); filter != "" {
		tx = tx.Where("box_id::text ILIKE ?", likePattern(filter))
	}

	var rows []boxRow
	if err := tx.Order("creation_date DESC, box_id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	return toBoxViews(rows)
}

// HandleByContainer returns the boxes loaded into one container, oldest first.
func (h ListBoxesQueryHandler) HandleByContainer(ctx context.Context, query ListBoxesByContainerQuery) ([]BoxView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []boxRow
	err := h.db.WithContext(ctx).
		Table("boxes").
		Select("box_id, state, container_id, creation_date").
		Where("container_id = ?", query.ContainerID().UUID()).
		Order("creation_date, box_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return toBoxViews(rows)
}

func toBoxViews(rows []boxRow) ([]BoxView, error) {
	views := make([]BoxView, 0, len(rows))
	for _, row := range rows {
		id, err := kernel.IDFromUUID(row.BoxID)
		if err != nil {
			return nil, err
		}
		containerID, err := kernel.OptionalID(row.ContainerID)
		if err != nil {
			return nil, err
		}

		views = append(views, BoxView{
			ID:           id,
			State:        row.State,
			StateName:    box.Status(row.State).String(),
			ContainerID:  containerID,
			CreationDate: row.CreationDate.UTC(),
		})
	}
	return views, nil
}
