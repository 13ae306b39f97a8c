package queries

import (
	"context"
	"strings"
	"time"

	"morna/internal/core/domain/model/container"
	"morna/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListContainersQueryHandler struct {
	db *gorm.DB
}

func NewListContainersQueryHandler(db *gorm.DB) ListContainersQueryHandler {
	return ListContainersQueryHandler{db: db}
}

func (h ListContainersQueryHandler) Handle(ctx context.Context, query ListContainersQuery) ([]ContainerView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []struct {
		ContainerID     uuid.UUID
		State           int
		TrackingNumber  *string
		TrackingCompany *string
		ArriveDate      *time.Time
		CreationDate    time.Time
	}

	tx := h.db.WithContext(ctx).
		Table("containers").
		Select("container_id, state, tracking_number, tracking_company, arrive_date, creation_date")
	if filter := strings.TrimSpace(query.Filter()); filter != "" {
		tx = tx.Where("container_id::text ILIKE ?", likePattern(filter))
	}
	if err := tx.Order("creation_date DESC, container_id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]ContainerView, 0, len(rows))
	for _, row := range rows {
		id, err := kernel.IDFromUUID(row.ContainerID)
		if err != nil {
			return nil, err
		}

		views = append(views, ContainerView{
			ID:              id,
			State:           row.State,
			StateName:       container.Status(row.State).String(),
			TrackingNumber:  row.TrackingNumber,
			TrackingCompany: row.TrackingCompany,
			ArriveDate:      row.ArriveDate,
			CreationDate:    row.CreationDate.UTC(),
		})
	}

	return views, nil
}
