// Package containerrepo persists containers with GORM.
package containerrepo

import (
	"time"

	"morna/internal/core/domain/model/container"
	"morna/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ContainerDTO is the containers row. Tracking columns are filled when the
// container is sent.
type ContainerDTO struct {
	ContainerID     uuid.UUID  `gorm:"column:container_id;type:uuid;primaryKey"`
	State           int        `gorm:"type:smallint;not null;index"`
	TrackingNumber  *string    `gorm:"type:text"`
	TrackingCompany *string    `gorm:"type:text"`
	ArriveDate      *time.Time `gorm:"type:timestamptz"`
	CreationDate    time.Time  `gorm:"not null"`
	Version         int        `gorm:"not null;default:1"`
}

func (ContainerDTO) TableName() string {
	return "containers"
}

func fromDomain(c *container.Container) ContainerDTO {
	dto := ContainerDTO{
		ContainerID:  c.ID().UUID(),
		State:        int(c.Status()),
		CreationDate: c.CreationDate(),
		Version:      c.Version(),
	}

	if tr := c.Tracking(); tr != nil {
		number, company, arrive := tr.Number(), tr.Company(), tr.ArriveDate()
		dto.TrackingNumber = &number
		dto.TrackingCompany = &company
		dto.ArriveDate = &arrive
	}

	return dto
}

func toDomain(dto ContainerDTO) (*container.Container, error) {
	id, err := kernel.IDFromUUID(dto.ContainerID)
	if err != nil {
		return nil, err
	}

	var tracking *container.Tracking
	if dto.TrackingNumber != nil && dto.TrackingCompany != nil && dto.ArriveDate != nil {
		tr, trErr := container.NewTracking(*dto.TrackingNumber, *dto.TrackingCompany, *dto.ArriveDate)
		if trErr != nil {
			return nil, trErr
		}
		tracking = &tr
	}

	return container.RestoreContainer(id, container.Status(dto.State), tracking, dto.CreationDate, dto.Version)
}
