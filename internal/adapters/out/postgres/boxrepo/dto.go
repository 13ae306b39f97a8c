// Package boxrepo persists boxes with GORM.
package boxrepo

import (
	"time"

	"morna/internal/core/domain/model/box"
	"morna/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type BoxDTO struct {
	BoxID        uuid.UUID  `gorm:"column:box_id;type:uuid;primaryKey"`
	State        int        `gorm:"type:smallint;not null;index"`
	ContainerID  *uuid.UUID `gorm:"type:uuid;index"`
	CreationDate time.Time  `gorm:"not null"`
	Version      int        `gorm:"not null;default:1"`
}

func (BoxDTO) TableName() string {
	return "boxes"
}

func fromDomain(b *box.Box) BoxDTO {
	var containerID *uuid.UUID
	if ref := b.ContainerID(); ref != nil {
		raw := ref.UUID()
		containerID = &raw
	}

	return BoxDTO{
		BoxID:        b.ID().UUID(),
		State:        int(b.Status()),
		ContainerID:  containerID,
		CreationDate: b.CreationDate(),
		Version:      b.Version(),
	}
}

func toDomain(dto BoxDTO) (*box.Box, error) {
	id, err := kernel.IDFromUUID(dto.BoxID)
	if err != nil {
		return nil, err
	}

	containerID, err := kernel.OptionalID(dto.ContainerID)
	if err != nil {
		return nil, err
	}

	return box.RestoreBox(id, box.Status(dto.State), containerID, dto.CreationDate, dto.Version)
}
