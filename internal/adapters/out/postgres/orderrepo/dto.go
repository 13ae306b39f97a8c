// Package orderrepo persists order aggregates with GORM.
package orderrepo

import (
	"time"

	"morna/internal/core/domain/model/kernel"
	"morna/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Client-side descriptive columns are opaque to
// the state machine.
type OrderDTO struct {
	ID               uuid.UUID           `gorm:"type:uuid;primaryKey"`
	ClientID         string              `gorm:"type:text;not null;index"`
	ProductName      string              `gorm:"type:text;not null"`
	Quantity         int                 `gorm:"not null"`
	TotalQuote       decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	State            int                 `gorm:"type:smallint;not null;index"`
	BoxID            *uuid.UUID          `gorm:"type:uuid;index"`
	ChinaStaffID     *uuid.UUID          `gorm:"type:uuid;index"`
	VenezuelaStaffID *uuid.UUID          `gorm:"type:uuid;index"`
	CreatedAt        time.Time           `gorm:"not null"`
	Version          int                 `gorm:"not null;default:1"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// columns lists the mutable columns written by Update. A map is used so that
// cleared references are written as NULL.
func (dto OrderDTO) columns() map[string]any {
	return map[string]any{
		"client_id":          dto.ClientID,
		"product_name":       dto.ProductName,
		"quantity":           dto.Quantity,
		"total_quote":        dto.TotalQuote,
		"state":              dto.State,
		"box_id":             dto.BoxID,
		"china_staff_id":     dto.ChinaStaffID,
		"venezuela_staff_id": dto.VenezuelaStaffID,
	}
}

func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:               o.ID().UUID(),
		ClientID:         o.ClientID(),
		ProductName:      o.ProductName(),
		Quantity:         o.Quantity(),
		State:            int(o.Status()),
		BoxID:            rawID(o.BoxID()),
		ChinaStaffID:     rawID(o.ChinaStaffID()),
		VenezuelaStaffID: rawID(o.VenezuelaStaffID()),
		CreatedAt:        o.CreatedAt(),
		Version:          o.Version(),
	}

	if quote := o.TotalQuote(); quote != nil {
		dto.TotalQuote = decimal.NewNullDecimal(quote.Amount())
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.IDFromUUID(dto.ID)
	if err != nil {
		return nil, err
	}

	boxID, err := kernel.OptionalID(dto.BoxID)
	if err != nil {
		return nil, err
	}

	chinaStaffID, err := kernel.OptionalID(dto.ChinaStaffID)
	if err != nil {
		return nil, err
	}

	venezuelaStaffID, err := kernel.OptionalID(dto.VenezuelaStaffID)
	if err != nil {
		return nil, err
	}

	var quote *kernel.Money
	if dto.TotalQuote.Valid {
		m, moneyErr := kernel.NewMoney(dto.TotalQuote.Decimal)
		if moneyErr != nil {
			return nil, moneyErr
		}
		quote = &m
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:               id,
		ClientID:         dto.ClientID,
		ProductName:      dto.ProductName,
		Quantity:         dto.Quantity,
		TotalQuote:       quote,
		Status:           order.Status(dto.State),
		BoxID:            boxID,
		ChinaStaffID:     chinaStaffID,
		VenezuelaStaffID: venezuelaStaffID,
		CreatedAt:        dto.CreatedAt,
		Version:          dto.Version,
	})
}

func rawID(id *kernel.ID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.UUID()
	return &raw
}
