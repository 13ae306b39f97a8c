package queries

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"morna/internal/core/domain/model/kernel"
	"morna/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const selectOrders = `
	SELECT
		o.id,
		o.client_id,
		COALESCE(c.name, ''),
		o.product_name,
		o.quantity,
		o.total_quote,
		o.state,
		o.box_id,
		o.china_staff_id,
		o.venezuela_staff_id,
		o.created_at
	FROM orders o
	LEFT JOIN clients c ON c.id = o.client_id`

// ListOrdersQueryHandler serves both order list queries.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle returns the role-scoped orders, newest first.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	if staff := query.StaffID(); staff != nil {
		switch query.Role() {
		case RoleChina:
			where = append(where, "o.china_staff_id = ?")
			args = append(args, staff.UUID())
		case RoleVenezuela:
			where = append(where, "o.venezuela_staff_id = ?")
			args = append(args, staff.UUID())
		case RoleAdmin:
			where = append(where, "(o.china_staff_id = ? OR o.venezuela_staff_id = ?)")
			args = append(args, staff.UUID(), staff.UUID())
		}
	}

	sqlText := selectOrders
	if len(where) > 0 {
		sqlText += "\n\tWHERE " + strings.Join(where, " AND ")
	}
	sqlText += "\n\tORDER BY o.created_at DESC, o.id"

	return h.fetch(ctx, sqlText, args...)
}

// HandleByBox returns the orders packed in one box, oldest first.
func (h ListOrdersQueryHandler) HandleByBox(ctx context.Context, query ListOrdersByBoxQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.fetch(ctx, selectOrders+`
	WHERE o.box_id = ?
	ORDER BY o.created_at, o.id`, query.BoxID().UUID())
}

func (h ListOrdersQueryHandler) fetch(ctx context.Context, sqlText string, args ...any) ([]OrderView, error) {
	orders := make([]OrderView, 0)

	rows, err := h.db.WithContext(ctx).Raw(sqlText, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			view                        OrderView
			id                          uuid.UUID
			totalQuote                  decimal.NullDecimal
			boxID, chinaID, venezuelaID *uuid.UUID
			createdAt                   sql.NullTime
		)

		err = rows.Scan(
			&id,
			&view.ClientID,
			&view.ClientName,
			&view.ProductName,
			&view.Quantity,
			&totalQuote,
			&view.State,
			&boxID,
			&chinaID,
			&venezuelaID,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		if view.ID, err = kernel.IDFromUUID(id); err != nil {
			return nil, err
		}
		if view.BoxID, err = kernel.OptionalID(boxID); err != nil {
			return nil, err
		}
		if view.ChinaStaffID, err = kernel.OptionalID(chinaID); err != nil {
			return nil, err
		}
		if view.VenezuelaStaffID, err = kernel.OptionalID(venezuelaID); err != nil {
			return nil, err
		}
		if totalQuote.Valid {
			view.TotalQuote = &totalQuote.Decimal
		}
		view.StateName = order.Status(view.State).String()
		view.CreatedAt = createdAt.Time.In(time.UTC)

		orders = append(orders, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
