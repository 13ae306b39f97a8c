package queries

import (
	"context"
	"fmt"

	"morna/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CountChildrenQueryHandler computes the aggregate counters shown as badges.
// Counts are derived on every call and never stored.
type CountChildrenQueryHandler struct {
	db *gorm.DB
}

func NewCountChildrenQueryHandler(db *gorm.DB) CountChildrenQueryHandler {
	return CountChildrenQueryHandler{db: db}
}

// OrdersPerBox returns a count for every requested box, zero when nothing
// references it.
func (h CountChildrenQueryHandler) OrdersPerBox(ctx context.Context, query CountChildrenQuery) (map[kernel.ID]int, error) {
	return h.count(ctx, query, "orders", "box_id")
}

// BoxesPerContainer returns a count for every requested container.
func (h CountChildrenQueryHandler) BoxesPerContainer(ctx context.Context, query CountChildrenQuery) (map[kernel.ID]int, error) {
	return h.count(ctx, query, "boxes", "container_id")
}

func (h CountChildrenQueryHandler) count(
	ctx context.Context,
	query CountChildrenQuery,
	table, parentColumn string,
) (map[kernel.ID]int, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	parents := query.ParentIDs()
	counts := make(map[kernel.ID]int, len(parents))
	if len(parents) == 0 {
		return counts, nil
	}

	raw := make([]uuid.UUID, 0, len(parents))
	for _, id := range parents {
		counts[id] = 0
		raw = append(raw, id.UUID())
	}

	var rows []struct {
		ParentID uuid.UUID
		Total    int
	}
	err := h.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT %[2]s AS parent_id, COUNT(*) AS total
		FROM %[1]s
		WHERE %[2]s IN ?
		GROUP BY %[2]s`, table, parentColumn), raw).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		id, err := kernel.IDFromUUID(row.ParentID)
		if err != nil {
			return nil, err
		}
		counts[id] = row.Total
	}

	return counts, nil
}
