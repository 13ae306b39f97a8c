package realtime

import (
	"context"

	"morna/internal/core/application/usecases/queries"
	"morna/internal/core/domain/model/kernel"
)

// Fetcher reads the data behind each slot.
type Fetcher interface {
	Orders(ctx context.Context, role queries.Role, staffID *kernel.ID) ([]queries.OrderView, error)
	OrdersByBox(ctx context.Context, boxID kernel.ID) ([]queries.OrderView, error)
	Boxes(ctx context.Context, filter string) ([]queries.BoxView, error)
	BoxesByContainer(ctx context.Context, containerID kernel.ID) ([]queries.BoxView, error)
	Containers(ctx context.Context, filter string) ([]queries.ContainerView, error)
	OrdersPerBox(ctx context.Context, boxIDs []kernel.ID) (map[kernel.ID]int, error)
	BoxesPerContainer(ctx context.Context, containerIDs []kernel.ID) (map[kernel.ID]int, error)
}

// QueryFetcher implements Fetcher with the query handlers.
type QueryFetcher struct {
	orders     queries.ListOrdersQueryHandler
	boxes      queries.ListBoxesQueryHandler
	containers queries.ListContainersQueryHandler
	counts     queries.CountChildrenQueryHandler
}

func NewQueryFetcher(
	orders queries.ListOrdersQueryHandler,
	boxes queries.ListBoxesQueryHandler,
	containers queries.ListContainersQueryHandler,
	counts queries.CountChildrenQueryHandler,
) *QueryFetcher {
	return &QueryFetcher{
		orders:     orders,
		boxes:      boxes,
		containers: containers,
		counts:     counts,
	}
}

func (f *QueryFetcher) Orders(ctx context.Context, role queries.Role, staffID *kernel.ID) ([]queries.OrderView, error) {
	query, err := queries.NewListOrdersQuery(role, staffID)
	if err != nil {
		return nil, err
	}
	return f.orders.Handle(ctx, query)
}

func (f *QueryFetcher) OrdersByBox(ctx context.Context, boxID kernel.ID) ([]queries.OrderView, error) {
	query, err := queries.NewListOrdersByBoxQuery(boxID)
	if err != nil {
		return nil, err
	}
	return f.orders.HandleByBox(ctx, query)
}

func (f *QueryFetcher) Boxes(ctx context.Context, filter string) ([]queries.BoxView, error) {
	return f.boxes.Handle(ctx, queries.NewListBoxesQuery(filter))
}

func (f *QueryFetcher) BoxesByContainer(ctx context.Context, containerID kernel.ID) ([]queries.BoxView, error) {
	query, err := queries.NewListBoxesByContainerQuery(containerID)
	if err != nil {
		return nil, err
	}
	return f.boxes.HandleByContainer(ctx, query)
}

func (f *QueryFetcher) Containers(ctx context.Context, filter string) ([]queries.ContainerView, error) {
	return f.containers.Handle(ctx, queries.NewListContainersQuery(filter))
}

func (f *QueryFetcher) OrdersPerBox(ctx context.Context, boxIDs []kernel.ID) (map[kernel.ID]int, error) {
	query, err := queries.NewCountChildrenQuery(boxIDs)
	if err != nil {
		return nil, err
	}
	return f.counts.OrdersPerBox(ctx, query)
}

func (f *QueryFetcher) BoxesPerContainer(ctx context.Context, containerIDs []kernel.ID) (map[kernel.ID]int, error) {
	query, err := queries.NewCountChildrenQuery(containerIDs)
	if err != nil {
		return nil, err
	}
	return f.counts.BoxesPerContainer(ctx, query)
}
