package http_test

import (
	"context"
	"time"

	"morna/internal/core/application/usecases/commands"
	"morna/internal/core/application/usecases/queries"
	"morna/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/mock"
)

type MockCreateOrderHandler struct{ mock.Mock }

func (m *MockCreateOrderHandler) Handle(ctx context.Context, cmd commands.CreateOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockQuoteOrderHandler struct{ mock.Mock }

func (m *MockQuoteOrderHandler) Handle(ctx context.Context, cmd commands.QuoteOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockAdvanceOrderHandler struct{ mock.Mock }

func (m *MockAdvanceOrderHandler) Handle(ctx context.Context, cmd commands.AdvanceOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

func (m *MockAdvanceOrderHandler) HandleSendToChina(ctx context.Context, cmd commands.SendOrderToChinaCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockBoxLifecycleHandler struct{ mock.Mock }

func (m *MockBoxLifecycleHandler) HandleCreate(ctx context.Context, cmd commands.BoxCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

func (m *MockBoxLifecycleHandler) HandleDelete(ctx context.Context, cmd commands.BoxCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

func (m *MockBoxLifecycleHandler) HandleReceive(ctx context.Context, cmd commands.BoxCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockSendContainerHandler struct{ mock.Mock }

func (m *MockSendContainerHandler) Handle(ctx context.Context, cmd commands.SendContainerCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockObserver struct{ mock.Mock }

func (m *MockObserver) Observe(ctx context.Context, operation string, err error, duration time.Duration) {
	m.Called(operation, err)
}

type MockReader struct{ mock.Mock }

func (m *MockReader) Orders(ctx context.Context, role queries.Role, staffID *kernel.ID) ([]queries.OrderView, error) {
	args := m.Called(ctx, role, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.OrderView), args.Error(1)
}

func (m *MockReader) OrdersByBox(ctx context.Context, boxID kernel.ID) ([]queries.OrderView, error) {
	args := m.Called(ctx, boxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.OrderView), args.Error(1)
}

func (m *MockReader) Boxes(ctx context.Context, filter string) ([]queries.BoxView, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.BoxView), args.Error(1)
}

func (m *MockReader) BoxesByContainer(ctx context.Context, containerID kernel.ID) ([]queries.BoxView, error) {
	args := m.Called(ctx, containerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.BoxView), args.Error(1)
}

func (m *MockReader) Containers(ctx context.Context, filter string) ([]queries.ContainerView, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.ContainerView), args.Error(1)
}

func (m *MockReader) OrdersPerBox(ctx context.Context, boxIDs []kernel.ID) (map[kernel.ID]int, error) {
	args := m.Called(ctx, boxIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.ID]int), args.Error(1)
}

func (m *MockReader) BoxesPerContainer(ctx context.Context, containerIDs []kernel.ID) (map[kernel.ID]int, error) {
	args := m.Called(ctx, containerIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.ID]int), args.Error(1)
}
