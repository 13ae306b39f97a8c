package commands_test

import (
	"context"

	"morna/internal/core/application/usecases/commands"
	"morna/internal/core/domain/model/box"
	"morna/internal/core/domain/model/container"
	"morna/internal/core/domain/model/kernel"
	"morna/internal/core/domain/model/order"
	"morna/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Peek(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByBox(ctx context.Context, boxID kernel.ID) ([]*order.Order, error) {
	args := m.Called(ctx, boxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountByBox(ctx context.Context, boxID kernel.ID) (int, error) {
	args := m.Called(ctx, boxID)
	return args.Int(0), args.Error(1)
}

type MockBoxRepository struct{ mock.Mock }

func (m *MockBoxRepository) Add(ctx context.Context, b *box.Box) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBoxRepository) Update(ctx context.Context, b *box.Box) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBoxRepository) Delete(ctx context.Context, b *box.Box) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBoxRepository) Get(ctx context.Context, id kernel.ID) (*box.Box, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*box.Box), args.Error(1)
}

func (m *MockBoxRepository) Peek(ctx context.Context, id kernel.ID) (*box.Box, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*box.Box), args.Error(1)
}

func (m *MockBoxRepository) ListByContainer(ctx context.Context, containerID kernel.ID) ([]*box.Box, error) {
	args := m.Called(ctx, containerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*box.Box), args.Error(1)
}

func (m *MockBoxRepository) CountByContainer(ctx context.Context, containerID kernel.ID) (int, error) {
	args := m.Called(ctx, containerID)
	return args.Int(0), args.Error(1)
}

type MockContainerRepository struct{ mock.Mock }

func (m *MockContainerRepository) Add(ctx context.Context, c *container.Container) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContainerRepository) Update(ctx context.Context, c *container.Container) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContainerRepository) Delete(ctx context.Context, c *container.Container) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContainerRepository) Get(ctx context.Context, id kernel.ID) (*container.Container, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*container.Container), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) BoxRepository() ports.BoxRepository {
	args := m.Called()
	return args.Get(0).(ports.BoxRepository)
}

func (m *MockUoW) ContainerRepository() ports.ContainerRepository {
	args := m.Called()
	return args.Get(0).(ports.ContainerRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

// fixture wires a unit of work whose repository accessors may be called any
// number of times. Tests set expectations on the repositories only.
type fixture struct {
	orders     *MockOrderRepository
	boxes      *MockBoxRepository
	containers *MockContainerRepository
	uow        *MockUoW
	factory    *MockUoWFactory
}

func newFixture() *fixture {
	f := &fixture{
		orders:     new(MockOrderRepository),
		boxes:      new(MockBoxRepository),
		containers: new(MockContainerRepository),
		uow:        new(MockUoW),
		factory:    new(MockUoWFactory),
	}

	f.uow.On("OrderRepository").Return(f.orders).Maybe()
	f.uow.On("BoxRepository").Return(f.boxes).Maybe()
	f.uow.On("ContainerRepository").Return(f.containers).Maybe()
	f.factory.On("Create").Return(f.uow).Once()

	return f
}

// expectCommitted registers the transaction calls of a successful handler run.
func (f *fixture) expectCommitted(ctx context.Context) {
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
}

// expectRolledBack registers the transaction calls of a rejected handler run.
func (f *fixture) expectRolledBack(ctx context.Context) {
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
}

func (f *fixture) assertExpectations(t mock.TestingT) {
	f.orders.AssertExpectations(t)
	f.boxes.AssertExpectations(t)
	f.containers.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.factory.AssertExpectations(t)
}
