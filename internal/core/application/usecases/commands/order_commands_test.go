package commands_test

import (
	"testing"

	"morna/internal/core/application/usecases/commands"
	"morna/internal/core/domain/model/kernel"
	"morna/internal/core/domain/model/order"
	"morna/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOrderUoW(repo *MockOrderRepository) (*MockOrderUoW, *MockOrderUoWFactory) {
	uow := new(MockOrderUoW)
	uow.On("OrderRepository").Return(repo).Maybe()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	return uow, factory
}

func TestQuoteOrderCommandHandler_Handle(t *testing.T) {
	t.Run("should store the quote", func(t *testing.T) {
		ctx := t.Context()
		o := restoreOrder(t, order.ReceivedByStaff, nil)
		cmd, err := commands.NewQuoteOrderCommand(o.ID(), kernel.MustParseMoney("3.10"))
		require.NoError(t, err)

		repo := new(MockOrderRepository)
		uow, factory := newOrderUoW(repo)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
			repo.On("Update", ctx, o).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		err = commands.NewQuoteOrderCommandHandler(factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Quoted, o.Status())
		assert.Equal(t, "12.40", o.TotalQuote().String())
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("should reject a paid order without writing", func(t *testing.T) {
		ctx := t.Context()
		o := restoreOrder(t, order.Paid, nil)
		cmd, err := commands.NewQuoteOrderCommand(o.ID(), kernel.MustParseMoney("3.10"))
		require.NoError(t, err)

		repo := new(MockOrderRepository)
		uow, factory := newOrderUoW(repo)
		uow.On("Begin", ctx).Return(nil).Once()
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		err = commands.NewQuoteOrderCommandHandler(factory).Handle(ctx, cmd)

		assert.Equal(t, errs.ReasonInvalidTransition, errs.ReasonOf(err))
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		uow.AssertExpectations(t)
	})
}

func TestAdvanceOrderCommandHandler_Handle(t *testing.T) {
	t.Run("should advance one step", func(t *testing.T) {
		ctx := t.Context()
		o := restoreOrder(t, order.InCustoms, nil)
		cmd, err := commands.NewAdvanceOrderCommand(o.ID(), order.ReceivedAtWarehouse)
		require.NoError(t, err)

		repo := new(MockOrderRepository)
		uow, factory := newOrderUoW(repo)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
			repo.On("Update", ctx, o).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		err = commands.NewAdvanceOrderCommandHandler(factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.ReceivedAtWarehouse, o.Status())
		uow.AssertExpectations(t)
	})

	t.Run("should reject a jump", func(t *testing.T) {
		ctx := t.Context()
		o := restoreOrder(t, order.ArrivedInDestination, nil)
		cmd, err := commands.NewAdvanceOrderCommand(o.ID(), order.Delivered)
		require.NoError(t, err)

		repo := new(MockOrderRepository)
		uow, factory := newOrderUoW(repo)
		uow.On("Begin", ctx).Return(nil).Once()
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		err = commands.NewAdvanceOrderCommandHandler(factory).Handle(ctx, cmd)

		assert.Equal(t, errs.ReasonInvalidJump, errs.ReasonOf(err))
		assert.Equal(t, order.ArrivedInDestination, o.Status())
	})

	t.Run("should report a missing order", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewID()
		cmd, err := commands.NewAdvanceOrderCommand(id, order.ReceivedByStaff)
		require.NoError(t, err)

		repo := new(MockOrderRepository)
		uow, factory := newOrderUoW(repo)
		uow.On("Begin", ctx).Return(nil).Once()
		repo.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		err = commands.NewAdvanceOrderCommandHandler(factory).Handle(ctx, cmd)

		assert.Equal(t, errs.ReasonNotFound, errs.ReasonOf(err))
	})
}

func TestAdvanceOrderCommandHandler_HandleSendToChina(t *testing.T) {
	ctx := t.Context()
	o := restoreOrder(t, order.Created, nil)
	staff := kernel.NewID()
	cmd, err := commands.NewSendOrderToChinaCommand(o.ID(), &staff)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow, factory := newOrderUoW(repo)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		repo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	err = commands.NewAdvanceOrderCommandHandler(factory).HandleSendToChina(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.ReceivedByStaff, o.Status())
	assert.Equal(t, staff, *o.ChinaStaffID())
}

func TestNewAdvanceOrderCommand_InvalidStatus(t *testing.T) {
	_, err := commands.NewAdvanceOrderCommand(kernel.NewID(), order.Status(14))

	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
