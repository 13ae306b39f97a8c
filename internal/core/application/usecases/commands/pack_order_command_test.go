package commands_test

import (
	"errors"
	"testing"

	"morna/internal/core/application/usecases/commands"
	"morna/internal/core/domain/model/box"
	"morna/internal/core/domain/model/container"
	"morna/internal/core/domain/model/order"
	"morna/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPackOrderCommandHandler_HandleAssign(t *testing.T) {
	t.Run("should pack into a loose box", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		x := restoreBox(t, box.New, nil)
		o := restoreOrder(t, order.ReadyToPack, nil)
		cmd, err := commands.NewAssignOrderToBoxCommand(o.ID(), x.ID())
		require.NoError(t, err)

		f.expectCommitted(ctx)
		mock.InOrder(
			f.boxes.On("Peek", ctx, x.ID()).Return(x, nil).Once(),
			f.boxes.On("Get", ctx, x.ID()).Return(x, nil).Once(),
			f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once(),
			f.orders.On("Update", ctx, o).Return(nil).Once(),
		)

		err = commands.NewPackOrderCommandHandler(f.factory).HandleAssign(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.PackedInBox, o.Status())
		assert.Equal(t, box.New, x.Status())
		f.boxes.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})

	t.Run("should lock the container before the box and the order", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		y := restoreContainer(t, container.Loading)
		x := restoreBox(t, box.Loaded, idPtr(y.ID()))
		o := restoreOrder(t, order.ReadyToPack, nil)
		cmd, err := commands.NewAssignOrderToBoxCommand(o.ID(), x.ID())
		require.NoError(t, err)

		f.expectCommitted(ctx)
		mock.InOrder(
			f.boxes.On("Peek", ctx, x.ID()).Return(x, nil).Once(),
			f.containers.On("Get", ctx, y.ID()).Return(y, nil).Once(),
			f.boxes.On("Get", ctx, x.ID()).Return(x, nil).Once(),
			f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once(),
			f.orders.On("Update", ctx, o).Return(nil).Once(),
		)

		err = commands.NewPackOrderCommandHandler(f.factory).HandleAssign(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.PackedInContainer, o.Status())
		f.assertExpectations(t)
	})

	t.Run("should reject a shipped box", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		y := restoreContainer(t, container.Shipped)
		x := restoreBox(t, box.Shipped, idPtr(y.ID()))
		o := restoreOrder(t, order.ReadyToPack, nil)
		cmd, err := commands.NewAssignOrderToBoxCommand(o.ID(), x.ID())
		require.NoError(t, err)

		f.expectRolledBack(ctx)
		f.boxes.On("Peek", ctx, x.ID()).Return(x, nil).Once()
		f.containers.On("Get", ctx, y.ID()).Return(y, nil).Once()
		f.boxes.On("Get", ctx, x.ID()).Return(x, nil).Once()
		f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()

		err = commands.NewPackOrderCommandHandler(f.factory).HandleAssign(ctx, cmd)

		assert.Equal(t, errs.ReasonAlreadyShipped, errs.ReasonOf(err))
		assert.Equal(t, order.ReadyToPack, o.Status())
		f.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})

	t.Run("should surface a write conflict", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		x := restoreBox(t, box.New, nil)
		o := restoreOrder(t, order.ReadyToPack, nil)
		cmd, err := commands.NewAssignOrderToBoxCommand(o.ID(), x.ID())
		require.NoError(t, err)

		f.expectRolledBack(ctx)
		f.boxes.On("Peek", ctx, x.ID()).Return(x, nil).Once()
		f.boxes.On("Get", ctx, x.ID()).Return(x, nil).Once()
		f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		f.orders.On("Update", ctx, o).Return(errs.NewConflictError("order", o.ID().String())).Once()

		err = commands.NewPackOrderCommandHandler(f.factory).HandleAssign(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrConflict)
		f.assertExpectations(t)
	})

	t.Run("should report a conflict when the box was loaded before it was locked", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		y := restoreContainer(t, container.Loading)
		x := restoreBox(t, box.Loaded, idPtr(y.ID()))
		stale, err := box.RestoreBox(x.ID(), box.New, nil, x.CreationDate(), 1)
		require.NoError(t, err)
		o := restoreOrder(t, order.ReadyToPack, nil)
		cmd, err := commands.NewAssignOrderToBoxCommand(o.ID(), x.ID())
		require.NoError(t, err)

		f.expectRolledBack(ctx)
		f.boxes.On("Peek", ctx, x.ID()).Return(stale, nil).Once()
		f.boxes.On("Get", ctx, x.ID()).Return(x, nil).Once()

		err = commands.NewPackOrderCommandHandler(f.factory).HandleAssign(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrConflict)
		f.containers.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
		f.orders.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})
}

func TestPackOrderCommandHandler_HandleUnassign(t *testing.T) {
	t.Run("should unpack", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		x := restoreBox(t, box.New, nil)
		o := restoreOrder(t, order.PackedInBox, idPtr(x.ID()))
		cmd, err := commands.NewUnassignOrderFromBoxCommand(o.ID())
		require.NoError(t, err)

		f.expectCommitted(ctx)
		mock.InOrder(
			f.orders.On("Peek", ctx, o.ID()).Return(o, nil).Once(),
			f.boxes.On("Peek", ctx, x.ID()).Return(x, nil).Once(),
			f.boxes.On("Get", ctx, x.ID()).Return(x, nil).Once(),
			f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once(),
			f.orders.On("Update", ctx, o).Return(nil).Once(),
		)

		err = commands.NewPackOrderCommandHandler(f.factory).HandleUnassign(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.ReadyToPack, o.Status())
		assert.Nil(t, o.BoxID())
		f.assertExpectations(t)
	})

	t.Run("should reject an order outside any box", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		o := restoreOrder(t, order.ReadyToPack, nil)
		cmd, err := commands.NewUnassignOrderFromBoxCommand(o.ID())
		require.NoError(t, err)

		f.expectRolledBack(ctx)
		f.orders.On("Peek", ctx, o.ID()).Return(o, nil).Once()

		err = commands.NewPackOrderCommandHandler(f.factory).HandleUnassign(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		f.boxes.AssertNotCalled(t, "Peek", mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})

	t.Run("should report a conflict when the order left its box before it was locked", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		x := restoreBox(t, box.New, nil)
		stale := restoreOrder(t, order.PackedInBox, idPtr(x.ID()))
		fresh, err := order.RestoreOrder(order.RestoreParams{
			ID:          stale.ID(),
			ClientID:    stale.ClientID(),
			ProductName: stale.ProductName(),
			Quantity:    stale.Quantity(),
			Status:      order.ReadyToPack,
			CreatedAt:   stale.CreatedAt(),
			Version:     2,
		})
		require.NoError(t, err)
		cmd, err := commands.NewUnassignOrderFromBoxCommand(stale.ID())
		require.NoError(t, err)

		f.expectRolledBack(ctx)
		mock.InOrder(
			f.orders.On("Peek", ctx, stale.ID()).Return(stale, nil).Once(),
			f.boxes.On("Peek", ctx, x.ID()).Return(x, nil).Once(),
			f.boxes.On("Get", ctx, x.ID()).Return(x, nil).Once(),
			f.orders.On("Get", ctx, stale.ID()).Return(fresh, nil).Once(),
		)

		err = commands.NewPackOrderCommandHandler(f.factory).HandleUnassign(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrConflict)
		f.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})

	t.Run("should propagate store failures", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		o := restoreOrder(t, order.PackedInBox, nil)
		cmd, err := commands.NewUnassignOrderFromBoxCommand(o.ID())
		require.NoError(t, err)

		f.expectRolledBack(ctx)
		f.orders.On("Peek", ctx, o.ID()).Return(nil, errs.NewStoreFailureError(errors.New("connection reset"))).Once()

		err = commands.NewPackOrderCommandHandler(f.factory).HandleUnassign(ctx, cmd)

		assert.Equal(t, errs.ReasonStoreFailure, errs.ReasonOf(err))
	})
}
