package services_test

import (
	"testing"
	"time"

	"morna/internal/core/domain/model/box"
	"morna/internal/core/domain/model/container"
	"morna/internal/core/domain/model/kernel"
	"morna/internal/core/domain/model/order"
	"morna/internal/core/domain/services"
	"morna/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func givenOrder(t *testing.T, status order.Status, boxID *kernel.ID) *order.Order {
	t.Helper()

	o, err := order.RestoreOrder(order.RestoreParams{
		ID:          kernel.NewID(),
		ClientID:    "client-7",
		ProductName: "bluetooth speaker",
		Quantity:    2,
		Status:      status,
		BoxID:       boxID,
	})
	require.NoError(t, err)
	return o
}

func givenBox(t *testing.T, status box.Status, containerID *kernel.ID) *box.Box {
	t.Helper()

	b, err := box.RestoreBox(kernel.NewID(), status, containerID, time.Now(), 1)
	require.NoError(t, err)
	return b
}

func givenContainer(t *testing.T, status container.Status) *container.Container {
	t.Helper()

	c, err := container.RestoreContainer(kernel.NewID(), status, nil, time.Now(), 1)
	require.NoError(t, err)
	return c
}

func givenTracking(t *testing.T) container.Tracking {
	t.Helper()

	tr, err := container.NewTracking("MSKU7654321", "Maersk", time.Now().Add(30*24*time.Hour))
	require.NoError(t, err)
	return tr
}

func ptr(id kernel.ID) *kernel.ID { return &id }

func TestTransitionEngine_QuoteAndAdvance(t *testing.T) {
	engine := services.NewTransitionEngine()

	t.Run("should quote a received order", func(t *testing.T) {
		o := givenOrder(t, order.ReceivedByStaff, nil)

		cascade, err := engine.QuoteOrder(o, kernel.MustParseMoney("12.25"))

		require.NoError(t, err)
		assert.Equal(t, []*order.Order{o}, cascade.Orders)
		assert.Equal(t, "24.50", o.TotalQuote().String())
	})

	t.Run("should reject invalid jump", func(t *testing.T) {
		o := givenOrder(t, order.Paid, nil)

		cascade, err := engine.AdvanceOrder(o, order.ArrivedInDestination)

		assert.Equal(t, errs.ReasonInvalidJump, errs.ReasonOf(err))
		assert.True(t, cascade.IsEmpty())
	})
}

func TestTransitionEngine_AssignOrderToBox(t *testing.T) {
	engine := services.NewTransitionEngine()

	t.Run("should pack into loose box leaving the box untouched", func(t *testing.T) {
		o := givenOrder(t, order.ReadyToPack, nil)
		x := givenBox(t, box.New, nil)

		cascade, err := engine.AssignOrderToBox(o, x, nil)

		require.NoError(t, err)
		assert.Equal(t, order.PackedInBox, o.Status())
		assert.Equal(t, box.New, x.Status())
		assert.Empty(t, cascade.Boxes)
		assert.Len(t, cascade.Orders, 1)
	})

	t.Run("should pack straight into container when box is loaded", func(t *testing.T) {
		y := givenContainer(t, container.Loading)
		x := givenBox(t, box.Loaded, ptr(y.ID()))
		o := givenOrder(t, order.ReadyToPack, nil)

		_, err := engine.AssignOrderToBox(o, x, y)

		require.NoError(t, err)
		assert.Equal(t, order.PackedInContainer, o.Status())
	})

	t.Run("should reject shipped box without changes", func(t *testing.T) {
		o := givenOrder(t, order.ReadyToPack, nil)
		x := givenBox(t, box.Shipped, ptr(kernel.NewID()))

		_, err := engine.AssignOrderToBox(o, x, nil)

		assert.Equal(t, errs.ReasonAlreadyShipped, errs.ReasonOf(err))
		assert.Equal(t, order.ReadyToPack, o.Status())
		assert.Nil(t, o.BoxID())
	})

	t.Run("should reject box inside shipped container", func(t *testing.T) {
		y := givenContainer(t, container.Shipped)
		x := givenBox(t, box.Loaded, ptr(y.ID()))
		o := givenOrder(t, order.ReadyToPack, nil)

		_, err := engine.AssignOrderToBox(o, x, y)

		assert.Equal(t, errs.ReasonAlreadyShipped, errs.ReasonOf(err))
	})

	t.Run("should report missing parent container", func(t *testing.T) {
		x := givenBox(t, box.Loaded, ptr(kernel.NewID()))
		o := givenOrder(t, order.ReadyToPack, nil)

		_, err := engine.AssignOrderToBox(o, x, nil)

		assert.Equal(t, errs.ReasonNotFound, errs.ReasonOf(err))
	})
}

func TestTransitionEngine_UnassignOrderFromBox(t *testing.T) {
	engine := services.NewTransitionEngine()

	t.Run("should unpack", func(t *testing.T) {
		x := givenBox(t, box.New, nil)
		o := givenOrder(t, order.PackedInBox, ptr(x.ID()))

		_, err := engine.UnassignOrderFromBox(o, x, nil)

		require.NoError(t, err)
		assert.Equal(t, order.ReadyToPack, o.Status())
		assert.Nil(t, o.BoxID())
	})

	t.Run("should reject order from another box", func(t *testing.T) {
		x := givenBox(t, box.New, nil)
		o := givenOrder(t, order.PackedInBox, ptr(kernel.NewID()))

		_, err := engine.UnassignOrderFromBox(o, x, nil)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestTransitionEngine_AssignBoxToContainer(t *testing.T) {
	engine := services.NewTransitionEngine()

	t.Run("should cascade to orders and start loading the container", func(t *testing.T) {
		x := givenBox(t, box.New, nil)
		y := givenContainer(t, container.New)
		o := givenOrder(t, order.PackedInBox, ptr(x.ID()))

		cascade, err := engine.AssignBoxToContainer(x, nil, y, []*order.Order{o})

		require.NoError(t, err)
		assert.Equal(t, box.Loaded, x.Status())
		assert.Equal(t, y.ID(), *x.ContainerID())
		assert.Equal(t, container.Loading, y.Status())
		assert.Equal(t, order.PackedInContainer, o.Status())
		assert.Equal(t, []*box.Box{x}, cascade.Boxes)
		assert.Equal(t, []*container.Container{y}, cascade.Containers)
		assert.Equal(t, []*order.Order{o}, cascade.Orders)
	})

	t.Run("should not report an already loading container", func(t *testing.T) {
		x := givenBox(t, box.New, nil)
		y := givenContainer(t, container.Loading)
		o := givenOrder(t, order.PackedInBox, ptr(x.ID()))

		cascade, err := engine.AssignBoxToContainer(x, nil, y, []*order.Order{o})

		require.NoError(t, err)
		assert.Empty(t, cascade.Containers)
	})

	t.Run("should reject empty box", func(t *testing.T) {
		x := givenBox(t, box.New, nil)
		y := givenContainer(t, container.New)

		_, err := engine.AssignBoxToContainer(x, nil, y, nil)

		assert.Equal(t, errs.ReasonEmptyBox, errs.ReasonOf(err))
		assert.Equal(t, box.New, x.Status())
		assert.Equal(t, container.New, y.Status())
	})

	t.Run("should reject shipped container", func(t *testing.T) {
		x := givenBox(t, box.New, nil)
		y := givenContainer(t, container.Shipped)
		o := givenOrder(t, order.PackedInBox, ptr(x.ID()))

		_, err := engine.AssignBoxToContainer(x, nil, y, []*order.Order{o})

		assert.Equal(t, errs.ReasonAlreadyShipped, errs.ReasonOf(err))
		assert.Nil(t, x.ContainerID())
		assert.Equal(t, order.PackedInBox, o.Status())
	})

	t.Run("should move between loading containers", func(t *testing.T) {
		from := givenContainer(t, container.Loading)
		to := givenContainer(t, container.Loading)
		x := givenBox(t, box.Loaded, ptr(from.ID()))
		o := givenOrder(t, order.PackedInContainer, ptr(x.ID()))

		cascade, err := engine.AssignBoxToContainer(x, from, to, []*order.Order{o})

		require.NoError(t, err)
		assert.Equal(t, to.ID(), *x.ContainerID())
		assert.Empty(t, cascade.Orders)
	})
}

func TestTransitionEngine_UnassignBoxFromContainer(t *testing.T) {
	engine := services.NewTransitionEngine()

	t.Run("should return box to new and orders to ready to pack", func(t *testing.T) {
		y := givenContainer(t, container.Loading)
		x := givenBox(t, box.Loaded, ptr(y.ID()))
		o := givenOrder(t, order.PackedInContainer, ptr(x.ID()))

		cascade, err := engine.UnassignBoxFromContainer(x, y, []*order.Order{o})

		require.NoError(t, err)
		assert.Equal(t, box.New, x.Status())
		assert.Nil(t, x.ContainerID())
		assert.Equal(t, order.ReadyToPack, o.Status())
		assert.True(t, o.IsInBox(x.ID()))
		assert.Len(t, cascade.Orders, 1)
	})

	t.Run("should reject once container shipped", func(t *testing.T) {
		y := givenContainer(t, container.Shipped)
		x := givenBox(t, box.Loaded, ptr(y.ID()))

		_, err := engine.UnassignBoxFromContainer(x, y, nil)

		assert.Equal(t, errs.ReasonAlreadyShipped, errs.ReasonOf(err))
	})
}

func TestTransitionEngine_SendContainer(t *testing.T) {
	engine := services.NewTransitionEngine()

	t.Run("should cascade to every box and order", func(t *testing.T) {
		y := givenContainer(t, container.Loading)
		x1 := givenBox(t, box.Loaded, ptr(y.ID()))
		x2 := givenBox(t, box.Loaded, ptr(y.ID()))
		o1 := givenOrder(t, order.PackedInContainer, ptr(x1.ID()))
		o2 := givenOrder(t, order.PackedInContainer, ptr(x2.ID()))
		o3 := givenOrder(t, order.PackedInContainer, ptr(x2.ID()))

		cascade, err := engine.SendContainer(y, []*box.Box{x1, x2}, map[kernel.ID][]*order.Order{
			x1.ID(): {o1},
			x2.ID(): {o2, o3},
		}, givenTracking(t))

		require.NoError(t, err)
		assert.Equal(t, container.Shipped, y.Status())
		assert.Equal(t, "Maersk", y.Tracking().Company())
		for _, b := range []*box.Box{x1, x2} {
			assert.Equal(t, box.Shipped, b.Status())
		}
		for _, o := range []*order.Order{o1, o2, o3} {
			assert.Equal(t, order.ArrivedInDestination, o.Status())
		}
		assert.Len(t, cascade.Boxes, 2)
		assert.Len(t, cascade.Orders, 3)
	})

	t.Run("should reject container that is not loading", func(t *testing.T) {
		y := givenContainer(t, container.New)

		_, err := engine.SendContainer(y, nil, nil, givenTracking(t))

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("should reject without boxes", func(t *testing.T) {
		y := givenContainer(t, container.Loading)

		_, err := engine.SendContainer(y, nil, nil, givenTracking(t))

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, container.Loading, y.Status())
	})

	t.Run("should not mutate anything when one order cannot ship", func(t *testing.T) {
		y := givenContainer(t, container.Loading)
		x := givenBox(t, box.Loaded, ptr(y.ID()))
		good := givenOrder(t, order.PackedInContainer, ptr(x.ID()))
		bad := givenOrder(t, order.Delivered, ptr(x.ID()))

		_, err := engine.SendContainer(y, []*box.Box{x}, map[kernel.ID][]*order.Order{
			x.ID(): {good, bad},
		}, givenTracking(t))

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, container.Loading, y.Status())
		assert.Equal(t, box.Loaded, x.Status())
		assert.Equal(t, order.PackedInContainer, good.Status())
	})
}

func TestTransitionEngine_Receive(t *testing.T) {
	engine := services.NewTransitionEngine()

	y := givenContainer(t, container.Shipped)
	x := givenBox(t, box.Shipped, ptr(y.ID()))

	_, err := engine.ReceiveBox(x)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)

	cascade, err := engine.ReceiveContainer(y, []*box.Box{x})
	require.NoError(t, err)
	assert.Equal(t, container.Received, y.Status())
	assert.Equal(t, box.Arrived, x.Status())
	assert.Len(t, cascade.Boxes, 1)

	_, err = engine.ReceiveBox(x)
	require.NoError(t, err)
	assert.Equal(t, box.Received, x.Status())

	_, err = engine.ReceiveContainer(y, nil)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestTransitionEngine_Delete(t *testing.T) {
	engine := services.NewTransitionEngine()

	require.NoError(t, engine.DeleteBox(givenBox(t, box.New, nil), 0))
	require.NoError(t, engine.DeleteBox(givenBox(t, box.Loaded, ptr(kernel.NewID())), 0))
	require.ErrorIs(t, engine.DeleteBox(givenBox(t, box.Shipped, nil), 0), errs.ErrAlreadyShipped)
	require.ErrorIs(t, engine.DeleteBox(givenBox(t, box.New, nil), 2), errs.ErrInvalidTransition)

	require.NoError(t, engine.DeleteContainer(givenContainer(t, container.Loading), 0))
	require.ErrorIs(t, engine.DeleteContainer(givenContainer(t, container.Shipped), 0), errs.ErrAlreadyShipped)
	require.ErrorIs(t, engine.DeleteContainer(givenContainer(t, container.New), 1), errs.ErrInvalidTransition)
}
