package commands_test

import (
	"testing"
	"time"

	"morna/internal/core/domain/model/box"
	"morna/internal/core/domain/model/container"
	"morna/internal/core/domain/model/kernel"
	"morna/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func restoreOrder(t *testing.T, status order.Status, boxID *kernel.ID) *order.Order {
	t.Helper()

	o, err := order.RestoreOrder(order.RestoreParams{
		ID:          kernel.NewID(),
		ClientID:    "client-1",
		ProductName: "usb charger",
		Quantity:    4,
		Status:      status,
		BoxID:       boxID,
		CreatedAt:   time.Now(),
		Version:     1,
	})
	require.NoError(t, err)
	return o
}

func restoreBox(t *testing.T, status box.Status, containerID *kernel.ID) *box.Box {
	t.Helper()

	b, err := box.RestoreBox(kernel.NewID(), status, containerID, time.Now(), 1)
	require.NoError(t, err)
	return b
}

func restoreContainer(t *testing.T, status container.Status) *container.Container {
	t.Helper()

	c, err := container.RestoreContainer(kernel.NewID(), status, nil, time.Now(), 1)
	require.NoError(t, err)
	return c
}

func idPtr(id kernel.ID) *kernel.ID { return &id }
