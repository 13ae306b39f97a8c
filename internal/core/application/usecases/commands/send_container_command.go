package commands

import (
	"context"
	"errors"
	"time"

	"morna/internal/core/domain/model/container"
	"morna/internal/core/domain/model/kernel"
	"morna/internal/core/domain/model/order"
	"morna/internal/core/domain/services"
	"morna/internal/pkg/guard"
)

var ErrSendContainerCommandIsNotConstructed = errors.New(
	"SendContainerCommand must be created via NewSendContainerCommand constructor",
)

// SendContainerCommand ships a loaded container with its carrier tracking.
type SendContainerCommand struct {
	containerID kernel.ID
	tracking    container.Tracking

	guard guard.ConstructorGuard
}

func NewSendContainerCommand(
	containerID kernel.ID,
	trackingNumber string,
	trackingCompany string,
	arriveDate time.Time,
) (SendContainerCommand, error) {
	tracking, err := container.NewTracking(trackingNumber, trackingCompany, arriveDate)
	if err = errors.Join(containerID.Validate(), err); err != nil {
		return SendContainerCommand{}, err
	}

	return SendContainerCommand{
		containerID: containerID,
		tracking:    tracking,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c SendContainerCommand) Validate() error {
	return c.guard.Validate(ErrSendContainerCommandIsNotConstructed)
}

func (c SendContainerCommand) ContainerID() kernel.ID { return c.containerID }
func (c SendContainerCommand) Tracking() container.Tracking { return c.tracking }

// SendContainerCommandHandler seals a container and cascades the shipment to
// every box and order in it within one transaction.
type SendContainerCommandHandler struct {
	uowFactory UoWFactory
	engine     services.TransitionEngine
}

func NewSendContainerCommandHandler(uowFactory UoWFactory) SendContainerCommandHandler {
	return SendContainerCommandHandler{
		uowFactory: uowFactory,
		engine:     services.NewTransitionEngine(),
	}
}

func (h SendContainerCommandHandler) Handle(ctx context.Context, cmd SendContainerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := uow.ContainerRepository().Get(ctx, cmd.ContainerID())
	if err != nil {
		return err
	}

	boxes, err := uow.BoxRepository().ListByContainer(ctx, c.ID())
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	ordersByBox := make(map[kernel.ID][]*order.Order, len(boxes))
	for _, b := range boxes {
		orders, listErr := orderRepo.ListByBox(ctx, b.ID())
		if listErr != nil {
			return listErr
		}
		ordersByBox[b.ID()] = orders
	}

	cascade, err := h.engine.SendContainer(c, boxes, ordersByBox, cmd.Tracking())
	if err != nil {
		return err
	}

	if err = writeCascade(ctx, uow, cascade); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
