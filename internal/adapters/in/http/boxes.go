package http

import (
	"context"
	"net/http"

	"morna/internal/core/application/usecases/commands"
	"morna/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// CreateBox handles POST /boxes. The body is optional.
//
//	@Summary	Create an empty box
//	@Tags		boxes
//	@Accept		json
//	@Produce	json
//	@Param		box	body		NewEntityRequest	false	"box"
//	@Success	201	{object}	CreatedResponse
//	@Router		/boxes [post]
func (s *Server) CreateBox(ctx echo.Context) error {
	var req NewEntityRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	boxID, err := bodyOrNewID(req.ID)
	if err != nil {
		return s.fail(ctx, "createBox", err)
	}

	cmd, err := commands.NewBoxCommand(boxID)
	if err != nil {
		return s.fail(ctx, "createBox", err)
	}

	return s.mutate(ctx, "createBox", http.StatusCreated, CreatedResponse{ID: boxID},
		func(c context.Context) error { return s.handlers.BoxLifecycle.HandleCreate(c, cmd) })
}

// DeleteBox handles DELETE /boxes/{id}.
//
//	@Summary	Delete an empty box
//	@Tags		boxes
//	@Param		id	path	string	true	"box id"
//	@Success	204
//	@Failure	422	{object}	ErrorResponse
//	@Router		/boxes/{id} [delete]
func (s *Server) DeleteBox(ctx echo.Context) error {
	return s.boxCommand(ctx, "deleteBox", s.handlers.BoxLifecycle.HandleDelete)
}

// ReceiveBox handles POST /boxes/{id}/receive.
func (s *Server) ReceiveBox(ctx echo.Context) error {
	return s.boxCommand(ctx, "receiveBox", s.handlers.BoxLifecycle.HandleReceive)
}

func (s *Server) boxCommand(
	ctx echo.Context,
	operation string,
	handle func(context.Context, commands.BoxCommand) error,
) error {
	boxID, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, operation, err)
	}

	cmd, err := commands.NewBoxCommand(boxID)
	if err != nil {
		return s.fail(ctx, operation, err)
	}

	return s.mutate(ctx, operation, http.StatusNoContent, nil,
		func(c context.Context) error { return handle(c, cmd) })
}

// AssignBoxToContainer handles PUT /boxes/{id}/container.
//
//	@Summary	Load a box into a container
//	@Tags		boxes
//	@Accept		json
//	@Param		id			path	string						true	"box id"
//	@Param		container	body	AssignToContainerRequest	true	"container"
//	@Success	204
//	@Failure	422	{object}	ErrorResponse
//	@Router		/boxes/{id}/container [put]
func (s *Server) AssignBoxToContainer(ctx echo.Context) error {
	boxID, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, "assignBoxToContainer", err)
	}

	var req AssignToContainerRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	containerID, err := kernel.IDFromUUID(req.ContainerID)
	if err != nil {
		return s.fail(ctx, "assignBoxToContainer", err)
	}

	cmd, err := commands.NewAssignBoxToContainerCommand(boxID, containerID)
	if err != nil {
		return s.fail(ctx, "assignBoxToContainer", err)
	}

	return s.mutate(ctx, "assignBoxToContainer", http.StatusNoContent, nil,
		func(c context.Context) error { return s.handlers.LoadBox.HandleAssign(c, cmd) })
}

// UnassignBoxFromContainer handles DELETE /boxes/{id}/container.
func (s *Server) UnassignBoxFromContainer(ctx echo.Context) error {
	boxID, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, "unassignBoxFromContainer", err)
	}

	cmd, err := commands.NewUnassignBoxFromContainerCommand(boxID)
	if err != nil {
		return s.fail(ctx, "unassignBoxFromContainer", err)
	}

	return s.mutate(ctx, "unassignBoxFromContainer", http.StatusNoContent, nil,
		func(c context.Context) error { return s.handlers.LoadBox.HandleUnassign(c, cmd) })
}

// ListBoxes handles GET /boxes?filter=.
//
//	@Summary	List boxes, newest first
//	@Tags		boxes
//	@Produce	json
//	@Param		filter	query	string	false	"box id substring"
//	@Success	200		{array}	queries.BoxView
//	@Router		/boxes [get]
func (s *Server) ListBoxes(ctx echo.Context) error {
	boxes, err := s.reader.Boxes(ctx.Request().Context(), ctx.QueryParam("filter"))
	if err != nil {
		return s.fail(ctx, "listBoxes", err)
	}
	return ctx.JSON(http.StatusOK, boxes)
}

// ListBoxOrders handles GET /boxes/{id}/orders.
func (s *Server) ListBoxOrders(ctx echo.Context) error {
	boxID, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, "listBoxOrders", err)
	}

	orders, err := s.reader.OrdersByBox(ctx.Request().Context(), boxID)
	if err != nil {
		return s.fail(ctx, "listBoxOrders", err)
	}
	return ctx.JSON(http.StatusOK, orders)
}

// CountOrdersPerBox handles GET /boxes/counts?ids=.
//
//	@Summary	Count the orders in each box
//	@Tags		boxes
//	@Produce	json
//	@Param		ids	query		string	true	"comma separated box ids"
//	@Success	200	{object}	CountsResponse
//	@Router		/boxes/counts [get]
func (s *Server) CountOrdersPerBox(ctx echo.Context) error {
	ids, err := queryIDs(ctx, "ids")
	if err != nil {
		return s.fail(ctx, "countOrdersPerBox", err)
	}

	counts, err := s.reader.OrdersPerBox(ctx.Request().Context(), ids)
	if err != nil {
		return s.fail(ctx, "countOrdersPerBox", err)
	}
	return ctx.JSON(http.StatusOK, CountsResponse{Counts: counts})
}
