package http

import (
	"context"
	"net/http"

	"morna/internal/core/application/usecases/commands"

	"github.com/labstack/echo/v4"
)

// CreateContainer handles POST /containers. The body is optional.
func (s *Server) CreateContainer(ctx echo.Context) error {
	var req NewEntityRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	containerID, err := bodyOrNewID(req.ID)
	if err != nil {
		return s.fail(ctx, "createContainer", err)
	}

	cmd, err := commands.NewContainerCommand(containerID)
	if err != nil {
		return s.fail(ctx, "createContainer", err)
	}

	return s.mutate(ctx, "createContainer", http.StatusCreated, CreatedResponse{ID: containerID},
		func(c context.Context) error { return s.handlers.ContainerLifecycle.HandleCreate(c, cmd) })
}

func (s *Server) DeleteContainer(ctx echo.Context) error {
	return s.containerCommand(ctx, "deleteContainer", s.handlers.ContainerLifecycle.HandleDelete)
}

// ReceiveContainer handles POST /containers/{id}/receive.
//
//	@Summary	Confirm a shipped container in Venezuela
//	@Tags		containers
//	@Param		id	path	string	true	"container id"
//	@Success	204
//	@Failure	422	{object}	ErrorResponse
//	@Router		/containers/{id}/receive [post]
func (s *Server) ReceiveContainer(ctx echo.Context) error {
	return s.containerCommand(ctx, "receiveContainer", s.handlers.ContainerLifecycle.HandleReceive)
}

func (s *Server) containerCommand(
	ctx echo.Context,
	operation string,
	handle func(context.Context, commands.ContainerCommand) error,
) error {
	containerID, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, operation, err)
	}

	cmd, err := commands.NewContainerCommand(containerID)
	if err != nil {
		return s.fail(ctx, operation, err)
	}

	return s.mutate(ctx, operation, http.StatusNoContent, nil,
		func(c context.Context) error { return handle(c, cmd) })
}

// SendContainer handles POST /containers/{id}/send.
//
//	@Summary	Ship a loaded container
//	@Tags		containers
//	@Accept		json
//	@Param		id			path	string					true	"container id"
//	@Param		tracking	body	SendContainerRequest	true	"carrier tracking"
//	@Success	204
//	@Failure	422	{object}	ErrorResponse
//	@Router		/containers/{id}/send [post]
func (s *Server) SendContainer(ctx echo.Context) error {
	containerID, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, "sendContainer", err)
	}

	var req SendContainerRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewSendContainerCommand(
		containerID, req.TrackingNumber, req.TrackingCompany, req.ArriveDate.Time,
	)
	if err != nil {
		return s.fail(ctx, "sendContainer", err)
	}

	return s.mutate(ctx, "sendContainer", http.StatusNoContent, nil,
		func(c context.Context) error { return s.handlers.SendContainer.Handle(c, cmd) })
}

func (s *Server) ListContainers(ctx echo.Context) error {
	containers, err := s.reader.Containers(ctx.Request().Context(), ctx.QueryParam("filter"))
	if err != nil {
		return s.fail(ctx, "listContainers", err)
	}
	return ctx.JSON(http.StatusOK, containers)
}

// ListContainerBoxes handles GET /containers/{id}/boxes.
func (s *Server) ListContainerBoxes(ctx echo.Context) error {
	containerID, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, "listContainerBoxes", err)
	}

	boxes, err := s.reader.BoxesByContainer(ctx.Request().Context(), containerID)
	if err != nil {
		return s.fail(ctx, "listContainerBoxes", err)
	}
	return ctx.JSON(http.StatusOK, boxes)
}

// CountBoxesPerContainer handles GET /containers/counts?ids=.
func (s *Server) CountBoxesPerContainer(ctx echo.Context) error {
	ids, err := queryIDs(ctx, "ids")
	if err != nil {
		return s.fail(ctx, "countBoxesPerContainer", err)
	}

	counts, err := s.reader.BoxesPerContainer(ctx.Request().Context(), ids)
	if err != nil {
		return s.fail(ctx, "countBoxesPerContainer", err)
	}
	return ctx.JSON(http.StatusOK, CountsResponse{Counts: counts})
}
