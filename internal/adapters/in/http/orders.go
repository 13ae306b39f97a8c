package http

import (
	"context"
	"net/http"

	"morna/internal/core/application/usecases/commands"
	"morna/internal/core/domain/model/kernel"
	"morna/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /orders.
//
//	@Summary	Register a client order at intake
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		order	body		NewOrderRequest	true	"order"
//	@Success	201		{object}	CreatedResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Router		/orders [post]
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req NewOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	orderID, err := bodyOrNewID(req.ID)
	if err != nil {
		return s.fail(ctx, "createOrder", err)
	}
	chinaStaffID, err := optionalID(req.ChinaStaffID)
	if err != nil {
		return s.fail(ctx, "createOrder", err)
	}
	venezuelaStaffID, err := optionalID(req.VenezuelaStaffID)
	if err != nil {
		return s.fail(ctx, "createOrder", err)
	}

	cmd, err := commands.NewCreateOrderCommand(
		orderID, req.ClientID, req.ProductName, req.Quantity, chinaStaffID, venezuelaStaffID,
	)
	if err != nil {
		return s.fail(ctx, "createOrder", err)
	}

	return s.mutate(ctx, "createOrder", http.StatusCreated, CreatedResponse{ID: orderID},
		func(c context.Context) error { return s.handlers.CreateOrder.Handle(c, cmd) })
}

// QuoteOrder handles POST /orders/{id}/quote.
//
//	@Summary	Quote an order with a unit price
//	@Tags		orders
//	@Accept		json
//	@Param		id		path	string			true	"order id"
//	@Param		quote	body	QuoteRequest	true	"unit price"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Failure	422	{object}	ErrorResponse
//	@Router		/orders/{id}/quote [post]
func (s *Server) QuoteOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, "quoteOrder", err)
	}

	var req QuoteRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	unitPrice, err := kernel.ParseMoney(req.UnitPrice)
	if err != nil {
		return s.fail(ctx, "quoteOrder", err)
	}

	cmd, err := commands.NewQuoteOrderCommand(orderID, unitPrice)
	if err != nil {
		return s.fail(ctx, "quoteOrder", err)
	}

	return s.mutate(ctx, "quoteOrder", http.StatusNoContent, nil,
		func(c context.Context) error { return s.handlers.QuoteOrder.Handle(c, cmd) })
}

// AdvanceOrder handles POST /orders/{id}/advance.
//
//	@Summary	Move an order one step forward
//	@Tags		orders
//	@Accept		json
//	@Param		id		path	string			true	"order id"
//	@Param		advance	body	AdvanceRequest	true	"target state"
//	@Success	204
//	@Failure	422	{object}	ErrorResponse
//	@Router		/orders/{id}/advance [post]
func (s *Server) AdvanceOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, "advanceOrderState", err)
	}

	var req AdvanceRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewAdvanceOrderCommand(orderID, order.Status(req.Next))
	if err != nil {
		return s.fail(ctx, "advanceOrderState", err)
	}

	return s.mutate(ctx, "advanceOrderState", http.StatusNoContent, nil,
		func(c context.Context) error { return s.handlers.AdvanceOrder.Handle(c, cmd) })
}

// SendOrderToChina handles POST /orders/{id}/send-to-china. The caller's
// X-Staff-ID becomes the China staff of the order when present.
func (s *Server) SendOrderToChina(ctx echo.Context) error {
	orderID, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, "sendOrderToChina", err)
	}

	staff, err := staffID(ctx)
	if err != nil {
		return s.fail(ctx, "sendOrderToChina", err)
	}

	cmd, err := commands.NewSendOrderToChinaCommand(orderID, staff)
	if err != nil {
		return s.fail(ctx, "sendOrderToChina", err)
	}

	return s.mutate(ctx, "sendOrderToChina", http.StatusNoContent, nil,
		func(c context.Context) error { return s.handlers.AdvanceOrder.HandleSendToChina(c, cmd) })
}

// AssignOrderToBox handles PUT /orders/{id}/box.
//
//	@Summary	Pack an order into a box
//	@Tags		orders
//	@Accept		json
//	@Param		id		path	string				true	"order id"
//	@Param		box		body	AssignToBoxRequest	true	"box"
//	@Success	204
//	@Failure	422	{object}	ErrorResponse
//	@Router		/orders/{id}/box [put]
func (s *Server) AssignOrderToBox(ctx echo.Context) error {
	orderID, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, "assignOrderToBox", err)
	}

	var req AssignToBoxRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	boxID, err := kernel.IDFromUUID(req.BoxID)
	if err != nil {
		return s.fail(ctx, "assignOrderToBox", err)
	}

	cmd, err := commands.NewAssignOrderToBoxCommand(orderID, boxID)
	if err != nil {
		return s.fail(ctx, "assignOrderToBox", err)
	}

	return s.mutate(ctx, "assignOrderToBox", http.StatusNoContent, nil,
		func(c context.Context) error { return s.handlers.PackOrder.HandleAssign(c, cmd) })
}

// UnassignOrderFromBox handles DELETE /orders/{id}/box.
func (s *Server) UnassignOrderFromBox(ctx echo.Context) error {
	orderID, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, "unassignOrderFromBox", err)
	}

	cmd, err := commands.NewUnassignOrderFromBoxCommand(orderID)
	if err != nil {
		return s.fail(ctx, "unassignOrderFromBox", err)
	}

	return s.mutate(ctx, "unassignOrderFromBox", http.StatusNoContent, nil,
		func(c context.Context) error { return s.handlers.PackOrder.HandleUnassign(c, cmd) })
}

// ListOrders handles GET /orders.
//
//	@Summary	List orders visible to the calling role
//	@Tags		orders
//	@Produce	json
//	@Param		X-Role		header		string	true	"china, venezuela or admin"
//	@Param		staffId		query		string	false	"staff id"
//	@Success	200			{array}		queries.OrderView
//	@Failure	400			{object}	ErrorResponse
//	@Router		/orders [get]
func (s *Server) ListOrders(ctx echo.Context) error {
	r, err := role(ctx)
	if err != nil {
		return s.fail(ctx, "listOrders", err)
	}

	staff, err := staffID(ctx)
	if err != nil {
		return s.fail(ctx, "listOrders", err)
	}

	orders, err := s.reader.Orders(ctx.Request().Context(), r, staff)
	if err != nil {
		return s.fail(ctx, "listOrders", err)
	}
	return ctx.JSON(http.StatusOK, orders)
}
