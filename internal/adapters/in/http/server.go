// Package http exposes the logistics operations, the dashboard queries and the
// realtime endpoint over echo.
package http

import (
	"context"
	"log/slog"
	"time"

	"morna/internal/core/application/realtime"
	"morna/internal/core/application/usecases/commands"

	"github.com/labstack/echo/v4"
)

type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
	}

	QuoteOrderHandler interface {
		Handle(ctx context.Context, cmd commands.QuoteOrderCommand) error
	}

	AdvanceOrderHandler interface {
		Handle(ctx context.Context, cmd commands.AdvanceOrderCommand) error
		HandleSendToChina(ctx context.Context, cmd commands.SendOrderToChinaCommand) error
	}

	PackOrderHandler interface {
		HandleAssign(ctx context.Context, cmd commands.AssignOrderToBoxCommand) error
		HandleUnassign(ctx context.Context, cmd commands.UnassignOrderFromBoxCommand) error
	}

	LoadBoxHandler interface {
		HandleAssign(ctx context.Context, cmd commands.AssignBoxToContainerCommand) error
		HandleUnassign(ctx context.Context, cmd commands.UnassignBoxFromContainerCommand) error
	}

	BoxLifecycleHandler interface {
		HandleCreate(ctx context.Context, cmd commands.BoxCommand) error
		HandleDelete(ctx context.Context, cmd commands.BoxCommand) error
		HandleReceive(ctx context.Context, cmd commands.BoxCommand) error
	}

	ContainerLifecycleHandler interface {
		HandleCreate(ctx context.Context, cmd commands.ContainerCommand) error
		HandleDelete(ctx context.Context, cmd commands.ContainerCommand) error
		HandleReceive(ctx context.Context, cmd commands.ContainerCommand) error
	}

	SendContainerHandler interface {
		Handle(ctx context.Context, cmd commands.SendContainerCommand) error
	}

	// OperationObserver records the outcome of every mutation.
	OperationObserver interface {
		Observe(ctx context.Context, operation string, err error, duration time.Duration)
	}
)

// Handlers groups the command handlers served by Server.
type Handlers struct {
	CreateOrder        CreateOrderHandler
	QuoteOrder         QuoteOrderHandler
	AdvanceOrder       AdvanceOrderHandler
	PackOrder          PackOrderHandler
	LoadBox            LoadBoxHandler
	BoxLifecycle       BoxLifecycleHandler
	ContainerLifecycle ContainerLifecycleHandler
	SendContainer      SendContainerHandler
}

// Server maps HTTP requests to commands and queries. Reads go through the same
// Fetcher the realtime sessions use, so a REST list and a pushed slot always
// agree.
type Server struct {
	handlers Handlers
	reader   realtime.Fetcher
	observer OperationObserver
	logger   *slog.Logger
}

func NewServer(handlers Handlers, reader realtime.Fetcher, observer OperationObserver, logger *slog.Logger) *Server {
	if observer == nil {
		observer = nopObserver{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		handlers: handlers,
		reader:   reader,
		observer: observer,
		logger:   logger.With("component", "http"),
	}
}

// Register mounts the API routes on g, normally the /api/v1 group.
func (s *Server) Register(g *echo.Group) {
	g.POST("/orders", s.CreateOrder)
	g.GET("/orders", s.ListOrders)
	g.POST("/orders/:id/quote", s.QuoteOrder)
	g.POST("/orders/:id/advance", s.AdvanceOrder)
	g.POST("/orders/:id/send-to-china", s.SendOrderToChina)
	g.PUT("/orders/:id/box", s.AssignOrderToBox)
	g.DELETE("/orders/:id/box", s.UnassignOrderFromBox)

	g.POST("/boxes", s.CreateBox)
	g.GET("/boxes", s.ListBoxes)
	g.GET("/boxes/counts", s.CountOrdersPerBox)
	g.DELETE("/boxes/:id", s.DeleteBox)
	g.GET("/boxes/:id/orders", s.ListBoxOrders)
	g.PUT("/boxes/:id/container", s.AssignBoxToContainer)
	g.DELETE("/boxes/:id/container", s.UnassignBoxFromContainer)
	g.POST("/boxes/:id/receive", s.ReceiveBox)

	g.POST("/containers", s.CreateContainer)
	g.GET("/containers", s.ListContainers)
	g.GET("/containers/counts", s.CountBoxesPerContainer)
	g.DELETE("/containers/:id", s.DeleteContainer)
	g.GET("/containers/:id/boxes", s.ListContainerBoxes)
	g.POST("/containers/:id/send", s.SendContainer)
	g.POST("/containers/:id/receive", s.ReceiveContainer)
}

// mutate runs one command, records it and renders either body with status or
// the rejection.
func (s *Server) mutate(
	ctx echo.Context,
	operation string,
	status int,
	body any,
	run func(ctx context.Context) error,
) error {
	reqCtx := ctx.Request().Context()

	start := time.Now()
	err := run(reqCtx)
	s.observer.Observe(reqCtx, operation, err, time.Since(start))

	if err != nil {
		return s.fail(ctx, operation, err)
	}
	if body == nil {
		return ctx.NoContent(status)
	}
	return ctx.JSON(status, body)
}

type nopObserver struct{}

func (nopObserver) Observe(context.Context, string, error, time.Duration) {}
