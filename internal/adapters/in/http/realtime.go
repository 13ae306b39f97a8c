package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"morna/internal/core/application/realtime"
	"morna/internal/core/application/usecases/queries"
	"morna/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// RealtimeEndpoint upgrades GET /realtime to a websocket. The client sends its
// ViewState as JSON whenever it changes and receives realtime.Message frames.
// Browsers cannot set headers on a websocket handshake, so role and staff may
// also come from the role and staffId query parameters.
type RealtimeEndpoint struct {
	reconciler *realtime.Reconciler
	fetcher    realtime.Fetcher
	cfg        realtime.Config
	observer   realtime.Observer
	logger     *slog.Logger
	upgrader   websocket.Upgrader
}

func NewRealtimeEndpoint(
	reconciler *realtime.Reconciler,
	fetcher realtime.Fetcher,
	cfg realtime.Config,
	observer realtime.Observer,
	logger *slog.Logger,
) *RealtimeEndpoint {
	if logger == nil {
		logger = slog.Default()
	}

	return &RealtimeEndpoint{
		reconciler: reconciler,
		fetcher:    fetcher,
		cfg:        cfg,
		observer:   observer,
		logger:     logger.With("component", "realtime_ws"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Dashboards are served from another origin; auth is terminated upstream.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (e *RealtimeEndpoint) Register(g *echo.Group) {
	g.GET("/realtime", e.Handle)
}

func (e *RealtimeEndpoint) Handle(ctx echo.Context) error {
	view, err := initialView(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Reason:  string(errs.ReasonOf(err)),
			Message: err.Error(),
		})
	}

	conn, err := e.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		// Upgrade has already answered the client.
		e.logger.Debug("websocket upgrade failed", "error", err)
		return nil
	}
	defer conn.Close()

	sink := &wsSink{conn: conn}
	session, err := realtime.NewSession(uuid.NewString(), view, e.fetcher, sink, e.cfg, e.logger, e.observer)
	if err != nil {
		_ = sink.close(websocket.ClosePolicyViolation, err.Error())
		return nil
	}

	e.reconciler.Attach(session)
	defer e.reconciler.Detach(session.ID())

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx.Request().Context()))
	defer cancel()

	go e.readViews(runCtx, cancel, conn, session, view)
	go keepAlive(runCtx, conn)

	if err = session.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
		e.logger.Info("realtime session ended", "session", session.ID(), "error", err)
	}
	return nil
}

// readViews applies view changes sent by the client until the connection
// closes. The role and staff of the connection cannot be changed by the client.
func (e *RealtimeEndpoint) readViews(
	ctx context.Context,
	cancel context.CancelFunc,
	conn *websocket.Conn,
	session *realtime.Session,
	initial realtime.ViewState,
) {
	defer cancel()

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for ctx.Err() == nil {
		var view realtime.ViewState
		if err := conn.ReadJSON(&view); err != nil {
			var closeErr *websocket.CloseError
			if !errors.As(err, &closeErr) {
				e.logger.Debug("websocket read stopped", "session", session.ID(), "error", err)
			}
			return
		}

		view.Role = initial.Role
		view.StaffID = initial.StaffID
		if err := session.SetView(view); err != nil {
			e.logger.Debug("ignoring invalid view", "session", session.ID(), "error", err)
		}
	}
}

func keepAlive(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func initialView(ctx echo.Context) (realtime.ViewState, error) {
	raw := ctx.Request().Header.Get(HeaderRole)
	if raw == "" {
		raw = ctx.QueryParam("role")
	}

	r, err := queries.ParseRole(raw)
	if err != nil {
		return realtime.ViewState{}, err
	}

	staff, err := staffID(ctx)
	if err != nil {
		return realtime.ViewState{}, err
	}

	tab := realtime.Tab(ctx.QueryParam("tab"))
	if tab == "" {
		tab = realtime.TabOrders
	}

	view := realtime.ViewState{Role: r, StaffID: staff, Tab: tab, Filter: ctx.QueryParam("filter")}
	return view, view.Validate()
}

// wsSink writes session messages. Only the session goroutine writes data
// frames; the mutex guards the close frame sent on setup failure.
type wsSink struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *wsSink) Send(_ context.Context, msg realtime.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return s.conn.WriteJSON(msg)
}

func (s *wsSink) close(code int, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, text), time.Now().Add(writeWait))
}
