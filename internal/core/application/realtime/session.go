package realtime

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"morna/internal/core/domain/model/kernel"
	"morna/internal/core/ports"
)

// Config tunes a session loop.
type Config struct {
	// Debounce is the quiet period after the last change event before slots are
	// refetched.
	Debounce time.Duration
	// MaxWait caps how long a steady stream of events can postpone a refetch.
	MaxWait time.Duration
	// RetryInterval is the delay before failed slots are fetched again.
	RetryInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		Debounce:      120 * time.Millisecond,
		MaxWait:       time.Second,
		RetryInterval: 2 * time.Second,
	}
}

// Session is one attached dashboard. All fetching and sending happens on the
// goroutine that calls Run; Notify, SetView and Resync only leave a note in the
// mailbox and may be called from anywhere.
type Session struct {
	id       string
	fetcher  Fetcher
	sink     Sink
	cfg      Config
	logger   *slog.Logger
	observer Observer

	mu          sync.Mutex
	view        ViewState
	viewChanged bool
	resync      bool
	pending     map[ports.Table]struct{}
	wake        chan struct{}

	// Owned by the Run goroutine.
	boxIDs          []kernel.ID
	containerBoxIDs []kernel.ID
	containerIDs    []kernel.ID
	degraded        bool
	retry           slotSet
}

// NewSession creates a session whose first loop iteration sends every slot of
// view. observer may be nil.
func NewSession(
	id string,
	view ViewState,
	fetcher Fetcher,
	sink Sink,
	cfg Config,
	logger *slog.Logger,
	observer Observer,
) (*Session, error) {
	if err := view.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if observer == nil {
		observer = nopObserver{}
	}

	s := &Session{
		id:          id,
		fetcher:     fetcher,
		sink:        sink,
		cfg:         cfg,
		logger:      logger.With("component", "realtime", "session", id),
		observer:    observer,
		view:        view,
		viewChanged: true,
		pending:     make(map[ports.Table]struct{}),
		wake:        make(chan struct{}, 1),
		retry:       make(slotSet),
	}
	s.signal()
	return s, nil
}

func (s *Session) ID() string { return s.id }

// Notify records a change event. Unknown tables are ignored.
func (s *Session) Notify(event ports.ChangeEvent) {
	if !event.Table.IsKnown() {
		return
	}

	s.mu.Lock()
	s.pending[event.Table] = struct{}{}
	s.mu.Unlock()
	s.signal()
}

// SetView replaces the view state. The next loop iteration refetches every
// slot of the new view.
func (s *Session) SetView(view ViewState) error {
	if err := view.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.view = view
	s.viewChanged = true
	s.mu.Unlock()
	s.signal()
	return nil
}

// Resync asks for a full refetch regardless of pending events.
func (s *Session) Resync() {
	s.mu.Lock()
	s.resync = true
	s.mu.Unlock()
	s.signal()
}

func (s *Session) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// drain empties the mailbox.
func (s *Session) drain() (ViewState, bool, []ports.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()

	full := s.viewChanged || s.resync
	s.viewChanged, s.resync = false, false

	tables := make([]ports.Table, 0, len(s.pending))
	for table := range s.pending {
		tables = append(tables, table)
	}
	clear(s.pending)

	return s.view, full, tables
}

// Run processes the mailbox until ctx is done or the sink fails.
func (s *Session) Run(ctx context.Context) error {
	debounce := time.NewTimer(time.Hour)
	debounce.Stop()
	defer debounce.Stop()

	retry := time.NewTimer(time.Hour)
	retry.Stop()
	defer retry.Stop()

	var (
		view         ViewState
		debouncing   bool
		firstPending time.Time
		tables       = make(map[ports.Table]struct{})
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-s.wake:
			next, full, changed := s.drain()
			view = next

			if full {
				debounce.Stop()
				retry.Stop()
				debouncing = false
				clear(tables)
				clear(s.retry)
				if err := s.refresh(ctx, view, FullPlan(view), retry); err != nil {
					return err
				}
				continue
			}

			if len(changed) == 0 {
				continue
			}
			for _, table := range changed {
				tables[table] = struct{}{}
			}

			now := time.Now()
			if !debouncing {
				debouncing = true
				firstPending = now
			}
			wait := s.cfg.Debounce
			if remaining := s.cfg.MaxWait - now.Sub(firstPending); remaining < wait {
				wait = max(remaining, 0)
			}
			debounce.Reset(wait)

		case <-debounce.C:
			debouncing = false
			changed := make([]ports.Table, 0, len(tables))
			for table := range tables {
				changed = append(changed, table)
			}
			clear(tables)

			if err := s.refresh(ctx, view, Plan(view, changed), retry); err != nil {
				return err
			}

		case <-retry.C:
			slots := s.retry.ordered()
			clear(s.retry)
			if err := s.refresh(ctx, view, slots, retry); err != nil {
				return err
			}
		}
	}
}

// refresh refetches slots and pushes each one that succeeded. Failed slots are
// kept for the retry timer. Only a sink error is returned.
func (s *Session) refresh(ctx context.Context, view ViewState, slots []Slot, retry *time.Timer) error {
	var (
		failed  []Slot
		lastErr error
	)

	for _, slot := range slots {
		data, ok, err := s.fetch(ctx, view, slot)
		if !ok {
			continue
		}
		s.observer.ObserveRefetch(string(slot), err)

		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			failed = append(failed, slot)
			lastErr = err
			continue
		}

		if err = s.send(ctx, Message{Type: MessageRefresh, Slot: slot, Data: data}); err != nil {
			return err
		}
	}

	if len(failed) > 0 {
		s.retry.add(failed...)
		retry.Reset(s.cfg.RetryInterval)

		if !s.degraded {
			s.degraded = true
			s.logger.WarnContext(ctx, "refetch failed, view is degraded",
				"slots", failed, "error", lastErr)
			return s.send(ctx, Message{Type: MessageDegraded, Error: lastErr.Error()})
		}
		return nil
	}

	if s.degraded && len(s.retry) == 0 && len(slots) > 0 {
		s.degraded = false
		s.logger.InfoContext(ctx, "refetch succeeded, view recovered")
		return s.send(ctx, Message{Type: MessageRecovered})
	}

	return nil
}

// fetch reads one slot. ok is false when view does not display the slot.
func (s *Session) fetch(ctx context.Context, view ViewState, slot Slot) (any, bool, error) {
	switch slot {
	case SlotOrders:
		orders, err := s.fetcher.Orders(ctx, view.Role, view.StaffID)
		return orders, true, err

	case SlotBoxes:
		boxes, err := s.fetcher.Boxes(ctx, view.Filter)
		if err == nil {
			s.boxIDs = s.boxIDs[:0]
			for _, b := range boxes {
				s.boxIDs = append(s.boxIDs, b.ID)
			}
		}
		return boxes, true, err

	case SlotContainers:
		containers, err := s.fetcher.Containers(ctx, view.Filter)
		if err == nil {
			s.containerIDs = s.containerIDs[:0]
			for _, c := range containers {
				s.containerIDs = append(s.containerIDs, c.ID)
			}
		}
		return containers, true, err

	case SlotBoxOrders:
		if view.OpenBox == nil {
			return nil, false, nil
		}
		orders, err := s.fetcher.OrdersByBox(ctx, *view.OpenBox)
		return orders, true, err

	case SlotContainerBoxes:
		if view.OpenContainer == nil {
			return nil, false, nil
		}
		boxes, err := s.fetcher.BoxesByContainer(ctx, *view.OpenContainer)
		if err == nil {
			s.containerBoxIDs = s.containerBoxIDs[:0]
			for _, b := range boxes {
				s.containerBoxIDs = append(s.containerBoxIDs, b.ID)
			}
		}
		return boxes, true, err

	case SlotBoxCounts:
		var ids []kernel.ID
		if view.Tab == TabBoxes {
			ids = append(ids, s.boxIDs...)
		}
		if view.OpenContainer != nil {
			ids = append(ids, s.containerBoxIDs...)
		}
		if view.Tab != TabBoxes && view.OpenContainer == nil {
			return nil, false, nil
		}
		counts, err := s.fetcher.OrdersPerBox(ctx, ids)
		return counts, true, err

	case SlotContainerCounts:
		if view.Tab != TabContainers {
			return nil, false, nil
		}
		counts, err := s.fetcher.BoxesPerContainer(ctx, s.containerIDs)
		return counts, true, err

	default:
		return nil, false, errors.New("unknown slot")
	}
}

func (s *Session) send(ctx context.Context, msg Message) error {
	msg.At = time.Now().UTC()
	if err := s.sink.Send(ctx, msg); err != nil {
		s.logger.InfoContext(ctx, "dashboard is gone", "error", err)
		return err
	}
	return nil
}
