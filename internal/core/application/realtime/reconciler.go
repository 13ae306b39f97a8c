package realtime

import (
	"context"
	"log/slog"
	"sync"

	"morna/internal/core/ports"
)

// Reconciler fans change events out to every attached session, the session
// of the dashboard that made the change included.
type Reconciler struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	logger   *slog.Logger
}

func NewReconciler(logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		sessions: make(map[string]*Session),
		logger:   logger.With("component", "realtime"),
	}
}

func (r *Reconciler) Attach(s *Session) {
	r.mu.Lock()
	r.sessions[s.ID()] = s
	r.mu.Unlock()
}

func (r *Reconciler) Detach(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

func (r *Reconciler) Sessions() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// HandleChange implements ports.ChangeHandler. It never blocks on a session.
func (r *Reconciler) HandleChange(ctx context.Context, event ports.ChangeEvent) {
	if !event.Table.IsKnown() {
		r.logger.DebugContext(ctx, "ignoring change on unknown table", "table", event.Table)
		return
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sessions {
		s.Notify(event)
	}
}

// ResyncAll forces a full refetch in every session and reports how many were
// asked.
func (r *Reconciler) ResyncAll() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sessions {
		s.Resync()
	}
	return len(r.sessions)
}
