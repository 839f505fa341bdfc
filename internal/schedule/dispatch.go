package schedule

import (
	"context"

	"github.com/stagehandapp/stagehand/internal/event"
)

// ScheduleStore is the remote command executor the grid dispatches through.
// Implementations return the updated session already in canonical form.
type ScheduleStore interface {
	UpdateSessionSchedule(ctx context.Context, eventID, sessionID string, ch event.ScheduleChange) (*event.Session, error)
	UpdateSessionContent(ctx context.Context, eventID, sessionID string, ch event.ContentChange) (*event.Session, error)
	CreateSession(ctx context.Context, eventID string, draft event.SessionDraft) (*event.Session, error)
	DeleteSession(ctx context.Context, eventID, sessionID string) error
}

// SessionCache holds the canonical session set between refetches. Server
// responses are merged back by identity. Each dispatched mutation draws a
// per-session version; only the completion carrying the most recently issued
// version is merged, so out-of-order network responses cannot clobber a newer
// change with a stale one.
//
// The cache is mutated only on the UI loop; it needs ordering discipline at
// the async boundaries, not locks.
type SessionCache struct {
	order  []string
	byID   map[string]*event.Session
	issued map[string]uint64
}

// NewSessionCache creates a cache over the given canonical session set.
func NewSessionCache(sessions []*event.Session) *SessionCache {
	c := &SessionCache{
		byID:   make(map[string]*event.Session),
		issued: make(map[string]uint64),
	}
	c.Replace(sessions)
	return c
}

// Replace swaps the whole session set after a refetch. Version counters
// survive so in-flight completions from before the refetch stay discardable.
func (c *SessionCache) Replace(sessions []*event.Session) {
	c.order = c.order[:0]
	clear(c.byID)
	for _, s := range sessions {
		if s == nil {
			continue
		}
		if _, dup := c.byID[s.ID]; !dup {
			c.order = append(c.order, s.ID)
		}
		c.byID[s.ID] = s
	}
}

// Sessions returns the cached sessions in stable order.
func (c *SessionCache) Sessions() []*event.Session {
	out := make([]*event.Session, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Get returns the cached session with the given id, or nil.
func (c *SessionCache) Get(id string) *event.Session {
	return c.byID[id]
}

// Len returns the number of cached sessions.
func (c *SessionCache) Len() int {
	return len(c.order)
}

// Issue hands out the next version for a mutation of the given session.
func (c *SessionCache) Issue(id string) uint64 {
	c.issued[id]++
	return c.issued[id]
}

// Merge replaces the cached entry for s if version is the most recently
// issued one for that session. Returns false when the completion is stale
// and was discarded.
func (c *SessionCache) Merge(s *event.Session, version uint64) bool {
	if s == nil || version != c.issued[s.ID] {
		return false
	}
	if _, known := c.byID[s.ID]; !known {
		c.order = append(c.order, s.ID)
	}
	c.byID[s.ID] = s
	return true
}

// Add inserts a freshly created session.
func (c *SessionCache) Add(s *event.Session) {
	if s == nil {
		return
	}
	if _, known := c.byID[s.ID]; !known {
		c.order = append(c.order, s.ID)
	}
	c.byID[s.ID] = s
}

// Remove drops a session from the cache.
func (c *SessionCache) Remove(id string) {
	if _, known := c.byID[id]; !known {
		return
	}
	delete(c.byID, id)
	for i, o := range c.order {
		if o == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// CommandKind identifies what a dispatched command did, which determines how
// its completion is reconciled.
type CommandKind int

const (
	CommandSchedule CommandKind = iota // drag/resize commit
	CommandContent
	CommandCreate
	CommandDelete
)

// Ticket pairs a session id with the version issued for one dispatch.
type Ticket struct {
	SessionID string
	Version   uint64
}

// Completion is the result of one remote command, carried back to the UI
// loop for reconciliation.
type Completion struct {
	Kind    CommandKind
	Ticket  Ticket
	Session *event.Session
	Err     error
}

// Outcome tells the caller how a completion was reconciled.
type Outcome struct {
	// Merged is true when the server response replaced the cached entry.
	Merged bool
	// Invalidate is true when the cache can no longer be trusted and the
	// caller must refetch.
	Invalidate bool
	// Err is the command error, nil on success. For schedule commits the
	// error is informational only: nothing was mutated speculatively, so
	// there is nothing to roll back.
	Err error
}

// Dispatcher is the single funnel through which the interaction engine and
// the explicit create/delete/content actions reach the remote store.
type Dispatcher struct {
	store   ScheduleStore
	cache   *SessionCache
	eventID string
}

// NewDispatcher creates a dispatcher bound to one event.
func NewDispatcher(store ScheduleStore, cache *SessionCache, eventID string) *Dispatcher {
	return &Dispatcher{store: store, cache: cache, eventID: eventID}
}

// Cache returns the session cache the dispatcher reconciles into.
func (d *Dispatcher) Cache() *SessionCache {
	return d.cache
}

// PrepareSchedule issues a ticket for a gesture commit. Runs on the UI loop.
// Returns false for an empty change: an unchanged drag emits no request.
func (d *Dispatcher) PrepareSchedule(u Update) (Ticket, bool) {
	if u.Change.Empty() {
		return Ticket{}, false
	}
	return Ticket{SessionID: u.SessionID, Version: d.cache.Issue(u.SessionID)}, true
}

// ExecuteSchedule performs the remote schedule update. Blocking; run it off
// the UI loop and feed the completion back through Apply.
func (d *Dispatcher) ExecuteSchedule(ctx context.Context, t Ticket, ch event.ScheduleChange) Completion {
	s, err := d.store.UpdateSessionSchedule(ctx, d.eventID, t.SessionID, ch)
	return Completion{Kind: CommandSchedule, Ticket: t, Session: s, Err: err}
}

// PrepareContent issues a ticket for a content edit.
func (d *Dispatcher) PrepareContent(sessionID string) Ticket {
	return Ticket{SessionID: sessionID, Version: d.cache.Issue(sessionID)}
}

// ExecuteContent performs the remote content update.
func (d *Dispatcher) ExecuteContent(ctx context.Context, t Ticket, ch event.ContentChange) Completion {
	s, err := d.store.UpdateSessionContent(ctx, d.eventID, t.SessionID, ch)
	return Completion{Kind: CommandContent, Ticket: t, Session: s, Err: err}
}

// ExecuteCreate performs the remote create.
func (d *Dispatcher) ExecuteCreate(ctx context.Context, draft event.SessionDraft) Completion {
	s, err := d.store.CreateSession(ctx, d.eventID, draft)
	return Completion{Kind: CommandCreate, Session: s, Err: err}
}

// ExecuteDelete performs the remote delete.
func (d *Dispatcher) ExecuteDelete(ctx context.Context, sessionID string) Completion {
	err := d.store.DeleteSession(ctx, d.eventID, sessionID)
	return Completion{Kind: CommandDelete, Ticket: Ticket{SessionID: sessionID}, Err: err}
}

// Apply reconciles a completion into the cache. Runs on the UI loop.
//
// Schedule commit failures are absorbed: the cache was never mutated
// speculatively, so the prior server-confirmed geometry is still in place.
// Failures of explicit actions invalidate the cache to force a refetch,
// avoiding drift between the local set and the store.
func (d *Dispatcher) Apply(c Completion) Outcome {
	switch c.Kind {
	case CommandSchedule:
		if c.Err != nil {
			return Outcome{Err: c.Err}
		}
		return Outcome{Merged: d.cache.Merge(c.Session, c.Ticket.Version)}

	case CommandContent:
		if c.Err != nil {
			return Outcome{Invalidate: true, Err: c.Err}
		}
		return Outcome{Merged: d.cache.Merge(c.Session, c.Ticket.Version)}

	case CommandCreate:
		if c.Err != nil {
			return Outcome{Invalidate: true, Err: c.Err}
		}
		d.cache.Add(c.Session)
		return Outcome{Merged: c.Session != nil}

	case CommandDelete:
		if c.Err != nil {
			return Outcome{Invalidate: true, Err: c.Err}
		}
		d.cache.Remove(c.Ticket.SessionID)
		return Outcome{Merged: true}
	}
	return Outcome{}
}
