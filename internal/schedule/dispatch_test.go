package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/stagehandapp/stagehand/internal/event"
)

// fakeStore returns canned sessions or errors per method.
type fakeStore struct {
	session *event.Session
	err     error

	scheduleCalls int
	lastChange    event.ScheduleChange
}

func (f *fakeStore) UpdateSessionSchedule(_ context.Context, _, _ string, ch event.ScheduleChange) (*event.Session, error) {
	f.scheduleCalls++
	f.lastChange = ch
	return f.session, f.err
}

func (f *fakeStore) UpdateSessionContent(_ context.Context, _, _ string, _ event.ContentChange) (*event.Session, error) {
	return f.session, f.err
}

func (f *fakeStore) CreateSession(_ context.Context, _ string, _ event.SessionDraft) (*event.Session, error) {
	return f.session, f.err
}

func (f *fakeStore) DeleteSession(_ context.Context, _, _ string) error {
	return f.err
}

func testDispatcher(store *fakeStore, sessions ...*event.Session) *Dispatcher {
	return NewDispatcher(store, NewSessionCache(sessions), "ev1")
}

func TestDispatcher_EmptyChangeIsNotDispatched(t *testing.T) {
	store := &fakeStore{}
	d := testDispatcher(store, testSession("1", "r1", at(10, 0), at(10, 30)))

	_, ok := d.PrepareSchedule(Update{SessionID: "1"})
	if ok {
		t.Fatal("empty change got a ticket")
	}
	if store.scheduleCalls != 0 {
		t.Errorf("store called %d times for an empty change", store.scheduleCalls)
	}
}

func TestDispatcher_SuccessMergesResponse(t *testing.T) {
	moved := testSession("1", "r2", at(10, 10), at(10, 40))
	store := &fakeStore{session: moved}
	d := testDispatcher(store, testSession("1", "r1", at(10, 0), at(10, 30)))

	upd := Update{SessionID: "1", Change: event.ScheduleChange{RoomID: "r2"}}
	ticket, ok := d.PrepareSchedule(upd)
	if !ok {
		t.Fatal("no ticket issued")
	}

	out := d.Apply(d.ExecuteSchedule(context.Background(), ticket, upd.Change))
	if !out.Merged || out.Err != nil || out.Invalidate {
		t.Fatalf("outcome = %+v, want clean merge", out)
	}
	if got := d.Cache().Get("1"); got.RoomID != "r2" {
		t.Errorf("cached room = %q, want r2", got.RoomID)
	}
}

func TestDispatcher_StaleCompletionDiscarded(t *testing.T) {
	original := testSession("1", "r1", at(10, 0), at(10, 30))
	d := testDispatcher(&fakeStore{}, original)

	first, _ := d.PrepareSchedule(Update{SessionID: "1", Change: event.ScheduleChange{RoomID: "r2"}})
	second, _ := d.PrepareSchedule(Update{SessionID: "1", Change: event.ScheduleChange{RoomID: "r3"}})

	// the newer dispatch completes first
	newer := testSession("1", "r3", at(10, 0), at(10, 30))
	out := d.Apply(Completion{Kind: CommandSchedule, Ticket: second, Session: newer})
	if !out.Merged {
		t.Fatal("latest completion was not merged")
	}

	// the older response arrives late and must not win
	older := testSession("1", "r2", at(10, 0), at(10, 30))
	out = d.Apply(Completion{Kind: CommandSchedule, Ticket: first, Session: older})
	if out.Merged {
		t.Fatal("stale completion was merged")
	}
	if got := d.Cache().Get("1"); got.RoomID != "r3" {
		t.Errorf("cached room = %q, want r3", got.RoomID)
	}
}

func TestDispatcher_ScheduleFailureIsAbsorbed(t *testing.T) {
	original := testSession("1", "r1", at(10, 0), at(10, 30))
	store := &fakeStore{err: errors.New("conflict")}
	d := testDispatcher(store, original)

	upd := Update{SessionID: "1", Change: event.ScheduleChange{RoomID: "r2"}}
	ticket, _ := d.PrepareSchedule(upd)
	out := d.Apply(d.ExecuteSchedule(context.Background(), ticket, upd.Change))

	if out.Err == nil {
		t.Fatal("error was dropped")
	}
	if out.Invalidate {
		t.Error("gesture failure must not invalidate the cache")
	}
	// nothing was mutated speculatively, so nothing needs rolling back
	if got := d.Cache().Get("1"); got != original {
		t.Errorf("cache mutated on failure: %+v", got)
	}
}

func TestDispatcher_ExplicitActionFailureInvalidates(t *testing.T) {
	store := &fakeStore{err: errors.New("boom")}
	d := testDispatcher(store, testSession("1", "r1", at(10, 0), at(10, 30)))

	out := d.Apply(d.ExecuteDelete(context.Background(), "1"))
	if !out.Invalidate {
		t.Error("delete failure must invalidate the cache")
	}
	if d.Cache().Get("1") == nil {
		t.Error("session removed despite failed delete")
	}

	out = d.Apply(d.ExecuteCreate(context.Background(), event.SessionDraft{}))
	if !out.Invalidate {
		t.Error("create failure must invalidate the cache")
	}
}

func TestDispatcher_CreateAndDelete(t *testing.T) {
	created := testSession("2", "r1", at(12, 0), at(12, 30))
	store := &fakeStore{session: created}
	d := testDispatcher(store, testSession("1", "r1", at(10, 0), at(10, 30)))

	out := d.Apply(d.ExecuteCreate(context.Background(), event.SessionDraft{RoomID: "r1"}))
	if !out.Merged || d.Cache().Len() != 2 {
		t.Fatalf("create outcome = %+v, cache len = %d", out, d.Cache().Len())
	}

	store.session, store.err = nil, nil
	out = d.Apply(d.ExecuteDelete(context.Background(), "1"))
	if !out.Merged || d.Cache().Get("1") != nil {
		t.Fatalf("delete outcome = %+v, session still cached", out)
	}
	if d.Cache().Len() != 1 {
		t.Errorf("cache len = %d, want 1", d.Cache().Len())
	}
}

func TestSessionCache_ReplaceKeepsVersionCounters(t *testing.T) {
	original := testSession("1", "r1", at(10, 0), at(10, 30))
	c := NewSessionCache([]*event.Session{original})

	v := c.Issue("1")
	c.Replace([]*event.Session{testSession("1", "r1", at(11, 0), at(11, 30))})

	// an in-flight completion from before the refetch is still stale
	// once a newer version is issued
	c.Issue("1")
	if c.Merge(original, v) {
		t.Error("pre-refetch completion merged over a newer dispatch")
	}
}

func TestSessionCache_OrderIsStable(t *testing.T) {
	a := testSession("a", "r1", at(9, 0), at(9, 30))
	b := testSession("b", "r1", at(10, 0), at(10, 30))
	c := NewSessionCache([]*event.Session{a, b})

	v := c.Issue("a")
	c.Merge(testSession("a", "r2", at(9, 0), at(9, 30)), v)

	got := c.Sessions()
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("order changed after merge: %v, %v", got[0].ID, got[1].ID)
	}
}
