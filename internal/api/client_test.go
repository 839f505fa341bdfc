package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stagehandapp/stagehand/internal/event"
)

// newTestClient spins up a stub backend and a client pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "test-token")
}

func TestClient_UnwrapsEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("authorization = %q", got)
		}
		if r.URL.Path != "/events/me" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"data": [{"id": "ev1", "name": "GopherCon"}]}`))
	})

	events, err := c.ListMyEvents(context.Background())
	if err != nil {
		t.Fatalf("ListMyEvents: %v", err)
	}
	if len(events) != 1 || events[0].ID != "ev1" || events[0].Name != "GopherCon" {
		t.Errorf("events = %+v", events)
	}
}

func TestClient_ErrorEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error": {"code": "session_overlap", "message": "sessions overlap"}}`))
	})

	_, err := c.ListMyEvents(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Code != "session_overlap" || apiErr.Status != http.StatusConflict {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestClient_ErrorOnSuccessStatus(t *testing.T) {
	// some endpoints report failures in the envelope with a 200
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": {"code": "nope", "message": "rejected"}}`))
	})

	_, err := c.ListMyEvents(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Code != "nope" {
		t.Fatalf("err = %v, want envelope error", err)
	}
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	})

	_, err := c.ListMyEvents(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadGateway {
		t.Fatalf("err = %v, want status 502 APIError", err)
	}
}

func TestClient_UpdateSessionScheduleSendsOnlyChangedFields(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/events/ev1/sessions/s1" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		_, _ = w.Write([]byte(`{"data": {"id": "s1", "room_id": "r2",
			"starts_at": "2026-03-10T10:00:00Z", "ends_at": "2026-03-10T10:30:00Z"}}`))
	})

	s, err := c.UpdateSessionSchedule(context.Background(), "ev1", "s1", event.ScheduleChange{RoomID: "r2"})
	if err != nil {
		t.Fatalf("UpdateSessionSchedule: %v", err)
	}
	if s.RoomID != "r2" {
		t.Errorf("room = %q, want r2", s.RoomID)
	}
	if len(got) != 1 || got["room_id"] != "r2" {
		t.Errorf("body = %v, want only room_id", got)
	}
}

func TestClient_UpdateSessionScheduleSendsUTCTimes(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"data": {"id": "s1", "room_id": "r1",
			"starts_at": "2026-03-10T09:10:00Z", "ends_at": "2026-03-10T09:40:00Z"}}`))
	})

	loc := time.FixedZone("CET", 3600)
	start := time.Date(2026, 3, 10, 10, 10, 0, 0, loc)
	end := start.Add(30 * time.Minute)
	_, err := c.UpdateSessionSchedule(context.Background(), "ev1", "s1",
		event.ScheduleChange{StartTime: &start, EndTime: &end})
	if err != nil {
		t.Fatalf("UpdateSessionSchedule: %v", err)
	}
	if got["start_time"] != "2026-03-10T09:10:00Z" {
		t.Errorf("start_time = %v, want UTC wire format", got["start_time"])
	}
	if got["end_time"] != "2026-03-10T09:40:00Z" {
		t.Errorf("end_time = %v", got["end_time"])
	}
}

func TestClient_CreateSessionValidatesDraft(t *testing.T) {
	c := New("http://unreachable.invalid", "")
	_, err := c.CreateSession(context.Background(), "ev1", event.SessionDraft{})
	if !errors.Is(err, event.ErrNoRoomSelected) {
		t.Errorf("err = %v, want ErrNoRoomSelected", err)
	}
}

func TestClient_MissingSessionMapsToSentinel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": {"code": "not_found", "message": "no such session"}}`))
	})

	if err := c.DeleteSession(context.Background(), "ev1", "gone"); !errors.Is(err, event.ErrSessionNotFound) {
		t.Errorf("delete err = %v, want ErrSessionNotFound", err)
	}
	_, err := c.UpdateSessionSchedule(context.Background(), "ev1", "gone", event.ScheduleChange{RoomID: "r1"})
	if !errors.Is(err, event.ErrSessionNotFound) {
		t.Errorf("update err = %v, want ErrSessionNotFound", err)
	}
	// Other statuses keep the plain APIError.
	c = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error": {"code": "session_overlap", "message": "sessions overlap"}}`))
	})
	if err := c.DeleteSession(context.Background(), "ev1", "s1"); errors.Is(err, event.ErrSessionNotFound) {
		t.Errorf("conflict mapped to not-found: %v", err)
	}
}

func TestClient_FetchScheduleReturnsRawAndParsed(t *testing.T) {
	payload := `{"event": {"id": "ev1"}, "rooms": [{"id": "r1"}], "sessions": [
		{"id": "s1", "room_id": "r1", "starts_at": "2026-03-10T10:00:00Z", "ends_at": "2026-03-10T10:30:00Z"}
	]}`
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": ` + payload + `}`))
	})

	sched, raw, err := c.FetchSchedule(context.Background(), "ev1")
	if err != nil {
		t.Fatalf("FetchSchedule: %v", err)
	}
	if len(sched.Sessions) != 1 || len(sched.Rooms) != 1 {
		t.Errorf("schedule = %+v", sched)
	}
	// raw payload survives for snapshotting
	if reparsed, err := event.ParseSchedule(raw); err != nil || len(reparsed.Sessions) != 1 {
		t.Errorf("raw payload not reparseable: %v", err)
	}
}

func TestClient_SetRoomBookable(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/rooms/r1" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"data": {}}`))
	})

	if err := c.SetRoomBookable(context.Background(), "r1", false); err != nil {
		t.Fatalf("SetRoomBookable: %v", err)
	}
	if got["not_bookable"] != true {
		t.Errorf("body = %v, want not_bookable true", got)
	}
}

func TestClient_VerifyLoginCode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login/verify" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "ana@example.com" || body["code"] != "123456" {
			t.Errorf("body = %v", body)
		}
		_, _ = w.Write([]byte(`{"data": {"token": "jwt", "token_type": "bearer", "user": {"id": "u1"}}}`))
	})

	resp, err := c.VerifyLoginCode(context.Background(), "ana@example.com", "123456")
	if err != nil {
		t.Fatalf("VerifyLoginCode: %v", err)
	}
	if resp.Token != "jwt" || resp.User == nil || resp.User.ID != "u1" {
		t.Errorf("resp = %+v", resp)
	}
}
