package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/stagehandapp/stagehand/internal/event"
)

// eventRecord is the wire shape of an event.
type eventRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	EventCode   string `json:"event_code"`
	OwnerID     string `json:"owner_id"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

func (r eventRecord) domain() event.Event {
	return event.Event{
		ID:          r.ID,
		Name:        r.Name,
		EventCode:   r.EventCode,
		OwnerID:     r.OwnerID,
		Date:        r.Date,
		Description: r.Description,
	}
}

// ListMyEvents returns the events the authenticated user belongs to.
func (c *Client) ListMyEvents(ctx context.Context) ([]event.Event, error) {
	var records []eventRecord
	if err := c.do(ctx, http.MethodGet, "/events/me", nil, &records); err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	events := make([]event.Event, len(records))
	for i, r := range records {
		events[i] = r.domain()
	}
	return events, nil
}

// FetchSchedule loads the full schedule for one event. The raw payload is
// returned alongside the normalized schedule so it can be snapshotted as-is.
func (c *Client) FetchSchedule(ctx context.Context, eventID string) (*event.Schedule, []byte, error) {
	raw, err := c.doRaw(ctx, http.MethodGet, "/events/"+eventID, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching schedule: %w", err)
	}
	sched, err := event.ParseSchedule(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching schedule: %w", err)
	}
	return sched, raw, nil
}

// UpdateEvent patches the event's own fields.
func (c *Client) UpdateEvent(ctx context.Context, eventID string, date, description string) error {
	body := map[string]string{}
	if date != "" {
		body["date"] = date
	}
	if description != "" {
		body["description"] = description
	}
	if err := c.do(ctx, http.MethodPatch, "/events/"+eventID, body, nil); err != nil {
		return fmt.Errorf("updating event: %w", err)
	}
	return nil
}

type scheduleChangeRequest struct {
	RoomID    string `json:"room_id,omitempty"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
}

type contentChangeRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

type createSessionRequest struct {
	RoomID      string   `json:"room_id"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	SpeakerIDs  []string `json:"speaker_ids,omitempty"`
}

func wireTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// sessionErr maps a backend 404 on a session endpoint to the package
// sentinel, so callers can match a vanished session with errors.Is instead
// of digging out the status code.
func sessionErr(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return fmt.Errorf("%w: %w", event.ErrSessionNotFound, err)
	}
	return err
}

// decodeSession runs a mutation response through the same normalization as
// the schedule payload, so merged sessions are canonical.
func decodeSession(raw []byte) (*event.Session, error) {
	s := event.NormalizeSession(gjson.ParseBytes(raw))
	if s == nil {
		return nil, fmt.Errorf("session response: %w", event.ErrMalformedPayload)
	}
	return s, nil
}

// UpdateSessionSchedule moves or resizes a session. Only the fields present
// in the change are sent; the server keeps the rest.
func (c *Client) UpdateSessionSchedule(ctx context.Context, eventID, sessionID string, ch event.ScheduleChange) (*event.Session, error) {
	body := scheduleChangeRequest{RoomID: ch.RoomID}
	if ch.StartTime != nil {
		body.StartTime = wireTime(*ch.StartTime)
	}
	if ch.EndTime != nil {
		body.EndTime = wireTime(*ch.EndTime)
	}
	raw, err := c.doRaw(ctx, http.MethodPatch, "/events/"+eventID+"/sessions/"+sessionID, body)
	if err != nil {
		return nil, fmt.Errorf("updating session schedule: %w", sessionErr(err))
	}
	return decodeSession(raw)
}

// UpdateSessionContent edits a session's title and description.
func (c *Client) UpdateSessionContent(ctx context.Context, eventID, sessionID string, ch event.ContentChange) (*event.Session, error) {
	body := contentChangeRequest{Title: ch.Title, Description: ch.Description}
	raw, err := c.doRaw(ctx, http.MethodPatch, "/events/"+eventID+"/sessions/"+sessionID+"/content", body)
	if err != nil {
		return nil, fmt.Errorf("updating session content: %w", sessionErr(err))
	}
	return decodeSession(raw)
}

// CreateSession schedules a new session.
func (c *Client) CreateSession(ctx context.Context, eventID string, draft event.SessionDraft) (*event.Session, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	body := createSessionRequest{
		RoomID:      draft.RoomID,
		StartTime:   wireTime(draft.StartsAt),
		EndTime:     wireTime(draft.EndsAt),
		Title:       draft.Title,
		Description: draft.Description,
		Tags:        draft.Tags,
		SpeakerIDs:  draft.SpeakerIDs,
	}
	raw, err := c.doRaw(ctx, http.MethodPost, "/events/"+eventID+"/sessions", body)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	return decodeSession(raw)
}

// DeleteSession removes a session from the schedule.
func (c *Client) DeleteSession(ctx context.Context, eventID, sessionID string) error {
	if err := c.do(ctx, http.MethodDelete, "/events/"+eventID+"/sessions/"+sessionID, nil, nil); err != nil {
		return fmt.Errorf("deleting session: %w", sessionErr(err))
	}
	return nil
}

// RoomUpdate is a partial room update; nil and zero fields are omitted.
type RoomUpdate struct {
	Name          string `json:"name,omitempty"`
	Capacity      *int   `json:"capacity,omitempty"`
	Description   string `json:"description,omitempty"`
	HowToGetThere string `json:"how_to_get_there,omitempty"`
	NotBookable   *bool  `json:"not_bookable,omitempty"`
}

// CreateRoom adds a room to the event.
func (c *Client) CreateRoom(ctx context.Context, eventID string, room *event.Room) error {
	body := RoomUpdate{
		Name:          room.Name,
		Capacity:      room.Capacity,
		Description:   room.Description,
		HowToGetThere: room.HowToGetThere,
	}
	if room.NotBookable {
		v := true
		body.NotBookable = &v
	}
	if err := c.do(ctx, http.MethodPost, "/events/"+eventID+"/rooms", body, nil); err != nil {
		return fmt.Errorf("creating room: %w", err)
	}
	return nil
}

// UpdateRoom patches room fields. Rooms are addressed directly, not through
// their event.
func (c *Client) UpdateRoom(ctx context.Context, roomID string, upd RoomUpdate) error {
	if err := c.do(ctx, http.MethodPatch, "/rooms/"+roomID, upd, nil); err != nil {
		return fmt.Errorf("updating room: %w", err)
	}
	return nil
}

// SetRoomBookable flips the room's booking policy. The room stays on the
// grid either way.
func (c *Client) SetRoomBookable(ctx context.Context, roomID string, bookable bool) error {
	notBookable := !bookable
	return c.UpdateRoom(ctx, roomID, RoomUpdate{NotBookable: &notBookable})
}

// DeleteRoom removes a room.
func (c *Client) DeleteRoom(ctx context.Context, roomID string) error {
	if err := c.do(ctx, http.MethodDelete, "/rooms/"+roomID, nil, nil); err != nil {
		return fmt.Errorf("deleting room: %w", err)
	}
	return nil
}
