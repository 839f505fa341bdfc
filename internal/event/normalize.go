package event

import (
	"errors"
	"time"

	"github.com/tidwall/gjson"
)

// ErrMalformedPayload indicates the response body was not valid JSON.
var ErrMalformedPayload = errors.New("malformed schedule payload")

// The schedule endpoint has changed shape across API versions. Each accepted
// variant is enumerated here so the full set stays testable; resolution always
// walks the list in order and takes the first hit.
var (
	// sessionListPaths are the paths the session array may live under.
	sessionListPaths = []string{"sessions", "schedule.sessions", "slots", "items"}

	// roomIDPaths are the alternate names for the owning room reference.
	roomIDPaths = []string{"room_id", "roomId", "room.id"}

	// startPaths and endPaths are the alternate names for the session bounds.
	startPaths = []string{"starts_at", "startsAt", "start_time", "startTime", "start"}
	endPaths   = []string{"ends_at", "endsAt", "end_time", "endTime", "end"}
)

// ParseSchedule decodes a raw schedule payload into canonical form.
// Sessions that cannot be normalized are dropped; the grid must stay usable
// even when some upstream entries are malformed.
func ParseSchedule(raw []byte) (*Schedule, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrMalformedPayload
	}
	root := gjson.ParseBytes(raw)

	sched := &Schedule{
		Event: normalizeEvent(root.Get("event")),
	}

	for _, r := range root.Get("rooms").Array() {
		if room := normalizeRoom(r); room != nil {
			sched.Rooms = append(sched.Rooms, room)
		}
	}

	for _, s := range extractSessionList(root) {
		if sess := NormalizeSession(s); sess != nil {
			sched.Sessions = append(sched.Sessions, sess)
		}
	}

	return sched, nil
}

// extractSessionList locates the session array within the payload.
// Returns nil when no known variant is present.
func extractSessionList(root gjson.Result) []gjson.Result {
	for _, path := range sessionListPaths {
		if v := root.Get(path); v.IsArray() {
			return v.Array()
		}
	}
	return nil
}

// NormalizeSession maps one raw session record onto the canonical Session.
// Returns nil when a required field (id, room, start, end) cannot be resolved
// from any accepted variant, or when the resolved times do not give a
// positive duration. Never panics on malformed input.
func NormalizeSession(r gjson.Result) *Session {
	if !r.IsObject() {
		return nil
	}

	id := r.Get("id").String()
	roomID := firstString(r, roomIDPaths)
	startsAt, okStart := firstInstant(r, startPaths)
	endsAt, okEnd := firstInstant(r, endPaths)
	if id == "" || roomID == "" || !okStart || !okEnd {
		return nil
	}

	s := &Session{
		ID:          id,
		RoomID:      roomID,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
		Title:       r.Get("title").String(),
		Description: r.Get("description").String(),
		Speaker:     r.Get("speaker").String(),
		Tags:        normalizeTags(r.Get("tags")),
	}

	for _, sp := range r.Get("speakers").Array() {
		if name := sp.String(); name != "" {
			s.Speakers = append(s.Speakers, name)
		}
	}

	if !s.Valid() {
		return nil
	}

	return s
}

// normalizeTags accepts both plain strings and {id, name} records.
func normalizeTags(v gjson.Result) []Tag {
	if !v.IsArray() {
		return nil
	}
	var tags []Tag
	for _, t := range v.Array() {
		switch {
		case t.IsObject():
			tag := Tag{ID: t.Get("id").String(), Name: t.Get("name").String()}
			if tag.Key() != "" {
				tags = append(tags, tag)
			}
		case t.Type == gjson.String:
			if name := t.String(); name != "" {
				tags = append(tags, Tag{Name: name})
			}
		}
	}
	return tags
}

func normalizeEvent(v gjson.Result) Event {
	return Event{
		ID:          v.Get("id").String(),
		Name:        v.Get("name").String(),
		EventCode:   v.Get("event_code").String(),
		OwnerID:     v.Get("owner_id").String(),
		Date:        v.Get("date").String(),
		Description: v.Get("description").String(),
	}
}

func normalizeRoom(v gjson.Result) *Room {
	id := v.Get("id").String()
	if id == "" {
		return nil
	}
	room := &Room{
		ID:            id,
		EventID:       v.Get("event_id").String(),
		Name:          v.Get("name").String(),
		Description:   v.Get("description").String(),
		HowToGetThere: v.Get("how_to_get_there").String(),
		NotBookable:   v.Get("not_bookable").Bool(),
	}
	if cap := v.Get("capacity"); cap.Exists() && cap.Type == gjson.Number {
		c := int(cap.Int())
		room.Capacity = &c
	}
	return room
}

// firstString resolves the first non-empty string among the given paths.
func firstString(r gjson.Result, paths []string) string {
	for _, p := range paths {
		if v := r.Get(p); v.Exists() {
			if s := v.String(); s != "" {
				return s
			}
		}
	}
	return ""
}

// firstInstant resolves the first parseable RFC 3339 timestamp among the
// given paths.
func firstInstant(r gjson.Result, paths []string) (time.Time, bool) {
	for _, p := range paths {
		v := r.Get(p)
		if !v.Exists() {
			continue
		}
		if t, err := time.Parse(time.RFC3339, v.String()); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
