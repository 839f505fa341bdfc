package event

import (
	"strings"
	"time"
)

// Session is the canonical in-memory representation of a scheduled session,
// regardless of which wire-format variant it arrived in.
type Session struct {
	ID          string
	RoomID      string
	StartsAt    time.Time
	EndsAt      time.Time
	Title       string
	Description string
	Speaker     string
	Speakers    []string
	Tags        []Tag
}

// Duration returns the session length in minutes.
func (s *Session) Duration() int {
	return int(s.EndsAt.Sub(s.StartsAt).Minutes())
}

// DisplayTitle returns the title, falling back to a generic label.
func (s *Session) DisplayTitle() string {
	if s.Title != "" {
		return s.Title
	}
	return "Session " + s.ID
}

// SpeakerLabel returns the single speaker field if set, otherwise the
// speakers joined with commas. Empty when neither is present.
func (s *Session) SpeakerLabel() string {
	if s.Speaker != "" {
		return s.Speaker
	}
	if len(s.Speakers) > 0 {
		return strings.Join(s.Speakers, ", ")
	}
	return ""
}

// Valid reports whether the session has a positive duration.
func (s *Session) Valid() bool {
	return s.EndsAt.After(s.StartsAt)
}

// ScheduleChange is a partial schedule update for one session.
// Zero fields are omitted from the request; the server leaves them unchanged.
type ScheduleChange struct {
	RoomID    string
	StartTime *time.Time
	EndTime   *time.Time
}

// Empty reports whether the change carries no fields at all.
func (c ScheduleChange) Empty() bool {
	return c.RoomID == "" && c.StartTime == nil && c.EndTime == nil
}

// ContentChange is a partial content update for one session.
type ContentChange struct {
	Title       *string
	Description *string
}

// Empty reports whether the change carries no fields at all.
func (c ContentChange) Empty() bool {
	return c.Title == nil && c.Description == nil
}

// SessionDraft is the payload for creating a new session.
type SessionDraft struct {
	RoomID      string
	StartsAt    time.Time
	EndsAt      time.Time
	Title       string
	Description string
	Tags        []string
	SpeakerIDs  []string
}

// Validate checks the draft for client-side guard conditions before
// any network call is made.
func (d SessionDraft) Validate() error {
	if d.RoomID == "" {
		return ErrNoRoomSelected
	}
	if !d.EndsAt.After(d.StartsAt) {
		return ErrEndBeforeStart
	}
	return nil
}
