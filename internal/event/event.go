// Package event defines the core domain types for stagehand.
package event

import (
	"errors"
	"time"
)

// Domain errors.
var (
	ErrNoActiveEvent   = errors.New("no active event selected")
	ErrNoRoomSelected  = errors.New("no room selected")
	ErrSessionNotFound = errors.New("session not found")
	ErrEndBeforeStart  = errors.New("session end must be after start")
)

// Event represents a conference or meetup managed through the console.
type Event struct {
	ID          string
	Name        string
	EventCode   string
	OwnerID     string
	Date        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Room represents a physical room within an event.
// Not-bookable rooms stay visible on the grid but are excluded from
// attendee booking flows.
type Room struct {
	ID            string
	EventID       string
	Name          string
	Capacity      *int
	Description   string
	HowToGetThere string
	NotBookable   bool
}

// DisplayName returns the room name, falling back to the id.
func (r *Room) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// Tag is a named label attached to a session.
// Identity is the id when present, otherwise the name.
type Tag struct {
	ID   string
	Name string
}

// Key returns the identity of the tag.
func (t Tag) Key() string {
	if t.ID != "" {
		return t.ID
	}
	return t.Name
}

// Speaker represents a speaker profile within an event.
type Speaker struct {
	ID             string
	EventID        string
	FirstName      string
	LastName       string
	Bio            string
	TagLine        string
	ProfilePicture string
	IsTopSpeaker   bool
}

// FullName returns the speaker's display name.
func (s *Speaker) FullName() string {
	switch {
	case s.FirstName != "" && s.LastName != "":
		return s.FirstName + " " + s.LastName
	case s.FirstName != "":
		return s.FirstName
	case s.LastName != "":
		return s.LastName
	default:
		return s.ID
	}
}

// TeamMember represents an organizer with access to an event.
type TeamMember struct {
	EventID  string
	UserID   string
	Name     string
	LastName string
	Email    string
}

// Invitation is a pending or sent attendee invitation.
type Invitation struct {
	ID      string
	EventID string
	Email   string
	SentAt  *time.Time
}

// Pagination describes a page of a list endpoint response.
type Pagination struct {
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

// Schedule is the full schedule payload for one event.
type Schedule struct {
	Event    Event
	Rooms    []*Room
	Sessions []*Session
}
