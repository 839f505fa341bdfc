package event

import (
	"errors"
	"testing"
	"time"
)

func TestScheduleChangeEmpty(t *testing.T) {
	if !(ScheduleChange{}).Empty() {
		t.Error("zero change should be empty")
	}
	now := time.Now()
	if (ScheduleChange{RoomID: "r1"}).Empty() {
		t.Error("room change should not be empty")
	}
	if (ScheduleChange{StartTime: &now}).Empty() {
		t.Error("time change should not be empty")
	}
}

func TestSessionDraftValidate(t *testing.T) {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	draft := SessionDraft{StartsAt: start, EndsAt: start.Add(30 * time.Minute)}
	if err := draft.Validate(); !errors.Is(err, ErrNoRoomSelected) {
		t.Errorf("err = %v, want ErrNoRoomSelected", err)
	}

	draft.RoomID = "r1"
	draft.EndsAt = start
	if err := draft.Validate(); !errors.Is(err, ErrEndBeforeStart) {
		t.Errorf("err = %v, want ErrEndBeforeStart", err)
	}

	draft.EndsAt = start.Add(30 * time.Minute)
	if err := draft.Validate(); err != nil {
		t.Errorf("valid draft rejected: %v", err)
	}
}

func TestSessionDisplayHelpers(t *testing.T) {
	s := &Session{ID: "abc123"}
	if got := s.DisplayTitle(); got != "Session abc123" {
		t.Errorf("display title = %q", got)
	}
	s.Title = "Opening"
	if got := s.DisplayTitle(); got != "Opening" {
		t.Errorf("display title = %q", got)
	}

	s.Speakers = []string{"Ana", "Ben"}
	if got := s.SpeakerLabel(); got != "Ana, Ben" {
		t.Errorf("speaker label = %q", got)
	}
	s.Speaker = "Solo"
	if got := s.SpeakerLabel(); got != "Solo" {
		t.Errorf("speaker label = %q", got)
	}
}
