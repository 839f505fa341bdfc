package ui

import (
	"fmt"
	"strings"

	"github.com/stagehandapp/stagehand/internal/event"
)

// formatTimeSpan renders a session's wall-clock span in local time.
func formatTimeSpan(s *event.Session) string {
	return s.StartsAt.Local().Format("15:04") + "-" + s.EndsAt.Local().Format("15:04")
}

// formatCapacity renders a room capacity, "-" when unknown.
func formatCapacity(capacity *int) string {
	if capacity == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *capacity)
}

// truncate shortens a string to the given width.
func truncate(s string, width int) string {
	if width <= 0 || len([]rune(s)) <= width {
		return s
	}
	r := []rune(s)
	if width == 1 {
		return string(r[:1])
	}
	return string(r[:width-1]) + "…"
}

// printSessionRow prints one session line for list output.
func printSessionRow(s *event.Session, roomName string, descWidth int) {
	line := fmt.Sprintf("  %s  %s  %-14s  %s",
		colorAccent.Sprint(s.ID),
		formatTimeSpan(s),
		truncate(roomName, 14),
		truncate(s.DisplayTitle(), descWidth),
	)
	fmt.Println(line)
	if sp := s.SpeakerLabel(); sp != "" {
		fmt.Println(colorMuted.Sprintf("      %s", truncate(sp, descWidth)))
	}
}

// printRoomRow prints one room line for list output.
func printRoomRow(r *event.Room) {
	marker := " "
	name := r.DisplayName()
	if r.NotBookable {
		marker = colorWarn.Sprint("✕")
		name = colorMuted.Sprint(name)
	}
	fmt.Printf("  %s %s  cap %s  %s\n",
		marker,
		colorAccent.Sprint(r.ID),
		formatCapacity(r.Capacity),
		name,
	)
	if r.Description != "" {
		fmt.Println(colorMuted.Sprintf("      %s", truncate(r.Description, termWidth()-6)))
	}
}

// sessionDescWidth computes how much room a session title gets on one line.
func sessionDescWidth() int {
	// Overhead: id, time span, room column and separators.
	w := termWidth() - 46
	if w < 16 {
		w = 16
	}
	return w
}

// roomNameByID resolves room names for session listings.
func roomNameByID(rooms []*event.Room) map[string]string {
	names := make(map[string]string, len(rooms))
	for _, r := range rooms {
		names[r.ID] = r.DisplayName()
	}
	return names
}

// joinNonEmpty joins the non-empty parts with a separator.
func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
