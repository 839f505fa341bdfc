package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Plain output keeps the assertions independent of the terminal the tests
// run in.
func plainRender(t *testing.T, m *Model) string {
	t.Helper()
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })
	return m.View()
}

func TestViewRendersGrid(t *testing.T) {
	s1 := testSession("s1", "r1", at(10, 0), at(11, 0))
	m := newTestModel(t, s1)

	out := plainRender(t, m)
	for _, want := range []string{"GopherCon", "Main Hall", "Workshop", "Talk s1", "09:00", "10:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("view is missing %q", want)
		}
	}
}

func TestViewShowsCardTimeRange(t *testing.T) {
	s1 := testSession("s1", "r1", at(10, 0), at(11, 0))
	m := newTestModel(t, s1)

	out := plainRender(t, m)
	if !strings.Contains(out, "10:00-11:00") {
		t.Error("card does not show its time span")
	}
}

func TestViewHoverPlacementPreview(t *testing.T) {
	s1 := testSession("s1", "r1", at(10, 0), at(11, 0))
	m := newTestModel(t, s1)

	x, y := cellOf(t, m, 1, 630)
	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})

	if !m.hoverActive {
		t.Fatal("hover preview not active over empty space")
	}
	out := plainRender(t, m)
	if !strings.Contains(out, "+ 10:30") {
		t.Error("hover preview label missing")
	}
}

func TestViewGesturePreviewFollowsPointer(t *testing.T) {
	s1 := testSession("s1", "r1", at(10, 0), at(11, 0))
	m := newTestModel(t, s1)

	x, y := cellOf(t, m, 0, 630)
	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: x, Y: y + 2, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})

	pv, ok := m.currentPreview()
	if !ok {
		t.Fatal("no preview span during gesture")
	}
	if pv.roomIndex != 0 {
		t.Errorf("preview room = %d, want 0", pv.roomIndex)
	}
	// Two rows at quarter-hour granularity moves the block half an hour.
	if pv.start != 630 {
		t.Errorf("preview start = %v, want 630", pv.start)
	}
	if pv.end != 690 {
		t.Errorf("preview end = %v, want 690", pv.end)
	}
}

func TestViewDetailModal(t *testing.T) {
	s1 := testSession("s1", "r1", at(10, 0), at(11, 0))
	s1.Description = "A deep dive into schedule grids."
	s1.Speakers = []string{"Ana", "Ben"}
	m := newTestModel(t, s1)

	m.selectedID = "s1"
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.modalType != ModalSessionDetail {
		t.Fatalf("modal = %v, want detail", m.modalType)
	}

	out := plainRender(t, m)
	for _, want := range []string{"Talk s1", "Main Hall", "10:00 - 11:00", "Ana, Ben", "deep dive"} {
		if !strings.Contains(out, want) {
			t.Errorf("detail modal missing %q", want)
		}
	}
}

func TestViewBlockedRoomMarkedInHeader(t *testing.T) {
	s1 := testSession("s1", "r1", at(10, 0), at(11, 0))
	m := newTestModel(t, s1)
	m.rooms[1].NotBookable = true

	out := plainRender(t, m)
	if !strings.Contains(out, "✕ Workshop") {
		t.Error("blocked room not marked in the header")
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("one two three four", 9)
	want := "one two\nthree\nfour"
	if got != want {
		t.Errorf("wrapText = %q, want %q", got, want)
	}
	if wrapText("", 10) != "" {
		t.Error("empty input should stay empty")
	}
}
