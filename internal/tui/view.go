package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/stagehandapp/stagehand/internal/schedule"
)

// View renders the UI.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	if m.mode == ModeModal {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.renderModal())
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n")
	b.WriteString(m.renderRoomHeader())
	b.WriteString("\n")
	b.WriteString(strings.Join(m.renderGridRows(), "\n"))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m *Model) renderTitle() string {
	title := m.eventName
	if title == "" {
		title = "stagehand"
	}
	switch {
	case m.loading:
		title += "  (loading)"
	case m.offline:
		title += "  (offline, cached " + m.fetchedAt.Local().Format("15:04") + ")"
	}
	return m.styles.Title.Render(ansi.Truncate(" "+title, m.width, "…"))
}

func (m *Model) renderStatus() string {
	if m.statusMsg == "" {
		return m.styles.StatusBar.Render("")
	}
	style := m.styles.StatusBar
	if m.statusErr {
		style = m.styles.StatusErr
	}
	return style.Render(ansi.Truncate(" "+m.statusMsg, m.width, "…"))
}

func (m *Model) renderHelp() string {
	help := " drag to move · edges resize · click empty: new · n new · e edit · d delete · b room bookable · r reload · q quit"
	return m.styles.Help.Render(ansi.Truncate(help, m.width, "…"))
}

func (m *Model) renderModal() string {
	switch m.modalType {
	case ModalSessionForm:
		return m.renderSessionForm()
	case ModalEditContent:
		return m.renderEditContent()
	case ModalSessionDetail:
		return m.renderDetail()
	case ModalConfirmDelete:
		return m.renderConfirmDelete()
	}
	return ""
}

func (m *Model) renderSessionForm() string {
	st := m.styles
	room := "?"
	if i := schedule.RoomIndex(m.rooms, m.draft.RoomID); i >= 0 {
		room = m.rooms[i].DisplayName()
	}
	start := int(m.draft.StartsAt.Sub(m.rng.DayStart).Minutes())
	dur := int(m.draft.EndsAt.Sub(m.draft.StartsAt).Minutes())
	lines := []string{
		st.ModalTitle.Render("New session"),
		"",
		st.ModalLabel.Render("Room  ") + st.ModalValue.Render(room),
		st.ModalLabel.Render("Time  ") + st.ModalValue.Render(
			fmt.Sprintf("%s for %d min", schedule.FormatMinutes(start), dur)),
		"",
		st.ModalLabel.Render("Title"),
		m.formTitle.View(),
		st.ModalLabel.Render("Description"),
		m.formDesc.View(),
		"",
		st.ModalHint.Render("enter save · tab next field · esc cancel"),
	}
	return st.ModalBox.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderEditContent() string {
	st := m.styles
	lines := []string{
		st.ModalTitle.Render("Edit session"),
		"",
		st.ModalLabel.Render("Title"),
		m.formTitle.View(),
		st.ModalLabel.Render("Description"),
		m.formDesc.View(),
		"",
		st.ModalHint.Render("enter save · tab next field · esc cancel"),
	}
	return st.ModalBox.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderDetail() string {
	st := m.styles
	s := m.modalTarget
	if s == nil {
		return ""
	}
	start, end := m.rng.SessionMinutes(s)
	room := s.RoomID
	if i := schedule.RoomIndex(m.rooms, s.RoomID); i >= 0 {
		room = m.rooms[i].DisplayName()
	}

	lines := []string{
		st.ModalTitle.Render(s.DisplayTitle()),
		"",
		st.ModalLabel.Render("Room      ") + st.ModalValue.Render(room),
		st.ModalLabel.Render("Time      ") + st.ModalValue.Render(
			schedule.FormatMinutes(int(start)) + " - " + schedule.FormatMinutes(int(end))),
	}
	if sp := s.SpeakerLabel(); sp != "" {
		lines = append(lines, st.ModalLabel.Render("Speakers  ")+st.ModalValue.Render(sp))
	}
	if len(s.Tags) > 0 {
		names := make([]string, len(s.Tags))
		for i, t := range s.Tags {
			names[i] = t.Name
		}
		lines = append(lines, st.ModalLabel.Render("Tags      ")+
			st.ModalValue.Render(strings.Join(names, ", ")))
	}
	if s.Description != "" {
		lines = append(lines, "", st.ModalValue.Render(wrapText(s.Description, 50)))
	}
	lines = append(lines, "", st.ModalHint.Render("e edit · d delete · y copy id · b room bookable · esc close"))
	return st.ModalBox.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderConfirmDelete() string {
	st := m.styles
	s := m.modalTarget
	if s == nil {
		return ""
	}
	lines := []string{
		st.ModalTitle.Render("Delete session"),
		"",
		st.ModalValue.Render(ansi.Truncate(s.DisplayTitle(), 50, "…")),
		"",
		st.ConfirmDanger.Render(" y ") + st.ModalHint.Render(" delete    ") +
			st.ModalValue.Render(" n ") + st.ModalHint.Render(" keep"),
	}
	return st.ModalBox.Render(strings.Join(lines, "\n"))
}

// wrapText wraps plain text at the given width on word boundaries.
func wrapText(s string, width int) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	lineLen := 0
	for i, w := range words {
		n := ansi.StringWidth(w)
		if i > 0 {
			if lineLen+1+n > width {
				b.WriteString("\n")
				lineLen = 0
			} else {
				b.WriteString(" ")
				lineLen++
			}
		}
		b.WriteString(w)
		lineLen += n
	}
	return b.String()
}
