package tui

import (
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stagehandapp/stagehand/internal/event"
	"github.com/stagehandapp/stagehand/internal/schedule"
	"github.com/stagehandapp/stagehand/internal/tui/commands"
)

func (m *Model) openSessionForm(draft event.SessionDraft) {
	m.mode = ModeModal
	m.modalType = ModalSessionForm
	m.draft = draft
	m.formTitle.SetValue("")
	m.formDesc.SetValue("")
	m.formFocus = 0
	m.formTitle.Focus()
	m.formDesc.Blur()
}

func (m *Model) openDetail(s *event.Session) {
	m.mode = ModeModal
	m.modalType = ModalSessionDetail
	m.modalTarget = s
}

func (m *Model) openEditContent(s *event.Session) {
	m.mode = ModeModal
	m.modalType = ModalEditContent
	m.modalTarget = s
	m.formTitle.SetValue(s.Title)
	m.formDesc.SetValue(s.Description)
	m.formFocus = 0
	m.formTitle.Focus()
	m.formDesc.Blur()
}

func (m *Model) openConfirmDelete(s *event.Session) {
	m.mode = ModeModal
	m.modalType = ModalConfirmDelete
	m.modalTarget = s
}

func (m *Model) closeModal() {
	m.mode = ModeNormal
	m.modalType = ModalNone
	m.modalTarget = nil
	m.formTitle.Blur()
	m.formDesc.Blur()
}

// handleModalKey handles key presses while a modal is open.
func (m *Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.closeModal()
		return m, nil
	}

	switch m.modalType {
	case ModalSessionForm, ModalEditContent:
		return m.handleFormKey(msg)
	case ModalSessionDetail:
		return m.handleDetailKey(msg)
	case ModalConfirmDelete:
		return m.handleConfirmKey(msg)
	}
	return m, nil
}

func (m *Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.formFocus = 1 - m.formFocus
		if m.formFocus == 0 {
			m.formTitle.Focus()
			m.formDesc.Blur()
		} else {
			m.formDesc.Focus()
			m.formTitle.Blur()
		}
		return m, nil

	case "enter":
		return m.submitForm()
	}

	var cmd tea.Cmd
	if m.formFocus == 0 {
		m.formTitle, cmd = m.formTitle.Update(msg)
	} else {
		m.formDesc, cmd = m.formDesc.Update(msg)
	}
	return m, cmd
}

// submitForm commits the open form: a creation draft for the session form,
// a partial content change for the edit form. Unchanged fields are omitted
// from the content request entirely.
func (m *Model) submitForm() (tea.Model, tea.Cmd) {
	switch m.modalType {
	case ModalSessionForm:
		draft := m.draft
		draft.Title = strings.TrimSpace(m.formTitle.Value())
		draft.Description = strings.TrimSpace(m.formDesc.Value())
		m.closeModal()
		return m, commands.CreateSession(m.dispatcher, draft)

	case ModalEditContent:
		s := m.modalTarget
		if s == nil {
			m.closeModal()
			return m, nil
		}
		var ch event.ContentChange
		if v := strings.TrimSpace(m.formTitle.Value()); v != s.Title {
			ch.Title = &v
		}
		if v := strings.TrimSpace(m.formDesc.Value()); v != s.Description {
			ch.Description = &v
		}
		m.closeModal()
		if ch.Empty() {
			return m, nil
		}
		ticket := m.dispatcher.PrepareContent(s.ID)
		return m, commands.CommitContent(m.dispatcher, ticket, ch)
	}
	m.closeModal()
	return m, nil
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.modalTarget
	if s == nil {
		m.closeModal()
		return m, nil
	}
	switch msg.String() {
	case "e":
		m.openEditContent(s)
		return m, nil
	case "d":
		m.openConfirmDelete(s)
		return m, nil
	case "y":
		if err := clipboard.WriteAll(s.ID); err != nil {
			return m, m.setStatus("clipboard: "+err.Error(), true)
		}
		return m, m.setStatus("copied session id", false)
	case "b":
		if i := schedule.RoomIndex(m.rooms, s.RoomID); i >= 0 {
			m.closeModal()
			return m, commands.ToggleRoomBookable(m.client, m.rooms[i])
		}
		return m, nil
	case "enter", "q":
		m.closeModal()
		return m, nil
	}
	return m, nil
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.modalTarget
	if s == nil {
		m.closeModal()
		return m, nil
	}
	switch msg.String() {
	case "y", "enter":
		m.closeModal()
		m.selectedID = ""
		return m, commands.DeleteSession(m.dispatcher, s.ID)
	case "n", "q":
		m.closeModal()
		return m, nil
	}
	return m, nil
}
