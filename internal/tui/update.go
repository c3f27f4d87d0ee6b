package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/ironjira/internal/domain"
)

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case MsgTicketsLoaded:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.setTickets(msg.Tickets)
		return m, nil

	case MsgTicketChanged:
		if msg.Err != nil {
			m.err = msg.Err
			m.notice = ""
			return m, nil
		}
		m.err = nil
		m.notice = msg.Notice
		m.focus = msg.Focus
		return m, m.loadTickets()
	}

	return m, nil
}

// handleKey dispatches key events by mode.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeInputTitle, ModeInputComment:
		return m.handleInputMode(msg)
	case ModeConfirm:
		return m.handleConfirmMode(msg)
	case ModeHelp:
		m.mode = ModeNormal
		return m, nil
	case ModeNormal:
		return m.handleNormalMode(msg)
	}
	return m, nil
}

// handleNormalMode handles keys in normal mode.
func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.rows[m.column] > 0 {
			m.rows[m.column]--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.rows[m.column] < len(m.columns[m.column])-1 {
			m.rows[m.column]++
		}
		return m, nil

	case key.Matches(msg, m.keys.Left):
		if m.column > 0 {
			m.column--
		}
		return m, nil

	case key.Matches(msg, m.keys.Right):
		if m.column < len(m.columns)-1 {
			m.column++
		}
		return m, nil

	case key.Matches(msg, m.keys.MoveNext):
		return m, m.moveSelected(1)

	case key.Matches(msg, m.keys.MovePrev):
		return m, m.moveSelected(-1)

	case key.Matches(msg, m.keys.New):
		return m, m.startInput(ModeInputTitle, "Ticket title", domain.MaxTitleLength)

	case key.Matches(msg, m.keys.Comment):
		if _, ok := m.selected(); !ok {
			return m, nil
		}
		return m, m.startInput(ModeInputComment, "Comment", noCharLimit)

	case key.Matches(msg, m.keys.Delete):
		if _, ok := m.selected(); ok {
			m.mode = ModeConfirm
		}
		return m, nil

	case key.Matches(msg, m.keys.Detail):
		m.showDetail = !m.showDetail
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.loadTickets()

	case key.Matches(msg, m.keys.Escape):
		m.err = nil
		m.notice = ""
		return m, nil
	}

	return m, nil
}

// moveSelected moves the selected ticket delta columns to the right.
func (m *Model) moveSelected(delta int) tea.Cmd {
	t, ok := m.selected()
	if !ok {
		return nil
	}
	statuses := domain.AllStatuses()
	target := t.Status().Index() + delta
	if target < 0 || target >= len(statuses) {
		return nil
	}
	return m.moveTicket(t.ID(), statuses[target])
}

// startInput switches to a text input mode.
// noCharLimit disables the textinput length cap; comments are unbounded.
const noCharLimit = 0

func (m *Model) startInput(mode Mode, placeholder string, limit int) tea.Cmd {
	m.mode = mode
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.input.CharLimit = limit
	m.input.Focus()
	return textinput.Blink
}

// handleInputMode handles keys while a text input is active.
func (m *Model) handleInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		value := m.input.Value()
		mode := m.mode
		m.mode = ModeNormal
		m.input.Reset()
		m.input.Blur()
		if strings.TrimSpace(value) == "" {
			return m, nil
		}
		if mode == ModeInputTitle {
			return m, m.createTicket(value)
		}
		if t, ok := m.selected(); ok {
			return m, m.addComment(t.ID(), value)
		}
		return m, nil

	case "esc":
		m.mode = ModeNormal
		m.input.Reset()
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleConfirmMode handles keys in delete confirmation mode.
func (m *Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.mode = ModeNormal
		if t, ok := m.selected(); ok {
			return m, m.deleteTicket(t.ID())
		}
		return m, nil

	case key.Matches(msg, m.keys.Escape), msg.String() == "n", msg.String() == "N", msg.String() == "q":
		m.mode = ModeNormal
		return m, nil
	}
	return m, nil
}
