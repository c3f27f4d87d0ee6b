package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/ironjira/internal/app"
	"github.com/runoshun/ironjira/internal/domain"
	"github.com/runoshun/ironjira/internal/usecase"
)

// Model is the board TUI model.
// Fields are ordered to minimize memory padding.
type Model struct {
	// Dependencies
	container *app.Container

	// State
	err     error
	notice  string
	columns [][]domain.Ticket // Indexed by Status.Index()
	rows    []int             // Cursor row per column

	// Components
	keys   KeyMap
	styles Styles
	help   help.Model
	input  textinput.Model

	// Numeric state
	focus  domain.TicketID // Ticket to select after the next load
	column int
	width  int
	height int
	mode   Mode

	// Boolean state
	showDetail bool
	loading    bool
}

// New creates a new board model backed by the container's use cases.
func New(c *app.Container) *Model {
	in := textinput.New()

	n := len(domain.AllStatuses())
	return &Model{
		container: c,
		columns:   make([][]domain.Ticket, n),
		rows:      make([]int, n),
		keys:      DefaultKeyMap(),
		styles:    DefaultStyles(),
		help:      help.New(),
		input:     in,
		mode:      ModeNormal,
		loading:   true,
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return m.loadTickets()
}

// loadTickets returns a command that lists every ticket.
func (m *Model) loadTickets() tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.ListTicketsUseCase().Execute(context.Background(), usecase.ListTicketsInput{})
		if err != nil {
			return MsgTicketsLoaded{Err: err}
		}
		return MsgTicketsLoaded{Tickets: out.Tickets}
	}
}

// createTicket returns a command that creates a ticket with the given title.
func (m *Model) createTicket(title string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.CreateTicketUseCase().Execute(context.Background(), usecase.CreateTicketInput{Title: title})
		if err != nil {
			return MsgTicketChanged{Err: err}
		}
		return MsgTicketChanged{
			Focus:  out.Ticket.ID(),
			Notice: fmt.Sprintf("Created #%d", out.Ticket.ID()),
		}
	}
}

// moveTicket returns a command that changes the status of a ticket.
func (m *Model) moveTicket(id domain.TicketID, status domain.Status) tea.Cmd {
	return func() tea.Msg {
		_, err := m.container.MoveTicketUseCase().Execute(context.Background(), usecase.MoveTicketInput{
			TicketID: id,
			Status:   status,
		})
		if err != nil {
			return MsgTicketChanged{Err: err}
		}
		return MsgTicketChanged{
			Focus:  id,
			Notice: fmt.Sprintf("Moved #%d to %s", id, status.Display()),
		}
	}
}

// addComment returns a command that comments on a ticket.
func (m *Model) addComment(id domain.TicketID, text string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.container.AddCommentUseCase().Execute(context.Background(), usecase.AddCommentInput{
			TicketID: id,
			Message:  text,
		})
		if err != nil {
			return MsgTicketChanged{Err: err}
		}
		return MsgTicketChanged{
			Focus:  id,
			Notice: fmt.Sprintf("Commented on #%d", id),
		}
	}
}

// deleteTicket returns a command that deletes a ticket.
func (m *Model) deleteTicket(id domain.TicketID) tea.Cmd {
	return func() tea.Msg {
		_, err := m.container.DeleteTicketUseCase().Execute(context.Background(), usecase.DeleteTicketInput{TicketID: id})
		if err != nil {
			return MsgTicketChanged{Err: err}
		}
		return MsgTicketChanged{Notice: fmt.Sprintf("Deleted #%d", id)}
	}
}

// setTickets groups tickets into status columns and restores the cursor.
func (m *Model) setTickets(tickets []domain.Ticket) {
	for i := range m.columns {
		m.columns[i] = nil
	}
	for _, t := range tickets {
		if i := t.Status().Index(); i >= 0 {
			m.columns[i] = append(m.columns[i], t)
		}
	}

	if m.focus != 0 {
		for ci, col := range m.columns {
			for ri, t := range col {
				if t.ID() == m.focus {
					m.column = ci
					m.rows[ci] = ri
				}
			}
		}
		m.focus = 0
	}

	for ci, col := range m.columns {
		if m.rows[ci] >= len(col) {
			m.rows[ci] = max(len(col)-1, 0)
		}
	}
}

// selected returns the ticket under the cursor.
func (m *Model) selected() (domain.Ticket, bool) {
	col := m.columns[m.column]
	row := m.rows[m.column]
	if row < 0 || row >= len(col) {
		return domain.Ticket{}, false
	}
	return col[row], true
}

// ticketCount returns the number of tickets on the board.
func (m *Model) ticketCount() int {
	n := 0
	for _, col := range m.columns {
		n += len(col)
	}
	return n
}
