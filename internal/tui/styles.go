package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/runoshun/ironjira/internal/domain"
)

// Colors defines the color palette shared by the board and CLI output.
var Colors = struct {
	// Base colors
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Background lipgloss.Color

	// Title/text colors
	TitleNormal   lipgloss.Color
	TitleSelected lipgloss.Color

	// Status colors
	ToDo       lipgloss.Color
	InProgress lipgloss.Color
	Blocked    lipgloss.Color
	Done       lipgloss.Color
}{
	Primary:    lipgloss.Color("#6C5CE7"), // Purple
	Secondary:  lipgloss.Color("#A29BFE"), // Lavender
	Muted:      lipgloss.Color("#636E72"), // Gray
	Error:      lipgloss.Color("#D63031"), // Red
	Success:    lipgloss.Color("#00B894"), // Green
	Warning:    lipgloss.Color("#FDCB6E"), // Yellow
	Background: lipgloss.Color("#2D3436"), // Dark gray

	TitleNormal:   lipgloss.Color("#DFE6E9"), // Light gray
	TitleSelected: lipgloss.Color("#FFEAA7"), // Yellow

	ToDo:       lipgloss.Color("#74B9FF"), // Light blue
	InProgress: lipgloss.Color("#FDCB6E"), // Yellow
	Blocked:    lipgloss.Color("#D63031"), // Red
	Done:       lipgloss.Color("#00B894"), // Green
}

// Styles contains all the lipgloss styles for the board.
type Styles struct {
	// App
	App lipgloss.Style

	// Header
	Header     lipgloss.Style
	HeaderText lipgloss.Style

	// Columns
	Column        lipgloss.Style
	ColumnFocused lipgloss.Style

	// Tickets
	TicketID       lipgloss.Style
	TicketTitle    lipgloss.Style
	TicketSelected lipgloss.Style
	CursorSelected lipgloss.Style

	// Detail pane
	Detail      lipgloss.Style
	DetailTitle lipgloss.Style
	DetailLabel lipgloss.Style
	DetailValue lipgloss.Style

	// Dialog
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style

	// Messages
	Muted    lipgloss.Style
	Notice   lipgloss.Style
	ErrorMsg lipgloss.Style
}

// DefaultStyles returns the default styles for the board.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),

		Header: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Padding(0, 1).
			MarginBottom(1),

		HeaderText: lipgloss.NewStyle().
			Bold(true),

		Column: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Muted).
			Padding(0, 1),

		ColumnFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Primary).
			Padding(0, 1),

		TicketID: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		TicketTitle: lipgloss.NewStyle().
			Foreground(Colors.TitleNormal),

		TicketSelected: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.TitleSelected),

		CursorSelected: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected).
			Bold(true),

		Detail: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(Colors.Muted).
			MarginTop(1),

		DetailTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.TitleSelected),

		DetailLabel: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Width(10),

		DetailValue: lipgloss.NewStyle().
			Foreground(Colors.TitleNormal),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Primary).
			Padding(1, 2),

		DialogTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary).
			MarginBottom(1),

		Muted: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Notice: lipgloss.NewStyle().
			Foreground(Colors.Success),

		ErrorMsg: lipgloss.NewStyle().
			Foreground(Colors.Error).
			Bold(true),
	}
}

// StatusColor returns the color for a given status.
func StatusColor(status domain.Status) lipgloss.Color {
	switch status {
	case domain.StatusToDo:
		return Colors.ToDo
	case domain.StatusInProgress:
		return Colors.InProgress
	case domain.StatusBlocked:
		return Colors.Blocked
	case domain.StatusDone:
		return Colors.Done
	default:
		return Colors.Muted
	}
}

// StatusStyle returns the badge style for a given status.
func StatusStyle(status domain.Status) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(StatusColor(status)).Bold(true)
}

// StatusIcon returns an icon for a given status.
func StatusIcon(status domain.Status) string {
	switch status {
	case domain.StatusToDo:
		return "○"
	case domain.StatusInProgress:
		return "●"
	case domain.StatusBlocked:
		return "✗"
	case domain.StatusDone:
		return "✓"
	default:
		return "?"
	}
}

// StatusBadge renders "<icon> <display name>" in the status color.
func StatusBadge(status domain.Status) string {
	return StatusStyle(status).Render(StatusIcon(status) + " " + status.Display())
}
