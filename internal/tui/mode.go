// Package tui provides the interactive ticket board.
package tui

// Mode represents the current UI mode.
type Mode int

const (
	ModeNormal       Mode = iota // Board navigation
	ModeInputTitle               // Title input for a new ticket
	ModeInputComment             // Comment input for the selected ticket
	ModeConfirm                  // Delete confirmation
	ModeHelp                     // Full key help
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeInputTitle:
		return "input_title"
	case ModeInputComment:
		return "input_comment"
	case ModeConfirm:
		return "confirm"
	case ModeHelp:
		return "help"
	default:
		return "unknown"
	}
}

// IsInputMode returns true if the mode accepts text input.
func (m Mode) IsInputMode() bool {
	switch m {
	case ModeInputTitle, ModeInputComment:
		return true
	case ModeNormal, ModeConfirm, ModeHelp:
		return false
	}
	return false
}
