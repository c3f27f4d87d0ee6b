package domain

import (
	"fmt"
	"strings"
)

// Status represents the lifecycle state of a ticket.
type Status string

const (
	StatusToDo       Status = "ToDo"       // Created, not started
	StatusInProgress Status = "InProgress" // Being worked on
	StatusBlocked    Status = "Blocked"    // Waiting on something external
	StatusDone       Status = "Done"       // Finished
)

// AllStatuses returns all valid status values in board order.
func AllStatuses() []Status {
	return []Status{
		StatusToDo,
		StatusInProgress,
		StatusBlocked,
		StatusDone,
	}
}

// IsValid returns true if the status is one of the known values.
func (s Status) IsValid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusBlocked, StatusDone:
		return true
	default:
		return false
	}
}

// Display returns a human-readable representation of the status.
func (s Status) Display() string {
	switch s {
	case StatusToDo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusBlocked:
		return "Blocked"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

// Index returns the position of the status in AllStatuses, or -1.
func (s Status) Index() int {
	for i, st := range AllStatuses() {
		if st == s {
			return i
		}
	}
	return -1
}

// ParseStatus parses user input into a Status.
// Matching is case-insensitive and accepts the canonical names as well as
// the short forms "todo", "to-do", "inprogress", "in-progress", "in_progress".
func ParseStatus(raw string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "todo", "to-do", "to_do":
		return StatusToDo, nil
	case "inprogress", "in-progress", "in_progress":
		return StatusInProgress, nil
	case "blocked":
		return StatusBlocked, nil
	case "done":
		return StatusDone, nil
	default:
		return "", fmt.Errorf("%w: %q (valid values: todo, inprogress, blocked, done)", ErrInvalidStatus, raw)
	}
}
