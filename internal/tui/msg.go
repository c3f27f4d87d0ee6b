package tui

import "github.com/runoshun/ironjira/internal/domain"

// Msg is the sealed interface for all board messages.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgTicketsLoaded is sent when tickets are loaded from the store.
type MsgTicketsLoaded struct {
	Err     error
	Tickets []domain.Ticket
}

func (MsgTicketsLoaded) sealed() {}

// MsgTicketChanged is sent after a ticket was created, moved, commented or
// deleted. Focus is the ticket the cursor should follow (0 = keep position).
type MsgTicketChanged struct {
	Err    error
	Notice string
	Focus  domain.TicketID
}

func (MsgTicketChanged) sealed() {}
