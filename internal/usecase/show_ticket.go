package usecase

import (
	"context"

	"github.com/runoshun/ironjira/internal/domain"
	"github.com/runoshun/ironjira/internal/usecase/shared"
)

// ShowTicketInput contains the parameters for showing a ticket.
type ShowTicketInput struct {
	TicketID domain.TicketID // Ticket ID (required)
}

// ShowTicketOutput contains the result of showing a ticket.
type ShowTicketOutput struct {
	Ticket domain.Ticket
}

// ShowTicket is the use case for reading a single ticket.
type ShowTicket struct {
	tickets domain.SnapshotRepository
}

// NewShowTicket creates a new ShowTicket use case.
func NewShowTicket(tickets domain.SnapshotRepository) *ShowTicket {
	return &ShowTicket{tickets: tickets}
}

// Execute returns the ticket with the given id.
func (uc *ShowTicket) Execute(_ context.Context, in ShowTicketInput) (*ShowTicketOutput, error) {
	store, err := shared.LoadStore(uc.tickets)
	if err != nil {
		return nil, err
	}

	ticket, err := shared.GetTicket(store, in.TicketID)
	if err != nil {
		return nil, err
	}
	return &ShowTicketOutput{Ticket: ticket}, nil
}
