package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/ironjira/internal/domain"
	"github.com/runoshun/ironjira/internal/usecase/shared"
)

// DeleteTicketInput contains the parameters for deleting a ticket.
type DeleteTicketInput struct {
	TicketID domain.TicketID // Ticket ID to delete (required)
}

// DeleteTicketOutput contains the result of deleting a ticket.
type DeleteTicketOutput struct {
	Deleted domain.DeletedTicket // The removed ticket
}

// DeleteTicket is the use case for deleting a ticket.
type DeleteTicket struct {
	tickets domain.SnapshotRepository
	logger  domain.Logger
}

// NewDeleteTicket creates a new DeleteTicket use case.
func NewDeleteTicket(tickets domain.SnapshotRepository, logger domain.Logger) *DeleteTicket {
	return &DeleteTicket{
		tickets: tickets,
		logger:  logger,
	}
}

// Execute removes a ticket. Its id is never issued again.
func (uc *DeleteTicket) Execute(_ context.Context, in DeleteTicketInput) (*DeleteTicketOutput, error) {
	store, err := shared.LoadStore(uc.tickets)
	if err != nil {
		return nil, err
	}

	deleted, ok := store.Delete(in.TicketID)
	if !ok {
		return nil, shared.NotFound(in.TicketID)
	}

	if err := shared.SaveStore(uc.tickets, store); err != nil {
		return nil, err
	}

	uc.logger.Info(in.TicketID, "ticket", fmt.Sprintf("deleted: %q", deleted.Ticket().Title().String()))
	return &DeleteTicketOutput{Deleted: deleted}, nil
}
