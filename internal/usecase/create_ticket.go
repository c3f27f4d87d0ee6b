// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/ironjira/internal/domain"
	"github.com/runoshun/ironjira/internal/usecase/shared"
)

// CreateTicketInput contains the parameters for creating a ticket.
type CreateTicketInput struct {
	Title       string // Ticket title (required)
	Description string // Ticket description (optional)
}

// CreateTicketOutput contains the result of creating a ticket.
type CreateTicketOutput struct {
	Ticket domain.Ticket // The created ticket
}

// CreateTicket is the use case for creating a new ticket.
type CreateTicket struct {
	tickets domain.SnapshotRepository
	logger  domain.Logger
}

// NewCreateTicket creates a new CreateTicket use case.
func NewCreateTicket(tickets domain.SnapshotRepository, logger domain.Logger) *CreateTicket {
	return &CreateTicket{
		tickets: tickets,
		logger:  logger,
	}
}

// Execute creates a ticket with the given input.
// The input is validated before the store is loaded.
func (uc *CreateTicket) Execute(_ context.Context, in CreateTicketInput) (*CreateTicketOutput, error) {
	draft, err := domain.NewTicketDraft(in.Title, in.Description)
	if err != nil {
		return nil, err
	}

	store, err := shared.LoadStore(uc.tickets)
	if err != nil {
		return nil, err
	}

	id := store.Create(draft)
	if err := shared.SaveStore(uc.tickets, store); err != nil {
		return nil, err
	}

	uc.logger.Info(id, "ticket", fmt.Sprintf("created: %q", draft.Title().String()))

	ticket, err := shared.GetTicket(store, id)
	if err != nil {
		return nil, err
	}
	return &CreateTicketOutput{Ticket: ticket}, nil
}
