package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/ironjira/internal/domain"
	"github.com/runoshun/ironjira/internal/usecase/shared"
)

// MoveTicketInput contains the parameters for changing a ticket status.
type MoveTicketInput struct {
	Status   domain.Status   // Target status (required)
	TicketID domain.TicketID // Ticket ID (required)
}

// MoveTicketOutput contains the result of changing a ticket status.
type MoveTicketOutput struct {
	Ticket   domain.Ticket // The updated ticket
	Previous domain.Status // Status before the move
}

// MoveTicket is the use case for changing a ticket status.
type MoveTicket struct {
	tickets domain.SnapshotRepository
	logger  domain.Logger
}

// NewMoveTicket creates a new MoveTicket use case.
func NewMoveTicket(tickets domain.SnapshotRepository, logger domain.Logger) *MoveTicket {
	return &MoveTicket{
		tickets: tickets,
		logger:  logger,
	}
}

// Execute sets the status of a ticket.
// Any status may follow any other; moving to the current status still
// refreshes the update time.
func (uc *MoveTicket) Execute(_ context.Context, in MoveTicketInput) (*MoveTicketOutput, error) {
	if !in.Status.IsValid() {
		return nil, invalidStatus(in.Status)
	}

	store, err := shared.LoadStore(uc.tickets)
	if err != nil {
		return nil, err
	}

	before, err := shared.GetTicket(store, in.TicketID)
	if err != nil {
		return nil, err
	}

	ticket, _ := store.UpdateStatus(in.TicketID, in.Status)
	if err := shared.SaveStore(uc.tickets, store); err != nil {
		return nil, err
	}

	uc.logger.Info(in.TicketID, "ticket", fmt.Sprintf("status: %s -> %s", before.Status(), ticket.Status()))
	return &MoveTicketOutput{Ticket: ticket, Previous: before.Status()}, nil
}

func invalidStatus(s domain.Status) error {
	return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, s)
}
