package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/ironjira/internal/domain"
	"github.com/runoshun/ironjira/internal/usecase/shared"
)

// EditTicketInput contains the parameters for editing a ticket.
// Only non-nil fields will be updated.
type EditTicketInput struct {
	Title       *string         // New title (nil = no change)
	Description *string         // New description (nil = no change)
	TicketID    domain.TicketID // Ticket ID to edit (required)
}

// EditTicketOutput contains the result of editing a ticket.
type EditTicketOutput struct {
	Ticket domain.Ticket // The updated ticket
}

// EditTicket is the use case for editing an existing ticket.
type EditTicket struct {
	tickets domain.SnapshotRepository
	logger  domain.Logger
}

// NewEditTicket creates a new EditTicket use case.
func NewEditTicket(tickets domain.SnapshotRepository, logger domain.Logger) *EditTicket {
	return &EditTicket{
		tickets: tickets,
		logger:  logger,
	}
}

// Execute edits a ticket with the given input.
func (uc *EditTicket) Execute(_ context.Context, in EditTicketInput) (*EditTicketOutput, error) {
	patch, err := buildPatch(in)
	if err != nil {
		return nil, err
	}

	store, err := shared.LoadStore(uc.tickets)
	if err != nil {
		return nil, err
	}

	ticket, ok := store.Update(in.TicketID, patch)
	if !ok {
		return nil, shared.NotFound(in.TicketID)
	}

	if err := shared.SaveStore(uc.tickets, store); err != nil {
		return nil, err
	}

	uc.logger.Info(in.TicketID, "ticket", fmt.Sprintf("edited: %q", ticket.Title().String()))
	return &EditTicketOutput{Ticket: ticket}, nil
}

// buildPatch validates the raw fields into a domain.TicketPatch.
func buildPatch(in EditTicketInput) (domain.TicketPatch, error) {
	var patch domain.TicketPatch
	if in.Title == nil && in.Description == nil {
		return patch, domain.ErrNoFieldsToUpdate
	}
	if in.Title != nil {
		title, err := domain.NewTitle(*in.Title)
		if err != nil {
			return patch, err
		}
		patch.Title = &title
	}
	if in.Description != nil {
		description, err := domain.NewDescription(*in.Description)
		if err != nil {
			return patch, err
		}
		patch.Description = &description
	}
	return patch, nil
}
