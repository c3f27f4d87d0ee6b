package usecase

import (
	"context"

	"github.com/runoshun/ironjira/internal/domain"
	"github.com/runoshun/ironjira/internal/usecase/shared"
)

// AddCommentInput contains the parameters for adding a comment.
type AddCommentInput struct {
	Message  string          // Comment text (required)
	TicketID domain.TicketID // Ticket ID (required)
}

// AddCommentOutput contains the result of adding a comment.
type AddCommentOutput struct {
	Ticket domain.Ticket // The ticket including the new comment
}

// AddComment is the use case for adding a comment to a ticket.
type AddComment struct {
	tickets domain.SnapshotRepository
	logger  domain.Logger
}

// NewAddComment creates a new AddComment use case.
func NewAddComment(tickets domain.SnapshotRepository, logger domain.Logger) *AddComment {
	return &AddComment{
		tickets: tickets,
		logger:  logger,
	}
}

// Execute appends a comment to a ticket.
func (uc *AddComment) Execute(_ context.Context, in AddCommentInput) (*AddCommentOutput, error) {
	if _, err := domain.NewComment(in.Message); err != nil {
		return nil, err
	}

	store, err := shared.LoadStore(uc.tickets)
	if err != nil {
		return nil, err
	}

	ok, err := store.AddComment(in.TicketID, in.Message)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.NotFound(in.TicketID)
	}

	if err := shared.SaveStore(uc.tickets, store); err != nil {
		return nil, err
	}

	uc.logger.Info(in.TicketID, "ticket", "comment added")

	ticket, err := shared.GetTicket(store, in.TicketID)
	if err != nil {
		return nil, err
	}
	return &AddCommentOutput{Ticket: ticket}, nil
}
