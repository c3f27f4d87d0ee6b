package usecase

import (
	"context"

	"github.com/runoshun/ironjira/internal/domain"
	"github.com/runoshun/ironjira/internal/usecase/shared"
)

// ListTicketsInput contains the parameters for listing tickets.
type ListTicketsInput struct {
	Statuses []domain.Status // Keep only tickets in one of these statuses (empty = all)
}

// ListTicketsOutput contains the result of listing tickets.
type ListTicketsOutput struct {
	Tickets []domain.Ticket // Tickets ordered by id
}

// ListTickets is the use case for listing tickets.
type ListTickets struct {
	tickets domain.SnapshotRepository
}

// NewListTickets creates a new ListTickets use case.
func NewListTickets(tickets domain.SnapshotRepository) *ListTickets {
	return &ListTickets{tickets: tickets}
}

// Execute lists tickets matching the given input criteria.
func (uc *ListTickets) Execute(_ context.Context, in ListTicketsInput) (*ListTicketsOutput, error) {
	for _, s := range in.Statuses {
		if !s.IsValid() {
			return nil, invalidStatus(s)
		}
	}

	store, err := shared.LoadStore(uc.tickets)
	if err != nil {
		return nil, err
	}

	all := store.List()
	if len(in.Statuses) == 0 {
		return &ListTicketsOutput{Tickets: all}, nil
	}

	tickets := make([]domain.Ticket, 0, len(all))
	for _, t := range all {
		if containsStatus(in.Statuses, t.Status()) {
			tickets = append(tickets, t)
		}
	}
	return &ListTicketsOutput{Tickets: tickets}, nil
}

func containsStatus(statuses []domain.Status, s domain.Status) bool {
	for _, candidate := range statuses {
		if candidate == s {
			return true
		}
	}
	return false
}
