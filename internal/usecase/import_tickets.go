package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/ironjira/internal/domain"
	"github.com/runoshun/ironjira/internal/usecase/shared"
)

// ImportTicketsInput contains the parameters for importing tickets.
type ImportTicketsInput struct {
	Codec domain.Codec // Input format (required)
	Data  []byte       // Encoded snapshot
	Force bool         // Replace a non-empty store
}

// ImportTicketsOutput contains the result of importing tickets.
type ImportTicketsOutput struct {
	Count     int             // Number of imported tickets
	CurrentID domain.TicketID // Id counter after the import
}

// ImportTickets replaces the ticket store with a decoded snapshot.
// It is how tickets move between backends.
type ImportTickets struct {
	tickets domain.SnapshotRepository
	clock   domain.Clock
	logger  domain.Logger
}

// NewImportTickets creates a new ImportTickets use case.
func NewImportTickets(tickets domain.SnapshotRepository, clock domain.Clock, logger domain.Logger) *ImportTickets {
	return &ImportTickets{
		tickets: tickets,
		clock:   clock,
		logger:  logger,
	}
}

// Execute decodes and validates the snapshot, then saves it over the current store.
// A non-empty store is only replaced when Force is set.
func (uc *ImportTickets) Execute(_ context.Context, in ImportTicketsInput) (*ImportTicketsOutput, error) {
	snap, err := in.Codec.Decode(in.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", domain.ErrCorruptSnapshot, in.Codec.Format(), err)
	}
	imported, err := domain.RestoreTicketStore(snap, uc.clock)
	if err != nil {
		return nil, err
	}

	current, err := shared.LoadStore(uc.tickets)
	if err != nil {
		return nil, err
	}
	// A store whose tickets were all deleted still owns the ids it issued.
	if current.CurrentID() > 0 && !in.Force {
		return nil, fmt.Errorf("%w: %d tickets present, %d ids issued (use force to replace)",
			domain.ErrStoreNotEmpty, current.Len(), current.CurrentID())
	}

	if err := shared.SaveStore(uc.tickets, imported); err != nil {
		return nil, err
	}

	uc.logger.Info(0, "ticket", fmt.Sprintf("imported %d tickets (current_id=%d)", imported.Len(), imported.CurrentID()))
	return &ImportTicketsOutput{Count: imported.Len(), CurrentID: imported.CurrentID()}, nil
}
