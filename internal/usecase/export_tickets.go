package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/ironjira/internal/domain"
	"github.com/runoshun/ironjira/internal/usecase/shared"
)

// ExportTicketsInput contains the parameters for exporting tickets.
type ExportTicketsInput struct {
	Codec domain.Codec // Output format (required)
}

// ExportTicketsOutput contains the encoded snapshot.
type ExportTicketsOutput struct {
	Data  []byte
	Count int
}

// ExportTickets encodes the whole ticket store.
type ExportTickets struct {
	tickets domain.SnapshotRepository
}

// NewExportTickets creates a new ExportTickets use case.
func NewExportTickets(tickets domain.SnapshotRepository) *ExportTickets {
	return &ExportTickets{tickets: tickets}
}

// Execute encodes every ticket and the id counter with the given codec.
func (uc *ExportTickets) Execute(_ context.Context, in ExportTicketsInput) (*ExportTicketsOutput, error) {
	store, err := shared.LoadStore(uc.tickets)
	if err != nil {
		return nil, err
	}

	data, err := in.Codec.Encode(store.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", in.Codec.Format(), err)
	}
	return &ExportTicketsOutput{Data: data, Count: store.Len()}, nil
}
