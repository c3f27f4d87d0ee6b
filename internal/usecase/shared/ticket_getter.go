// Package shared holds helpers used by several use cases.
package shared

import (
	"fmt"

	"github.com/runoshun/ironjira/internal/domain"
)

// LoadStore loads the ticket store from the repository.
func LoadStore(repo domain.SnapshotRepository) (*domain.TicketStore, error) {
	store, err := repo.Load()
	if err != nil {
		return nil, fmt.Errorf("load tickets: %w", err)
	}
	return store, nil
}

// SaveStore writes the ticket store back to the repository.
func SaveStore(repo domain.SnapshotRepository, store *domain.TicketStore) error {
	if err := repo.Save(store); err != nil {
		return fmt.Errorf("save tickets: %w", err)
	}
	return nil
}

// GetTicket retrieves a ticket by ID and returns domain.ErrTicketNotFound if not found.
func GetTicket(store *domain.TicketStore, id domain.TicketID) (domain.Ticket, error) {
	ticket, ok := store.Get(id)
	if !ok {
		return domain.Ticket{}, NotFound(id)
	}
	return ticket, nil
}

// NotFound returns domain.ErrTicketNotFound annotated with the id.
func NotFound(id domain.TicketID) error {
	return fmt.Errorf("%w: #%d", domain.ErrTicketNotFound, id)
}
