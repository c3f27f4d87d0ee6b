package domain

import (
	"errors"
	"fmt"
	"time"
)

// Snapshot is the persisted form of a TicketStore.
// Backends and codecs only ever see this plain shape; turning it back into a
// store goes through RestoreTicketStore, which revalidates every field.
type Snapshot struct {
	Data      map[TicketID]TicketRecord `yaml:"data" json:"data"`
	CurrentID TicketID                  `yaml:"current_id" json:"current_id"`
}

// TicketRecord is the persisted form of a Ticket.
// Fields are ordered to minimize memory padding.
type TicketRecord struct {
	CreatedAt   time.Time `yaml:"created_at" json:"created_at"`
	UpdatedAt   time.Time `yaml:"updated_at" json:"updated_at"`
	Title       string    `yaml:"title" json:"title"`
	Description string    `yaml:"description" json:"description"`
	Status      Status    `yaml:"status" json:"status"`
	Comments    []string  `yaml:"comments" json:"comments"`
	ID          TicketID  `yaml:"id" json:"id"`
}

// Snapshot returns the complete persisted form of the store.
func (s *TicketStore) Snapshot() Snapshot {
	snap := Snapshot{
		CurrentID: s.currentID,
		Data:      make(map[TicketID]TicketRecord, len(s.data)),
	}
	for id, t := range s.data {
		comments := make([]string, 0, len(t.comments))
		for _, c := range t.comments {
			comments = append(comments, c.String())
		}
		snap.Data[id] = TicketRecord{
			ID:          t.id,
			Title:       t.title.String(),
			Description: t.description.String(),
			Status:      t.status,
			Comments:    comments,
			CreatedAt:   t.createdAt,
			UpdatedAt:   t.updatedAt,
		}
	}
	return snap
}

// RestoreTicketStore rebuilds a store from a snapshot.
// Any record that could not have been produced by the store (invalid
// content, unknown status, mismatched or out-of-range id) is rejected with an
// error wrapping ErrCorruptSnapshot.
func RestoreTicketStore(snap Snapshot, clock Clock) (*TicketStore, error) {
	store := NewTicketStoreWithClock(clock)
	store.currentID = snap.CurrentID

	for key, rec := range snap.Data {
		t, err := restoreTicket(key, rec, snap.CurrentID)
		if err != nil {
			return nil, fmt.Errorf("%w: ticket %d: %w", ErrCorruptSnapshot, key, err)
		}
		store.data[key] = t
	}
	return store, nil
}

func restoreTicket(key TicketID, rec TicketRecord, currentID TicketID) (Ticket, error) {
	if key == 0 {
		return Ticket{}, errors.New("id 0 is never issued")
	}
	if rec.ID != key {
		return Ticket{}, fmt.Errorf("id %d does not match key", rec.ID)
	}
	if key > currentID {
		return Ticket{}, fmt.Errorf("id is greater than current_id %d", currentID)
	}
	if !rec.Status.IsValid() {
		return Ticket{}, fmt.Errorf("%w: %q", ErrInvalidStatus, rec.Status)
	}

	title, err := NewTitle(rec.Title)
	if err != nil {
		return Ticket{}, err
	}
	description, err := NewDescription(rec.Description)
	if err != nil {
		return Ticket{}, err
	}

	var comments []Comment
	for _, raw := range rec.Comments {
		c, err := NewComment(raw)
		if err != nil {
			return Ticket{}, err
		}
		comments = append(comments, c)
	}

	return Ticket{
		id:          key,
		title:       title,
		description: description,
		status:      rec.Status,
		comments:    comments,
		createdAt:   rec.CreatedAt.UTC(),
		updatedAt:   rec.UpdatedAt.UTC(),
	}, nil
}
