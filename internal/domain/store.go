package domain

import (
	"maps"
	"slices"
	"time"
)

// TicketStore is the in-memory aggregate that owns every ticket.
// It is not safe for concurrent use; one process holds one store, loaded at
// start and saved at the end.
type TicketStore struct {
	clock     Clock
	data      map[TicketID]Ticket
	currentID TicketID // Last issued id; the next one is currentID+1
}

// NewTicketStore returns an empty store using the system clock.
func NewTicketStore() *TicketStore {
	return NewTicketStoreWithClock(RealClock{})
}

// NewTicketStoreWithClock returns an empty store using the given clock.
func NewTicketStoreWithClock(clock Clock) *TicketStore {
	return &TicketStore{
		clock: clock,
		data:  make(map[TicketID]Ticket),
	}
}

// Create stores a new ticket built from draft and returns its id.
// The ticket starts in StatusToDo with no comments. A zero draft is not
// stored, consumes no id and yields 0.
func (s *TicketStore) Create(draft TicketDraft) TicketID {
	if draft.IsZero() {
		return 0
	}
	id := s.generateID()
	now := s.now()
	s.data[id] = Ticket{
		id:          id,
		title:       draft.title,
		description: draft.description,
		status:      StatusToDo,
		createdAt:   now,
		updatedAt:   now,
	}
	return id
}

// Get returns the ticket with the given id.
func (s *TicketStore) Get(id TicketID) (Ticket, bool) {
	t, ok := s.data[id]
	if !ok {
		return Ticket{}, false
	}
	return t.clone(), true
}

// List returns every stored ticket ordered by id.
func (s *TicketStore) List() []Ticket {
	ids := slices.Sorted(maps.Keys(s.data))
	tickets := make([]Ticket, 0, len(ids))
	for _, id := range ids {
		tickets = append(tickets, s.data[id].clone())
	}
	return tickets
}

// Len returns the number of stored tickets.
func (s *TicketStore) Len() int {
	return len(s.data)
}

// CurrentID returns the last id issued by the store (0 if none).
func (s *TicketStore) CurrentID() TicketID {
	return s.currentID
}

// Update applies the fields present in patch to the ticket.
// The id, status and comments are never touched.
func (s *TicketStore) Update(id TicketID, patch TicketPatch) (Ticket, bool) {
	t, ok := s.data[id]
	if !ok {
		return Ticket{}, false
	}
	if patch.Title != nil && !patch.Title.IsZero() {
		t.title = *patch.Title
	}
	if patch.Description != nil {
		t.description = *patch.Description
	}
	if !patch.IsEmpty() {
		t.updatedAt = s.now()
	}
	s.data[id] = t
	return t.clone(), true
}

// UpdateStatus replaces the status of the ticket.
// The bool is false when no ticket has the given id or status is not one of
// AllStatuses; the store is left untouched in both cases.
func (s *TicketStore) UpdateStatus(id TicketID, status Status) (Ticket, bool) {
	if !status.IsValid() {
		return Ticket{}, false
	}
	t, ok := s.data[id]
	if !ok {
		return Ticket{}, false
	}
	t.status = status
	t.updatedAt = s.now()
	s.data[id] = t
	return t.clone(), true
}

// AddComment validates raw and appends it to the ticket comments.
// A validation error leaves the store untouched. The bool is false when no
// ticket has the given id.
func (s *TicketStore) AddComment(id TicketID, raw string) (bool, error) {
	comment, err := NewComment(raw)
	if err != nil {
		return false, err
	}
	t, ok := s.data[id]
	if !ok {
		return false, nil
	}
	t.comments = append(slices.Clone(t.comments), comment)
	t.updatedAt = s.now()
	s.data[id] = t
	return true, nil
}

// Delete removes the ticket and returns it wrapped as a DeletedTicket.
// The id is never issued again.
func (s *TicketStore) Delete(id TicketID) (DeletedTicket, bool) {
	t, ok := s.data[id]
	if !ok {
		return DeletedTicket{}, false
	}
	delete(s.data, id)
	return DeletedTicket{ticket: t, deletedAt: s.now()}, true
}

func (s *TicketStore) generateID() TicketID {
	s.currentID++
	return s.currentID
}

func (s *TicketStore) now() time.Time {
	return s.clock.Now().UTC()
}
