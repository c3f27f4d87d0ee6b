// Package domain contains core business entities and interfaces.
package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// TicketID identifies a ticket within a store.
// IDs start at 1 and are never reused.
type TicketID uint64

// Ticket is a ticket held by a TicketStore.
// All fields are unexported: values are minted only by the store, so every
// live Ticket has passed validation and carries a unique id.
// Fields are ordered to minimize memory padding.
type Ticket struct {
	createdAt   time.Time
	updatedAt   time.Time
	title       Title
	description Description
	status      Status
	comments    []Comment
	id          TicketID
}

// ID returns the ticket identifier.
func (t Ticket) ID() TicketID { return t.id }

// Title returns the ticket title.
func (t Ticket) Title() Title { return t.title }

// Description returns the ticket description.
func (t Ticket) Description() Description { return t.description }

// Status returns the current status.
func (t Ticket) Status() Status { return t.status }

// CreatedAt returns when the ticket was created.
func (t Ticket) CreatedAt() time.Time { return t.createdAt }

// UpdatedAt returns when the ticket was last modified.
func (t Ticket) UpdatedAt() time.Time { return t.updatedAt }

// Comments returns a copy of the ticket comments in insertion order.
func (t Ticket) Comments() []Comment {
	return slices.Clone(t.comments)
}

// String renders the ticket for terminal output.
func (t Ticket) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s [%s]", t.id, t.title, t.status.Display())
	if !t.description.IsEmpty() {
		b.WriteString("\n")
		b.WriteString(t.description.String())
	}
	for _, c := range t.comments {
		fmt.Fprintf(&b, "\n  - %s", c)
	}
	return b.String()
}

// clone returns a copy that shares no mutable state with t.
func (t Ticket) clone() Ticket {
	t.comments = slices.Clone(t.comments)
	return t
}

// TicketDraft is ticket content that has not been stored yet.
// Only NewTicketDraft builds a usable draft.
type TicketDraft struct {
	title       Title
	description Description
}

// NewTicketDraft validates raw title and description into a draft.
func NewTicketDraft(title, description string) (TicketDraft, error) {
	t, err := NewTitle(title)
	if err != nil {
		return TicketDraft{}, err
	}
	d, err := NewDescription(description)
	if err != nil {
		return TicketDraft{}, err
	}
	return TicketDraft{title: t, description: d}, nil
}

// Title returns the draft title.
func (d TicketDraft) Title() Title { return d.title }

// Description returns the draft description.
func (d TicketDraft) Description() Description { return d.description }

// IsZero reports whether d was not built by NewTicketDraft.
func (d TicketDraft) IsZero() bool { return d.title.IsZero() }

// TicketPatch is a partial update of a ticket.
// A nil field, or a zero Title, leaves the stored value unchanged.
type TicketPatch struct {
	Title       *Title
	Description *Description
}

// IsEmpty reports whether the patch changes nothing.
func (p TicketPatch) IsEmpty() bool {
	return (p.Title == nil || p.Title.IsZero()) && p.Description == nil
}

// DeletedTicket is a ticket that has been removed from the store.
// It is a distinct type so it cannot be passed where a live Ticket is expected.
type DeletedTicket struct {
	deletedAt time.Time
	ticket    Ticket
}

// Ticket returns the content the ticket had when it was deleted.
func (d DeletedTicket) Ticket() Ticket { return d.ticket.clone() }

// DeletedAt returns when the ticket was deleted.
func (d DeletedTicket) DeletedAt() time.Time { return d.deletedAt }
