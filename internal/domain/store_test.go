package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepClock returns a time that advances by one minute on every call.
type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(time.Minute)
	return t
}

var baseTime = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func newTestStore() *TicketStore {
	return NewTicketStoreWithClock(&stepClock{now: baseTime})
}

func mustDraft(t *testing.T, title, description string) TicketDraft {
	t.Helper()
	draft, err := NewTicketDraft(title, description)
	require.NoError(t, err)
	return draft
}

func TestTicketStore_New(t *testing.T) {
	store := NewTicketStore()

	assert.Equal(t, TicketID(0), store.CurrentID())
	assert.Equal(t, 0, store.Len())
	assert.Empty(t, store.List())
}

func TestTicketStore_CreateAssignsSequentialIDs(t *testing.T) {
	store := newTestStore()

	for i := 1; i <= 10; i++ {
		id := store.Create(mustDraft(t, "Ticket", ""))
		assert.Equal(t, TicketID(i), id)
	}
	assert.Equal(t, TicketID(10), store.CurrentID())
	assert.Equal(t, 10, store.Len())
}

func TestTicketStore_CreateThenGet(t *testing.T) {
	store := newTestStore()
	draft := mustDraft(t, "Fix bug", "It crashes on start")

	id := store.Create(draft)

	got, ok := store.Get(id)
	require.True(t, ok)
	assert.Equal(t, id, got.ID())
	assert.Equal(t, draft.Title(), got.Title())
	assert.Equal(t, draft.Description(), got.Description())
	assert.Equal(t, StatusToDo, got.Status())
	assert.Empty(t, got.Comments())
	assert.Equal(t, baseTime, got.CreatedAt())
	assert.Equal(t, baseTime, got.UpdatedAt())
}

func TestTicketStore_GetMissing(t *testing.T) {
	store := newTestStore()

	_, ok := store.Get(42)
	assert.False(t, ok)

	id := store.Create(mustDraft(t, "Gone soon", ""))
	_, ok = store.Delete(id)
	require.True(t, ok)

	_, ok = store.Get(id)
	assert.False(t, ok)
}

func TestTicketStore_Delete(t *testing.T) {
	store := newTestStore()
	id := store.Create(mustDraft(t, "To delete", "body"))
	inserted, ok := store.Get(id)
	require.True(t, ok)

	deleted, ok := store.Delete(id)

	require.True(t, ok)
	assert.Equal(t, inserted, deleted.Ticket())
	assert.Equal(t, baseTime.Add(time.Minute), deleted.DeletedAt())
	assert.Equal(t, 0, store.Len())
}

func TestTicketStore_DeleteMissingChangesNothing(t *testing.T) {
	store := newTestStore()
	store.Create(mustDraft(t, "Keep me", ""))
	before := store.Snapshot()

	_, ok := store.Delete(99)

	assert.False(t, ok)
	assert.Equal(t, before, store.Snapshot())
}

func TestTicketStore_IDsAreNeverReused(t *testing.T) {
	store := newTestStore()
	store.Create(mustDraft(t, "One", ""))
	second := store.Create(mustDraft(t, "Two", ""))

	_, ok := store.Delete(second)
	require.True(t, ok)

	third := store.Create(mustDraft(t, "Three", ""))
	assert.Equal(t, TicketID(3), third)
	assert.Equal(t, TicketID(3), store.CurrentID())
}

func TestTicketStore_ListReturnsAllTicketsOrderedByID(t *testing.T) {
	store := newTestStore()
	titles := []string{"alpha", "bravo", "charlie", "delta", "echo"}
	for _, title := range titles {
		store.Create(mustDraft(t, title, ""))
	}

	list := store.List()

	require.Len(t, list, len(titles))
	for i, ticket := range list {
		assert.Equal(t, TicketID(i+1), ticket.ID())
		assert.Equal(t, titles[i], ticket.Title().String())
	}
}

func TestTicketStore_UpdateWithEmptyPatchChangesNothing(t *testing.T) {
	store := newTestStore()
	id := store.Create(mustDraft(t, "Original", "Original body"))
	before, _ := store.Get(id)

	got, ok := store.Update(id, TicketPatch{})

	require.True(t, ok)
	assert.Equal(t, before, got)
	after, _ := store.Get(id)
	assert.Equal(t, before, after)
}

func TestTicketStore_UpdateReplacesOnlyPresentFields(t *testing.T) {
	store := newTestStore()
	id := store.Create(mustDraft(t, "Original", "Original body"))
	_, err := store.AddComment(id, "first")
	require.NoError(t, err)
	store.UpdateStatus(id, StatusBlocked)

	newTitle, err := NewTitle("Renamed")
	require.NoError(t, err)

	got, ok := store.Update(id, TicketPatch{Title: &newTitle})

	require.True(t, ok)
	assert.Equal(t, "Renamed", got.Title().String())
	assert.Equal(t, "Original body", got.Description().String())
	assert.Equal(t, StatusBlocked, got.Status())
	assert.Equal(t, id, got.ID())
	require.Len(t, got.Comments(), 1)
	assert.Equal(t, "first", got.Comments()[0].String())
	assert.True(t, got.UpdatedAt().After(got.CreatedAt()))

	newDesc, err := NewDescription("")
	require.NoError(t, err)
	got, ok = store.Update(id, TicketPatch{Description: &newDesc})
	require.True(t, ok)
	assert.Equal(t, "Renamed", got.Title().String())
	assert.True(t, got.Description().IsEmpty())
}

func TestTicketStore_UpdateMissing(t *testing.T) {
	store := newTestStore()
	title, err := NewTitle("x")
	require.NoError(t, err)

	_, ok := store.Update(7, TicketPatch{Title: &title})

	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestTicketStore_UpdateStatus(t *testing.T) {
	store := newTestStore()
	id := store.Create(mustDraft(t, "Ship it", "body"))
	before, _ := store.Get(id)

	got, ok := store.UpdateStatus(id, StatusDone)

	require.True(t, ok)
	assert.Equal(t, StatusDone, got.Status())
	assert.Equal(t, before.Title(), got.Title())
	assert.Equal(t, before.Description(), got.Description())
	assert.Equal(t, before.Comments(), got.Comments())

	_, ok = store.UpdateStatus(99, StatusDone)
	assert.False(t, ok)
}

func TestTicketStore_UpdateStatus_RejectsUnknownStatus(t *testing.T) {
	store := newTestStore()
	id := store.Create(mustDraft(t, "Ship it", ""))
	before, _ := store.Get(id)

	_, ok := store.UpdateStatus(id, Status("Archived"))

	assert.False(t, ok)
	after, _ := store.Get(id)
	assert.Equal(t, StatusToDo, after.Status())
	assert.Equal(t, before.UpdatedAt(), after.UpdatedAt())

	restored, err := RestoreTicketStore(store.Snapshot(), store.clock)
	require.NoError(t, err)
	assert.Equal(t, 1, restored.Len())
}

func TestTicketStore_Create_ZeroDraft(t *testing.T) {
	store := newTestStore()

	id := store.Create(TicketDraft{})

	assert.Equal(t, TicketID(0), id)
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, TicketID(0), store.CurrentID())
	assert.Equal(t, TicketID(1), store.Create(mustDraft(t, "Real", "")))
}

func TestTicketStore_Update_ZeroTitleKeepsTitle(t *testing.T) {
	store := newTestStore()
	id := store.Create(mustDraft(t, "Original", ""))
	before, _ := store.Get(id)

	got, ok := store.Update(id, TicketPatch{Title: &Title{}})

	require.True(t, ok)
	assert.Equal(t, "Original", got.Title().String())
	assert.Equal(t, before.UpdatedAt(), got.UpdatedAt())

	_, err := RestoreTicketStore(store.Snapshot(), store.clock)
	assert.NoError(t, err)
}

func TestTicketStore_AddComment(t *testing.T) {
	store := newTestStore()
	id := store.Create(mustDraft(t, "Discuss", ""))

	ok, err := store.AddComment(id, "hi")

	require.NoError(t, err)
	assert.True(t, ok)
	got, _ := store.Get(id)
	require.Len(t, got.Comments(), 1)
	assert.Equal(t, "hi", got.Comments()[0].String())
}

func TestTicketStore_AddEmptyCommentIsRejectedAtomically(t *testing.T) {
	store := newTestStore()
	id := store.Create(mustDraft(t, "Discuss", ""))
	_, err := store.AddComment(id, "existing")
	require.NoError(t, err)
	before, _ := store.Get(id)

	ok, err := store.AddComment(id, "")

	assert.ErrorIs(t, err, ErrEmptyComment)
	assert.False(t, ok)
	after, _ := store.Get(id)
	assert.Equal(t, before, after)
	assert.Len(t, after.Comments(), 1)
}

func TestTicketStore_AddCommentMissingTicket(t *testing.T) {
	store := newTestStore()

	ok, err := store.AddComment(5, "hello")
	assert.NoError(t, err)
	assert.False(t, ok)

	_, err = store.AddComment(5, "")
	assert.ErrorIs(t, err, ErrEmptyComment)
}

func TestTicketStore_ReturnedTicketsDoNotAliasStore(t *testing.T) {
	store := newTestStore()
	id := store.Create(mustDraft(t, "Immutable", ""))
	_, err := store.AddComment(id, "original")
	require.NoError(t, err)

	got, _ := store.Get(id)
	comments := got.Comments()
	comments[0], _ = NewComment("tampered")

	again, _ := store.Get(id)
	assert.Equal(t, "original", again.Comments()[0].String())
}

func TestTicketStore_ExampleScenario(t *testing.T) {
	s := newTestStore()

	id1 := s.Create(mustDraft(t, "Fix bug", ""))
	id2 := s.Create(mustDraft(t, "Write docs", "long text"))
	s.UpdateStatus(id1, StatusInProgress)
	s.Delete(id2)

	assert.Equal(t, TicketID(1), id1)
	assert.Equal(t, TicketID(2), id2)
	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, TicketID(1), list[0].ID())
	assert.Equal(t, "Fix bug", list[0].Title().String())
	assert.Equal(t, StatusInProgress, list[0].Status())
	_, ok := s.Get(2)
	assert.False(t, ok)
}

func TestTicket_String(t *testing.T) {
	store := newTestStore()
	id := store.Create(mustDraft(t, "Fix bug", "Steps to reproduce"))
	_, err := store.AddComment(id, "on it")
	require.NoError(t, err)

	got, _ := store.Get(id)

	assert.Equal(t, "#1 Fix bug [To Do]\nSteps to reproduce\n  - on it", got.String())
}
