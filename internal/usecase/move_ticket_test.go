package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/ironjira/internal/domain"
	"github.com/runoshun/ironjira/internal/testutil"
)

func TestMoveTicket_Execute(t *testing.T) {
	repo := newTestRepo()
	id := repo.Seed("Fix bug", "")
	logger := &testutil.MockLogger{}
	uc := NewMoveTicket(repo, logger)

	out, err := uc.Execute(context.Background(), MoveTicketInput{
		TicketID: id,
		Status:   domain.StatusInProgress,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusToDo, out.Previous)
	assert.Equal(t, domain.StatusInProgress, out.Ticket.Status())
	assert.Equal(t, 1, repo.SaveCalls)
	require.Len(t, logger.Entries, 1)
	assert.Equal(t, "status: ToDo -> InProgress", logger.Entries[0].Msg)
}

func TestMoveTicket_Execute_AnyTransitionAllowed(t *testing.T) {
	repo := newTestRepo()
	id := repo.Seed("Fix bug", "")
	uc := NewMoveTicket(repo, &testutil.MockLogger{})

	for _, s := range []domain.Status{domain.StatusDone, domain.StatusToDo, domain.StatusBlocked, domain.StatusBlocked} {
		out, err := uc.Execute(context.Background(), MoveTicketInput{TicketID: id, Status: s})
		require.NoError(t, err)
		assert.Equal(t, s, out.Ticket.Status())
	}
}

func TestMoveTicket_Execute_InvalidStatus(t *testing.T) {
	repo := newTestRepo()
	id := repo.Seed("Fix bug", "")
	uc := NewMoveTicket(repo, &testutil.MockLogger{})

	_, err := uc.Execute(context.Background(), MoveTicketInput{TicketID: id, Status: "Archived"})

	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	assert.Zero(t, repo.SaveCalls)
}

func TestMoveTicket_Execute_NotFound(t *testing.T) {
	repo := newTestRepo()
	uc := NewMoveTicket(repo, &testutil.MockLogger{})

	_, err := uc.Execute(context.Background(), MoveTicketInput{TicketID: 1, Status: domain.StatusDone})

	assert.ErrorIs(t, err, domain.ErrTicketNotFound)
	assert.Zero(t, repo.SaveCalls)
}
