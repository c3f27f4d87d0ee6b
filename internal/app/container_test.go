package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/ironjira/internal/domain"
	"github.com/runoshun/ironjira/internal/infra/crypto"
	"github.com/runoshun/ironjira/internal/infra/filestore"
	"github.com/runoshun/ironjira/internal/infra/gitstore"
	"github.com/runoshun/ironjira/internal/infra/sqlitestore"
	"github.com/runoshun/ironjira/internal/testutil"
	"github.com/runoshun/ironjira/internal/usecase"
)

// isolate points every config and data lookup at temporary directories.
func isolate(t *testing.T) string {
	t.Helper()
	for _, key := range []string{
		domain.EnvBackend, domain.EnvStorePath, domain.EnvFormat,
		domain.EnvNamespace, domain.EnvLogLevel, domain.EnvEncryptionKey,
	} {
		t.Setenv(key, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)
	return dataHome
}

func newContainer(t *testing.T, dir string, opts Options) *Container {
	t.Helper()
	c, err := New(dir, opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNew_OutsideGitRepository(t *testing.T) {
	dataHome := isolate(t)

	c := newContainer(t, t.TempDir(), Options{})

	assert.Empty(t, c.Config.RepoRoot)
	assert.Equal(t, filepath.Join(dataHome, "ironjira"), c.Config.DataDir)
	assert.Equal(t, filepath.Join(dataHome, "ironjira", domain.SnapshotFileName), c.Config.StorePath)
	assert.IsType(t, &filestore.Store{}, c.Tickets)
}

func TestNew_InsideGitRepository(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	_, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	sub := filepath.Join(dir, "pkg", "nested")
	require.NoError(t, os.MkdirAll(sub, 0o750))

	c := newContainer(t, sub, Options{})

	assert.Equal(t, dir, c.Config.RepoRoot)
	assert.Equal(t, filepath.Join(dir, ".git", "ironjira"), c.Config.DataDir)
}

func TestNew_BackendSelection(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	_, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	c := newContainer(t, dir, Options{Backend: domain.BackendSQLite})
	assert.IsType(t, &sqlitestore.Store{}, c.Tickets)
	assert.Equal(t, filepath.Join(dir, ".git", "ironjira", domain.DatabaseFileName), c.Config.StorePath)

	c = newContainer(t, dir, Options{Backend: domain.BackendGit})
	assert.IsType(t, &gitstore.Store{}, c.Tickets)
}

func TestNew_StorePathOverride(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "tickets.json")

	c := newContainer(t, t.TempDir(), Options{StorePath: path})

	assert.Equal(t, path, c.Config.StorePath)
	assert.Equal(t, path, c.Tickets.(*filestore.Store).Path())
}

func TestNew_GitBackendOutsideRepository(t *testing.T) {
	isolate(t)

	_, err := New(t.TempDir(), Options{Backend: domain.BackendGit})

	assert.ErrorIs(t, err, domain.ErrNotGitRepository)
}

func TestNew_InvalidBackendFlag(t *testing.T) {
	isolate(t)

	_, err := New(t.TempDir(), Options{Backend: "postgres"})

	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestNew_EncryptionRequiresKey(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	_, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	dataDir := filepath.Join(dir, ".git", "ironjira")
	require.NoError(t, os.MkdirAll(dataDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, domain.ConfigFileName),
		[]byte("[store]\nbackend = \"git\"\nencrypt = true\n"), 0o600))

	_, err = New(dir, Options{})
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, domain.EnvFileName),
		[]byte(domain.EnvEncryptionKey+"="+key+"\n"), 0o600))

	c := newContainer(t, dir, Options{})
	assert.IsType(t, &gitstore.Store{}, c.Tickets)
}

func TestContainer_UseCasesShareBackend(t *testing.T) {
	isolate(t)
	for _, backend := range []string{domain.BackendFile, domain.BackendSQLite, domain.BackendGit} {
		t.Run(backend, func(t *testing.T) {
			dir := t.TempDir()
			_, err := gogit.PlainInit(dir, false)
			require.NoError(t, err)
			ctx := context.Background()

			c := newContainer(t, dir, Options{Backend: backend})
			created, err := c.CreateTicketUseCase().Execute(ctx, usecase.CreateTicketInput{Title: "Fix bug"})
			require.NoError(t, err)
			_, err = c.MoveTicketUseCase().Execute(ctx, usecase.MoveTicketInput{
				TicketID: created.Ticket.ID(),
				Status:   domain.StatusDone,
			})
			require.NoError(t, err)

			// A fresh container sees the saved state.
			c = newContainer(t, dir, Options{Backend: backend})
			out, err := c.ShowTicketUseCase().Execute(ctx, usecase.ShowTicketInput{TicketID: created.Ticket.ID()})
			require.NoError(t, err)
			assert.Equal(t, domain.StatusDone, out.Ticket.Status())
		})
	}
}

func TestNewWithDeps(t *testing.T) {
	clock := &testutil.MockClock{}
	repo := testutil.NewMockSnapshotRepository(clock)
	logger := &testutil.MockLogger{}

	c := NewWithDeps(Config{DataDir: "/data"}, repo, clock, logger)

	assert.Same(t, repo, c.Tickets)
	assert.Equal(t, "/data", c.Config.DataDir)
	assert.NoError(t, c.Close())
	assert.NotNil(t, c.CreateTicketUseCase())
}
