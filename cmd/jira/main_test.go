package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/ironjira/internal/domain"
)

// isolate runs the test outside any git repository with private XDG dirs.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	for _, key := range []string{
		domain.EnvBackend, domain.EnvStorePath, domain.EnvFormat,
		domain.EnvNamespace, domain.EnvLogLevel, domain.EnvEncryptionKey,
	} {
		t.Setenv(key, "")
	}

	work := filepath.Join(dir, "work")
	require.NoError(t, os.MkdirAll(work, 0o750))
	t.Chdir(work)
	return dir
}

func TestRun_Version(t *testing.T) {
	var stdout bytes.Buffer

	err := run([]string{"--version"}, &stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), version)
}

func TestRun_CreateAndList(t *testing.T) {
	// Setup
	dir := isolate(t)

	// Execute
	var out bytes.Buffer
	require.NoError(t, run([]string{"create", "-t", "End to end"}, &out, &bytes.Buffer{}))
	require.NoError(t, run([]string{"move", "1", "done"}, &out, &bytes.Buffer{}))
	out.Reset()
	require.NoError(t, run([]string{"list"}, &out, &bytes.Buffer{}))

	// Assert
	assert.Contains(t, out.String(), "End to end")
	assert.Contains(t, out.String(), "Done")
	assert.FileExists(t, filepath.Join(dir, "data", domain.AppDirName, domain.SnapshotFileName))
}

func TestRun_UnknownTicket(t *testing.T) {
	isolate(t)

	err := run([]string{"show", "9"}, &bytes.Buffer{}, &bytes.Buffer{})

	assert.ErrorIs(t, err, domain.ErrTicketNotFound)
}

func TestRun_InvalidBackendFlag(t *testing.T) {
	isolate(t)

	err := run([]string{"--backend", "redis", "list"}, &bytes.Buffer{}, &bytes.Buffer{})

	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}
