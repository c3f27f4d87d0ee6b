package cli

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/ironjira/internal/app"
	"github.com/runoshun/ironjira/internal/domain"
	"github.com/runoshun/ironjira/internal/testutil"
)

func newConfigTestContainer(manager *testutil.MockConfigManager) *app.Container {
	c := newTestContainer(newTestRepo())
	c.ConfigLoader = &testutil.MockConfigLoader{}
	c.ConfigManager = manager
	c.Config.DataDir = "/repo/.git/ironjira"
	c.Config.StorePath = "/repo/.git/ironjira/ticket_store.yaml"
	return c
}

func TestConfigCommand_NoSubcommand_ShowsHelp(t *testing.T) {
	// Setup
	cmd := newConfigCommand(newConfigTestContainer(&testutil.MockConfigManager{}))
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "show")
	assert.Contains(t, out, "init")
	assert.Contains(t, out, "keygen")
}

func TestConfigShowCommand_DisplaysEffectiveConfig(t *testing.T) {
	// Setup
	manager := &testutil.MockConfigManager{
		GlobalInfo: domain.ConfigInfo{Path: "/home/u/.config/ironjira/config.toml"},
		RepoInfo:   domain.ConfigInfo{Path: "/repo/.git/ironjira/config.toml", Exists: true},
	}
	cmd := newConfigShowCommand(newConfigTestContainer(manager))
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "[Loaded from]")
	assert.Contains(t, out, "- /home/u/.config/ironjira/config.toml (not found)")
	assert.Contains(t, out, "- /repo/.git/ironjira/config.toml\n")
	assert.Contains(t, out, "store = /repo/.git/ironjira/ticket_store.yaml")
	assert.Contains(t, out, "[Effective Config]")
	assert.Contains(t, out, "[store]")
	assert.Contains(t, out, "backend")
	assert.Contains(t, out, "[log]")
}

func TestConfigTemplateCommand_OutputsTemplate(t *testing.T) {
	// Setup
	cmd := newConfigTemplateCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "# ironjira configuration")
	assert.Contains(t, buf.String(), `backend = "file"`)
}

func TestConfigInitCommand_CreatesRepoConfig(t *testing.T) {
	// Setup
	manager := &testutil.MockConfigManager{
		RepoInfo: domain.ConfigInfo{Path: "/repo/.git/ironjira/config.toml"},
	}
	cmd := newConfigInitCommand(newConfigTestContainer(manager))
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	assert.True(t, manager.InitRepoCalled)
	assert.False(t, manager.InitGlobalCalled)
	require.NotNil(t, manager.RepoInitConfig)
	assert.Equal(t, domain.DefaultBackend, manager.RepoInitConfig.Store.Backend)
	assert.Contains(t, buf.String(), "Created config: /repo/.git/ironjira/config.toml")
}

func TestConfigInitCommand_WithGlobalFlag(t *testing.T) {
	// Setup
	manager := &testutil.MockConfigManager{
		GlobalInfo: domain.ConfigInfo{Path: "/home/u/.config/ironjira/config.toml"},
	}
	cmd := newConfigInitCommand(newConfigTestContainer(manager))
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--global"})

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	assert.True(t, manager.InitGlobalCalled)
	assert.False(t, manager.InitRepoCalled)
	assert.Contains(t, buf.String(), "/home/u/.config/ironjira/config.toml")
}

func TestConfigInitCommand_ErrorIfFileExists(t *testing.T) {
	// Setup
	manager := &testutil.MockConfigManager{
		InitRepoErr: domain.ErrConfigExists,
		RepoInfo:    domain.ConfigInfo{Path: "/repo/.git/ironjira/config.toml", Exists: true},
	}
	cmd := newConfigInitCommand(newConfigTestContainer(manager))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	// Execute
	err := cmd.Execute()

	// Assert
	assert.ErrorIs(t, err, domain.ErrConfigExists)
	assert.Contains(t, err.Error(), "/repo/.git/ironjira/config.toml")
}

func TestConfigKeygenCommand_PrintsKey(t *testing.T) {
	// Setup
	cmd := newConfigKeygenCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	key, err := hex.DecodeString(strings.TrimSpace(buf.String()))
	require.NoError(t, err)
	assert.Len(t, key, 32)
}

func TestConfigKeygenCommand_RunsWithoutContainer(t *testing.T) {
	// Setup
	var calls []app.Options
	root := NewRootCommand(stubBuilder(nil, &calls), "test-version")
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"config", "keygen"})

	// Execute
	err := root.Execute()

	// Assert
	require.NoError(t, err)
	assert.Empty(t, calls)
	assert.NotEmpty(t, strings.TrimSpace(buf.String()))
}
