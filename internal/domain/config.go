package domain

import (
	"bytes"
	_ "embed"
	"path/filepath"
	"text/template"
)

//go:embed config_template.toml
var configTemplateContent string

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string    `toml:"-"`
	Store    StoreConfig `toml:"store"`
	Log      LogConfig   `toml:"log"`
}

// StoreConfig holds settings for ticket persistence from [store] section.
type StoreConfig struct {
	Backend   string `toml:"backend,omitempty" validate:"omitempty,oneof=file git sqlite"` // Storage backend: "file" (default), "git" or "sqlite"
	Path      string `toml:"path,omitempty"`                                               // Snapshot path (file/sqlite backends)
	Format    string `toml:"format,omitempty" validate:"omitempty,oneof=yaml json cbor"`   // Snapshot format; empty = from file extension
	Namespace string `toml:"namespace,omitempty" validate:"omitempty,excludesall=/"`      // Git ref namespace (git backend)
	Encrypt   bool   `toml:"encrypt,omitempty"`                                            // Encrypt snapshot blobs (git backend)
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty" validate:"omitempty,oneof=debug info warn error"` // Log level: debug, info, warn, error
}

// Store backends.
const (
	BackendFile   = "file"
	BackendGit    = "git"
	BackendSQLite = "sqlite"
)

// Defaults.
const (
	DefaultBackend   = BackendFile
	DefaultNamespace = "ironjira"
	DefaultLogLevel  = "warn"
)

// Directory and file names for ironjira.
const (
	AppDirName       = "ironjira"          // Directory name for app data and config
	ConfigFileName   = "config.toml"       // Config file name
	EnvFileName      = ".env"              // Optional env file in the data directory
	SnapshotFileName = "ticket_store.yaml" // Default snapshot file name (file backend)
	DatabaseFileName = "ticket_store.db"   // Default database file name (sqlite backend)
	LogFileName      = "ironjira.log"      // Log file name in the data directory
)

// Environment variables read by the config loader.
const (
	EnvBackend       = "IRONJIRA_BACKEND"
	EnvStorePath     = "IRONJIRA_STORE_PATH"
	EnvFormat        = "IRONJIRA_FORMAT"
	EnvNamespace     = "IRONJIRA_NAMESPACE"
	EnvLogLevel      = "IRONJIRA_LOG_LEVEL"
	EnvEncryptionKey = "IRONJIRA_ENCRYPTION_KEY"
)

// RepoDataDir returns the repo-local data directory for a git directory.
func RepoDataDir(gitDir string) string {
	return filepath.Join(gitDir, AppDirName)
}

// GlobalConfigDir returns the global config directory.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the global config path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalConfigDir(configHome), ConfigFileName)
}

// UserDataDir returns the per-user data directory.
// dataHome is typically XDG_DATA_HOME or ~/.local/share (resolved by caller).
func UserDataDir(dataHome string) string {
	return filepath.Join(dataHome, AppDirName)
}

// LogPath returns the log file path inside a data directory.
func LogPath(dataDir string) string {
	return filepath.Join(dataDir, LogFileName)
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:   DefaultBackend,
			Namespace: DefaultNamespace,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// StorePath resolves the snapshot location for the configured backend.
// An explicit Store.Path wins; otherwise the default file name inside dataDir.
func (c *Config) StorePath(dataDir string) string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	if c.Store.Backend == BackendSQLite {
		return filepath.Join(dataDir, DatabaseFileName)
	}
	return filepath.Join(dataDir, SnapshotFileName)
}

// RenderConfigTemplate renders the commented config template with cfg's values.
func RenderConfigTemplate(cfg *Config) (string, error) {
	tmpl, err := template.New("config").Parse(configTemplateContent)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg); err != nil {
		return "", err
	}
	return buf.String(), nil
}
