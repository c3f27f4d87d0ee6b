package domain

import "time"

// SnapshotRepository loads and saves a whole TicketStore.
// Implementations live under internal/infra.
type SnapshotRepository interface {
	// Load returns the persisted store, or an empty store if nothing has been
	// saved yet. A present but unreadable snapshot yields an error wrapping
	// ErrCorruptSnapshot.
	Load() (*TicketStore, error)

	// Save persists the complete state of store, replacing any previous snapshot.
	Save(store *TicketStore) error
}

// Codec converts a Snapshot to and from bytes.
type Codec interface {
	// Format returns the format name (e.g. "yaml").
	Format() string

	// Encode serializes the snapshot.
	Encode(snap Snapshot) ([]byte, error)

	// Decode parses data into a snapshot.
	Decode(data []byte) (Snapshot, error)
}

// ConfigLoader loads the application configuration.
type ConfigLoader interface {
	// Load returns the merged configuration (default <- global <- repo <- env).
	Load() (*Config, error)

	// GlobalConfigPath returns the path of the global config file.
	GlobalConfigPath() string
}

// Logger records what the application does.
// A zero id means the entry is not about a single ticket.
type Logger interface {
	Debug(id TicketID, category, msg string)
	Info(id TicketID, category, msg string)
	Warn(id TicketID, category, msg string)
	Error(id TicketID, category, msg string)
}

// ConfigInfo describes a config file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// ConfigManager inspects and creates config files.
type ConfigManager interface {
	// GetRepoConfigInfo returns information about the data directory config file.
	GetRepoConfigInfo() ConfigInfo

	// GetGlobalConfigInfo returns information about the global config file.
	GetGlobalConfigInfo() ConfigInfo

	// InitRepoConfig writes a commented template to the data directory config file.
	InitRepoConfig(cfg *Config) error

	// InitGlobalConfig writes a commented template to the global config file.
	InitGlobalConfig(cfg *Config) error
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
