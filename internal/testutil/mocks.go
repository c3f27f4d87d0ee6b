// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"fmt"
	"time"

	"github.com/runoshun/ironjira/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// Ensure mocks implement their interfaces.
var (
	_ domain.Clock              = (*MockClock)(nil)
	_ domain.SnapshotRepository = (*MockSnapshotRepository)(nil)
	_ domain.ConfigLoader       = (*MockConfigLoader)(nil)
	_ domain.ConfigManager      = (*MockConfigManager)(nil)
	_ domain.Logger             = (*MockLogger)(nil)
)

// MockSnapshotRepository is a test double for domain.SnapshotRepository.
// Save keeps the saved store so the next Load returns it.
// Fields are ordered to minimize memory padding.
type MockSnapshotRepository struct {
	Store     *domain.TicketStore
	Clock     domain.Clock
	LoadErr   error
	SaveErr   error
	LoadCalls int
	SaveCalls int
}

// NewMockSnapshotRepository creates a repository holding an empty store.
func NewMockSnapshotRepository(clock domain.Clock) *MockSnapshotRepository {
	return &MockSnapshotRepository{
		Store: domain.NewTicketStoreWithClock(clock),
		Clock: clock,
	}
}

// Load returns the held store.
func (m *MockSnapshotRepository) Load() (*domain.TicketStore, error) {
	m.LoadCalls++
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Store == nil {
		m.Store = domain.NewTicketStoreWithClock(m.Clock)
	}
	return m.Store, nil
}

// Save records the store.
func (m *MockSnapshotRepository) Save(store *domain.TicketStore) error {
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Store = store
	return nil
}

// Seed creates a ticket in the held store and returns its id.
func (m *MockSnapshotRepository) Seed(title, description string) domain.TicketID {
	draft, err := domain.NewTicketDraft(title, description)
	if err != nil {
		panic(fmt.Sprintf("seed ticket %q: %v", title, err))
	}
	if m.Store == nil {
		m.Store = domain.NewTicketStoreWithClock(m.Clock)
	}
	return m.Store.Create(draft)
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config     *domain.Config
	LoadErr    error
	GlobalPath string
}

// Load returns the configured config, or defaults when none is set.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Config == nil {
		return domain.NewDefaultConfig(), nil
	}
	return m.Config, nil
}

// GlobalConfigPath returns the configured path.
func (m *MockConfigLoader) GlobalConfigPath() string {
	return m.GlobalPath
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitRepoErr      error
	InitGlobalErr    error
	RepoInitConfig   *domain.Config
	GlobalInitConfig *domain.Config
	RepoInfo         domain.ConfigInfo
	GlobalInfo       domain.ConfigInfo
	InitRepoCalled   bool
	InitGlobalCalled bool
}

// GetRepoConfigInfo returns the configured repo info.
func (m *MockConfigManager) GetRepoConfigInfo() domain.ConfigInfo {
	return m.RepoInfo
}

// GetGlobalConfigInfo returns the configured global info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalInfo
}

// InitRepoConfig records the call.
func (m *MockConfigManager) InitRepoConfig(cfg *domain.Config) error {
	m.InitRepoCalled = true
	m.RepoInitConfig = cfg
	return m.InitRepoErr
}

// InitGlobalConfig records the call.
func (m *MockConfigManager) InitGlobalConfig(cfg *domain.Config) error {
	m.InitGlobalCalled = true
	m.GlobalInitConfig = cfg
	return m.InitGlobalErr
}

// LogEntry is a single entry recorded by MockLogger.
type LogEntry struct {
	Level    string
	Category string
	Msg      string
	ID       domain.TicketID
}

// MockLogger is a test double for domain.Logger that records entries.
type MockLogger struct {
	Entries []LogEntry
}

func (m *MockLogger) record(level string, id domain.TicketID, category, msg string) {
	m.Entries = append(m.Entries, LogEntry{Level: level, ID: id, Category: category, Msg: msg})
}

// Debug records a debug entry.
func (m *MockLogger) Debug(id domain.TicketID, category, msg string) {
	m.record("DEBUG", id, category, msg)
}

// Info records an info entry.
func (m *MockLogger) Info(id domain.TicketID, category, msg string) {
	m.record("INFO", id, category, msg)
}

// Warn records a warning entry.
func (m *MockLogger) Warn(id domain.TicketID, category, msg string) {
	m.record("WARN", id, category, msg)
}

// Error records an error entry.
func (m *MockLogger) Error(id domain.TicketID, category, msg string) {
	m.record("ERROR", id, category, msg)
}
