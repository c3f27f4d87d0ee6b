// Package app provides the dependency injection container for the application.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/runoshun/ironjira/internal/domain"
	"github.com/runoshun/ironjira/internal/infra/config"
	"github.com/runoshun/ironjira/internal/infra/filestore"
	"github.com/runoshun/ironjira/internal/infra/git"
	"github.com/runoshun/ironjira/internal/infra/gitstore"
	"github.com/runoshun/ironjira/internal/infra/logging"
	"github.com/runoshun/ironjira/internal/infra/snapshot"
	"github.com/runoshun/ironjira/internal/infra/sqlitestore"
	"github.com/runoshun/ironjira/internal/usecase"
)

// Config holds the resolved application paths.
type Config struct {
	RepoRoot  string // Root directory of the git repository ("" outside a repository)
	GitDir    string // Path to .git directory ("" outside a repository)
	DataDir   string // Path to the data directory (.git/ironjira or $XDG_DATA_HOME/ironjira)
	StorePath string // Snapshot location for the file and sqlite backends
}

// Options are command line overrides applied on top of the loaded config.
type Options struct {
	Console   io.Writer // Log console output (nil = file log only)
	Backend   string    // Overrides store.backend
	StorePath string    // Overrides store.path
	LogLevel  string    // Overrides log.level
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Tickets       domain.SnapshotRepository
	Clock         domain.Clock
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Logger        domain.Logger

	// Pointer fields
	AppConfig *domain.Config
	closer    io.Closer

	// Configuration
	Config Config
}

// New creates a new Container for the given working directory.
// Inside a git repository the repo-local data directory is used; elsewhere
// the per-user data directory.
func New(dir string, opts Options) (*Container, error) {
	cfg := Config{}

	gitClient, err := git.NewClient(dir)
	switch {
	case err == nil:
		cfg.RepoRoot = gitClient.RepoRoot()
		cfg.GitDir = gitClient.GitDir()
		cfg.DataDir = domain.RepoDataDir(cfg.GitDir)
	case errors.Is(err, domain.ErrNotGitRepository):
		gitClient = nil
		cfg.DataDir = defaultUserDataDir()
	default:
		return nil, err
	}

	configLoader := config.NewLoader(cfg.DataDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, err
	}
	if err := applyOptions(appConfig, opts); err != nil {
		return nil, err
	}
	cfg.StorePath = appConfig.StorePath(cfg.DataDir)

	clock := domain.RealClock{}
	tickets, err := newTicketRepository(appConfig, cfg, gitClient, configLoader, clock)
	if err != nil {
		return nil, err
	}

	logger := logging.New(cfg.DataDir, logging.ParseLevel(appConfig.Log.Level), opts.Console)
	logger.Debug(0, "app", fmt.Sprintf("backend=%s data_dir=%s", appConfig.Store.Backend, cfg.DataDir))

	return &Container{
		Tickets:       tickets,
		Clock:         clock,
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(cfg.DataDir),
		Logger:        logger,
		AppConfig:     appConfig,
		closer:        logger,
		Config:        cfg,
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, tickets domain.SnapshotRepository, clock domain.Clock, logger domain.Logger) *Container {
	return &Container{
		Tickets:   tickets,
		Clock:     clock,
		Logger:    logger,
		AppConfig: domain.NewDefaultConfig(),
		Config:    cfg,
	}
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

// defaultUserDataDir returns $XDG_DATA_HOME/ironjira or ~/.local/share/ironjira.
func defaultUserDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return domain.AppDirName
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return domain.UserDataDir(dataHome)
}

// applyOptions overrides the loaded config with command line flags.
func applyOptions(cfg *domain.Config, opts Options) error {
	if opts.Backend != "" {
		cfg.Store.Backend = opts.Backend
	}
	if opts.StorePath != "" {
		cfg.Store.Path = opts.StorePath
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	return config.Validate(cfg)
}

// newTicketRepository selects the snapshot backend named by the config.
func newTicketRepository(
	appConfig *domain.Config,
	cfg Config,
	gitClient *git.Client,
	keys interface{ EncryptionKey() (string, error) },
	clock domain.Clock,
) (domain.SnapshotRepository, error) {
	switch appConfig.Store.Backend {
	case domain.BackendFile, "":
		codec, err := snapshot.CodecForPath(appConfig.Store.Format, cfg.StorePath)
		if err != nil {
			return nil, err
		}
		return filestore.New(cfg.StorePath, codec, clock), nil

	case domain.BackendGit:
		if gitClient == nil {
			return nil, fmt.Errorf("git backend: %w", domain.ErrNotGitRepository)
		}
		codec, err := snapshot.CodecFor(appConfig.Store.Format)
		if err != nil {
			return nil, err
		}
		var key string
		if appConfig.Store.Encrypt {
			key, err = keys.EncryptionKey()
			if err != nil {
				return nil, err
			}
			if key == "" {
				return nil, fmt.Errorf("%w: store.encrypt is set but %s is empty", domain.ErrInvalidConfig, domain.EnvEncryptionKey)
			}
		}
		return gitstore.NewWithRepo(gitClient.Repository(), appConfig.Store.Namespace, key, codec, clock)

	case domain.BackendSQLite:
		return sqlitestore.New(cfg.StorePath, clock), nil

	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownBackend, appConfig.Store.Backend)
	}
}

// UseCase factory methods

// CreateTicketUseCase returns a new CreateTicket use case.
func (c *Container) CreateTicketUseCase() *usecase.CreateTicket {
	return usecase.NewCreateTicket(c.Tickets, c.Logger)
}

// ShowTicketUseCase returns a new ShowTicket use case.
func (c *Container) ShowTicketUseCase() *usecase.ShowTicket {
	return usecase.NewShowTicket(c.Tickets)
}

// ListTicketsUseCase returns a new ListTickets use case.
func (c *Container) ListTicketsUseCase() *usecase.ListTickets {
	return usecase.NewListTickets(c.Tickets)
}

// EditTicketUseCase returns a new EditTicket use case.
func (c *Container) EditTicketUseCase() *usecase.EditTicket {
	return usecase.NewEditTicket(c.Tickets, c.Logger)
}

// MoveTicketUseCase returns a new MoveTicket use case.
func (c *Container) MoveTicketUseCase() *usecase.MoveTicket {
	return usecase.NewMoveTicket(c.Tickets, c.Logger)
}

// AddCommentUseCase returns a new AddComment use case.
func (c *Container) AddCommentUseCase() *usecase.AddComment {
	return usecase.NewAddComment(c.Tickets, c.Logger)
}

// DeleteTicketUseCase returns a new DeleteTicket use case.
func (c *Container) DeleteTicketUseCase() *usecase.DeleteTicket {
	return usecase.NewDeleteTicket(c.Tickets, c.Logger)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// ExportTicketsUseCase returns a new ExportTickets use case.
func (c *Container) ExportTicketsUseCase() *usecase.ExportTickets {
	return usecase.NewExportTickets(c.Tickets)
}

// ImportTicketsUseCase returns a new ImportTickets use case.
func (c *Container) ImportTicketsUseCase() *usecase.ImportTickets {
	return usecase.NewImportTickets(c.Tickets, c.Clock, c.Logger)
}
