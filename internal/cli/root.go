// Package cli provides the command-line interface for ironjira.
package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/runoshun/ironjira/internal/app"
	"github.com/runoshun/ironjira/internal/tui"
)

// Command group IDs.
const (
	groupTicket = "ticket"
	groupSetup  = "setup"
)

// ContainerBuilder builds the container once global flags are parsed.
type ContainerBuilder func(opts app.Options) (*app.Container, error)

// launchBoardFunc launches the board TUI, allowing it to be mocked in tests.
var launchBoardFunc = launchBoard

// NewRootCommand creates the root command for ironjira.
// Subcommands share c, which PersistentPreRunE fills from build before any
// of them runs.
func NewRootCommand(build ContainerBuilder, version string) *cobra.Command {
	c := &app.Container{}
	var opts app.Options

	root := &cobra.Command{
		Use:   "jira",
		Short: "Single-user ticket tracker",
		Long: `ironjira keeps a small set of tickets (title, description, status,
comments) in a local snapshot.

Inside a git repository tickets live in .git/ironjira; elsewhere in
$XDG_DATA_HOME/ironjira. The snapshot backend is a YAML/JSON/CBOR file,
a git ref, or a SQLite database (see 'jira config').

Running jira without arguments opens the interactive board.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !needsContainer(cmd) {
				return nil
			}

			opts.Console = cmd.ErrOrStderr()
			built, err := build(opts)
			if err != nil {
				return err
			}
			*c = *built

			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if !needsContainer(cmd) {
				return nil
			}
			return c.Close()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchBoardFunc(c)
		},
	}

	root.PersistentFlags().StringVar(&opts.StorePath, "store", "", "Snapshot path (overrides store.path)")
	root.PersistentFlags().StringVar(&opts.Backend, "backend", "", "Storage backend: file, git or sqlite (overrides store.backend)")
	root.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "Log level: debug, info, warn or error (overrides log.level)")

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupTicket, Title: "Ticket Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	ticketCmds := []*cobra.Command{
		newCreateCommand(c),
		newListCommand(c),
		newShowCommand(c),
		newEditCommand(c),
		newMoveCommand(c),
		newCommentCommand(c),
		newDeleteCommand(c),
		newBoardCommand(c),
	}
	for _, cmd := range ticketCmds {
		cmd.GroupID = groupTicket
	}

	setupCmds := []*cobra.Command{
		newConfigCommand(c),
		newExportCommand(c),
		newImportCommand(c),
	}
	for _, cmd := range setupCmds {
		cmd.GroupID = groupSetup
	}

	root.AddCommand(ticketCmds...)
	root.AddCommand(setupCmds...)

	return root
}

// noContainerAnnotation marks commands that run without loading config or store.
const noContainerAnnotation = "ironjira/no-container"

// needsContainer reports whether cmd requires the container.
func needsContainer(cmd *cobra.Command) bool {
	for p := cmd; p != nil; p = p.Parent() {
		if p.Name() == "help" || p.Name() == "completion" {
			return false
		}
		if _, ok := p.Annotations[noContainerAnnotation]; ok {
			return false
		}
	}
	return true
}

// launchBoard runs the board TUI until the user quits.
func launchBoard(c *app.Container) error {
	p := tea.NewProgram(tui.New(c), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
