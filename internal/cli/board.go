package cli

import (
	"github.com/spf13/cobra"

	"github.com/runoshun/ironjira/internal/app"
)

// newBoardCommand creates the board command for launching the interactive TUI.
// This is the same as running `jira` without arguments.
func newBoardCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "board",
		Aliases: []string{"tui"},
		Short:   "Open the interactive ticket board",
		Long: `Open the interactive board with one column per status.

Keys:
  ←/→ h/l   switch column        ↑/↓ k/j   select ticket
  L / H     move ticket right/left
  n         new ticket           c         comment
  d         delete               enter     toggle details
  r         refresh              q         quit`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchBoardFunc(c)
		},
	}
}
