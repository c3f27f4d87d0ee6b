package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/runoshun/ironjira/internal/app"
	"github.com/runoshun/ironjira/internal/infra/snapshot"
	"github.com/runoshun/ironjira/internal/usecase"
)

// newExportCommand creates the export command for writing a snapshot.
func newExportCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Format string
		Output string
	}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tickets as a snapshot",
		Long: `Write all tickets and the id counter as a YAML, JSON or CBOR snapshot.

Without --format the format follows the --output extension (YAML when
writing to stdout or for unknown extensions).

Examples:
  jira export > tickets.yaml
  jira export -o backup.cbor
  jira export --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			codec, err := snapshot.CodecForPath(opts.Format, opts.Output)
			if err != nil {
				return err
			}

			uc := c.ExportTicketsUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ExportTicketsInput{Codec: codec})
			if err != nil {
				return err
			}

			if opts.Output == "" || opts.Output == "-" {
				_, err = cmd.OutOrStdout().Write(out.Data)
				return err
			}

			if err := os.WriteFile(filepath.Clean(opts.Output), out.Data, 0o600); err != nil {
				return fmt.Errorf("write %s: %w", opts.Output, err)
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d tickets to %s\n", out.Count, opts.Output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Snapshot format: yaml, json or cbor")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

// newImportCommand creates the import command for loading a snapshot.
func newImportCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Format string
		Force  bool
	}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import tickets from a snapshot",
		Long: `Replace the ticket store with the contents of a snapshot.

Use "-" to read from stdin. The store must be empty unless --force is
given. Combined with --backend this migrates tickets between backends:

  jira export -o tickets.yaml
  jira --backend sqlite import tickets.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			codec, err := snapshot.CodecForPath(opts.Format, src)
			if err != nil {
				return err
			}

			var data []byte
			if src == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(filepath.Clean(src))
			}
			if err != nil {
				return fmt.Errorf("read %s: %w", src, err)
			}

			uc := c.ImportTicketsUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ImportTicketsInput{
				Codec: codec,
				Data:  data,
				Force: opts.Force,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tickets (next id #%d)\n", out.Count, out.CurrentID+1)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Snapshot format: yaml, json or cbor (default: from file extension)")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Replace existing tickets")

	return cmd
}
