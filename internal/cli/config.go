package cli

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/runoshun/ironjira/internal/app"
	"github.com/runoshun/ironjira/internal/domain"
	"github.com/runoshun/ironjira/internal/infra/crypto"
	"github.com/runoshun/ironjira/internal/usecase"
)

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Manage ironjira configuration files and settings.

Sources, later ones taking precedence:
  1. ~/.config/ironjira/config.toml (global)
  2. <data dir>/config.toml         (repository)
  3. <data dir>/.env                (IRONJIRA_* variables)
  4. process environment            (IRONJIRA_* variables)
  5. --backend, --store, --log-level flags`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newConfigShowCommand(c))
	cmd.AddCommand(newConfigTemplateCommand())
	cmd.AddCommand(newConfigInitCommand(c))
	cmd.AddCommand(newConfigKeygenCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display effective configuration after merging all sources.

Shows which config files were loaded, the resolved snapshot location and
the final merged configuration. Command line flags are not included.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.ShowConfigUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowConfigInput{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()

			_, _ = fmt.Fprintln(w, "[Loaded from]")
			printConfigInfo(w, out.GlobalConfig)
			printConfigInfo(w, out.RepoConfig)
			_, _ = fmt.Fprintln(w)

			_, _ = fmt.Fprintln(w, "[Data]")
			_, _ = fmt.Fprintf(w, "dir   = %s\n", c.Config.DataDir)
			if c.Config.StorePath != "" {
				_, _ = fmt.Fprintf(w, "store = %s\n", c.Config.StorePath)
			}
			_, _ = fmt.Fprintln(w)

			_, _ = fmt.Fprintln(w, "[Effective Config]")
			return formatEffectiveConfig(w, out.Effective)
		},
	}
}

func printConfigInfo(w io.Writer, info domain.ConfigInfo) {
	if info.Path == "" {
		return
	}
	if info.Exists {
		_, _ = fmt.Fprintf(w, "- %s\n", info.Path)
	} else {
		_, _ = fmt.Fprintf(w, "- %s (not found)\n", info.Path)
	}
}

// formatEffectiveConfig writes cfg in TOML format.
func formatEffectiveConfig(w io.Writer, cfg *domain.Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// newConfigTemplateCommand creates the config template subcommand.
// It does not read any config file, so it works even if they are broken.
func newConfigTemplateCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "template",
		Short:       "Output configuration template",
		Long:        `Output the default configuration file template to stdout.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{noContainerAnnotation: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			content, err := domain.RenderConfigTemplate(domain.NewDefaultConfig())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		},
	}
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(c *app.Container) *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file",
		Long: `Create a configuration file with default values.

By default the file is created in the data directory. Use --global to
create ~/.config/ironjira/config.toml instead. Existing files are never
overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.InitConfigUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.InitConfigInput{
				Config: domain.NewDefaultConfig(),
				Global: global,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config: %s\n", out.Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Create the global config instead of the repository config")

	return cmd
}

// newConfigKeygenCommand creates the config keygen subcommand.
func newConfigKeygenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a snapshot encryption key",
		Long: `Print a random 256-bit key for encrypting git snapshots.

Store it in <data dir>/.env or the environment:

  IRONJIRA_ENCRYPTION_KEY=<key>

then set encrypt = true in the [store] section.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{noContainerAnnotation: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := crypto.GenerateKey()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
}
