package cli

import (
	"fmt"

	"github.com/safedep/presence/config"
	"github.com/safedep/presence/tui"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or modify configuration",
		Long: `View or modify configuration.

Subcommands allow viewing and modifying configuration values. Values are
validated before the config file is written.`,
	}

	cmd.AddCommand(
		newConfigShowCmd(),
		newConfigGetCmd(),
		newConfigSetCmd(),
		newConfigResetCmd(),
	)

	return cmd
}

// configManager opens the config file in effect without validating it, so
// a broken file can still be inspected and reset.
func configManager() (*config.Manager, error) {
	path := globalFlags.ConfigPath
	if path == "" {
		path = config.ResolvePaths().ConfigFile
	}

	m, err := config.NewManager(path)
	if err != nil {
		return nil, ErrConfig("failed to open configuration", err)
	}
	return m, nil
}

func newConfigShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := configManager()
			if err != nil {
				return err
			}

			format, _ := tui.ParseFormat(globalFlags.Format)
			presenter := tui.NewPresenter(format, tui.PresenterOptions{
				Writer:    cmd.OutOrStdout(),
				UseColors: !globalFlags.NoColor && tui.IsWriterTerminal(cmd.OutOrStdout()),
			})

			return presenter.RenderConfig(&tui.ConfigView{
				Location: m.ConfigPath(),
				Values:   m.AllSettings(),
			})
		},
	}

	return cmd
}

func newConfigGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get specific config value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			m, err := configManager()
			if err != nil {
				return err
			}

			if !m.HasKey(key) {
				return ErrInvalidInput(fmt.Sprintf("key not found: %s", key), nil)
			}

			fmt.Fprintln(cmd.OutOrStdout(), m.Get(key))
			return nil
		},
	}

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set config value",
		Example: `  presence config set presence.session_timeout_minutes 20
  presence config set display.timezone Europe/Berlin`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			m, err := configManager()
			if err != nil {
				return err
			}

			value := config.ParseValue(args[1])
			if err := m.Set(key, value); err != nil {
				return ErrInvalidInput(fmt.Sprintf("failed to set %s", key), err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, value)
			return nil
		},
	}

	return cmd
}

func newConfigResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset to default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := configManager()
			if err != nil {
				return err
			}

			if err := m.Reset(); err != nil {
				return ErrConfig("failed to reset configuration", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Configuration reset to defaults.")
			return nil
		},
	}

	return cmd
}
