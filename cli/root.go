// Package cli provides the command-line interface for presence.
package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/safedep/dry/log"
	"github.com/safedep/presence/config"
	"github.com/safedep/presence/core/report"
	"github.com/safedep/presence/internal/version"
	"github.com/safedep/presence/storage"
	"github.com/safedep/presence/tui"
	"github.com/spf13/cobra"
)

// nowFunc is the clock every command evaluates against.
var nowFunc = time.Now

// App holds the application dependencies.
type App struct {
	Config    *config.Config
	Store     storage.Store
	Reporter  *report.Reporter
	Presenter tui.Presenter
	Paths     *config.Paths
	Format    tui.Format
}

// NewApp creates a new App with the given configuration, rendering to out.
func NewApp(cfg *config.Config, out io.Writer, format tui.Format) *App {
	presenter := tui.NewPresenter(format, tui.PresenterOptions{
		Writer:    out,
		UseColors: cfg.ShouldUseColors(),
		Verbose:   globalFlags.Verbose,
		Location:  cfg.Location(),
	})

	return &App{
		Config:    cfg,
		Presenter: presenter,
		Paths:     config.ResolvePaths(),
		Format:    format,
	}
}

// ConfigFile returns the config file in effect.
func (a *App) ConfigFile() string {
	if globalFlags.ConfigPath != "" {
		return globalFlags.ConfigPath
	}
	return a.Paths.ConfigFile
}

// InitStore opens the database and builds the reporter on top of it.
func (a *App) InitStore(ctx context.Context) error {
	dbPath := a.Config.GetDatabasePath()
	store, err := storage.NewSQLiteStore(dbPath,
		storage.WithDefaultSessionTimeout(a.Config.Presence.SessionTimeoutMinutes))
	if err != nil {
		return ErrDatabase("failed to open database", err)
	}
	if err := store.Init(ctx); err != nil {
		_ = store.Close()
		return ErrDatabase("failed to initialize database", err)
	}

	log.Debugf("opened database at %s", dbPath)

	a.Store = store
	a.Reporter = report.New(report.Options{
		Source:   store,
		Calendar: a.Config.Calendar(),
		Lookback: a.Config.Lookback(),
		Clock:    nowFunc,
		Workers:  a.Config.Presence.Workers,
	})
	return nil
}

// Close closes the application resources.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// closeApp closes the app, logging instead of returning a failure.
func closeApp(app *App) {
	if err := app.Close(); err != nil {
		log.Errorf("failed to close app: %v", err)
	}
}

// GlobalFlags holds the global command flags.
type GlobalFlags struct {
	ConfigPath string
	Verbose    bool
	NoColor    bool
	Format     string
}

var globalFlags GlobalFlags

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "presence",
		Short: "Office presence tracking and attendance reports",
		Long: `Presence records office presence pings and turns them into sessions.

Sessions are reconstructed on every read from the raw IN_OFFICE and
OUT_OF_OFFICE events using a tenant-wide inactivity timeout, then clipped
to calendar windows for attendance reports.`,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if os.Getenv("NO_COLOR") != "" {
				globalFlags.NoColor = true
			}

			if os.Getenv("PRESENCE_NO_COLOR") != "" {
				globalFlags.NoColor = true
			}

			if _, ok := tui.ParseFormat(globalFlags.Format); !ok {
				return ErrInvalidInput("unknown output format: "+globalFlags.Format, nil)
			}

			setupInternalLogger()

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&globalFlags.ConfigPath, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().StringVarP(&globalFlags.Format, "format", "f", string(tui.FormatTable), "output format: table, json, jsonl, csv")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Verbose, "verbose", "v", false, "increase output verbosity")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.NoColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(
		NewUserCmd(),
		NewRecordCmd(),
		NewEmployeesCmd(),
		NewEmployeeCmd(),
		NewOverviewCmd(),
		NewSessionsCmd(),
		NewDashboardCmd(),
		NewWatchCmd(),
		NewPolicyCmd(),
		NewRetentionCmd(),
		NewConfigCmd(),
		NewStatusCmd(),
		NewDoctorCmd(),
		NewVersionCmd(),
	)

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// setupInternalLogger sets up the DRY logger
func setupInternalLogger() {
	// Always skip the stdout logger since we are running in a CLI context.
	// with our own TUI.
	_ = os.Setenv("APP_LOG_SKIP_STDOUT_LOGGER", "true")

	log.Init("presence", "cli")
}

// loadApp loads configuration and builds an App writing to the command's
// output.
func loadApp(cmd *cobra.Command) (*App, error) {
	cfg, err := config.Load(globalFlags.ConfigPath)
	if err != nil {
		return nil, ErrConfig("failed to load configuration", err)
	}

	if globalFlags.NoColor {
		cfg.Display.Colors = config.ColorNever
	}

	format, _ := tui.ParseFormat(globalFlags.Format)
	return NewApp(cfg, cmd.OutOrStdout(), format), nil
}

// openApp loads the App and opens its store.
func openApp(cmd *cobra.Command) (*App, error) {
	app, err := loadApp(cmd)
	if err != nil {
		return nil, err
	}
	if err := app.InitStore(cmd.Context()); err != nil {
		return nil, err
	}
	return app, nil
}

// withSpinner runs a report behind a spinner on stderr when rendering a
// table.
func withSpinner[T any](app *App, message string, fn func() (T, error)) (T, error) {
	return tui.RunWithSpinner(message, fn, tui.WithEnabled(app.Format == tui.FormatTable))
}
