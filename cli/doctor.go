package cli

import (
	"fmt"
	"os"

	"github.com/safedep/presence/config"
	"github.com/safedep/presence/core/events"
	"github.com/safedep/presence/core/session"
	"github.com/safedep/presence/tui"
	"github.com/spf13/cobra"
)

// NewDoctorCmd creates the doctor command.
func NewDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration and data issues",
		Long: `Diagnose configuration and data issues.

Performs various health checks:
- Config file exists and is valid
- Database opens and its schema is initialized
- Inactivity timeout is positive and within the lookback
- Retention keeps at least the lookback of history
- At least one active employee is tracked`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := tui.ParseFormat(globalFlags.Format)
			presenter := tui.NewPresenter(format, tui.PresenterOptions{
				Writer:    cmd.OutOrStdout(),
				UseColors: !globalFlags.NoColor && tui.IsWriterTerminal(cmd.OutOrStdout()),
			})

			view := &tui.DoctorView{AllOK: true}
			add := func(check tui.DoctorCheck) {
				if check.Status == tui.CheckFail {
					view.AllOK = false
				}
				view.Checks = append(view.Checks, check)
			}

			cfg, check := checkConfig()
			add(check)
			if cfg == nil {
				return presenter.RenderDoctor(view)
			}

			app := NewApp(cfg, cmd.OutOrStdout(), format)
			app.Presenter = presenter

			dbCheck := tui.DoctorCheck{Name: "Database"}
			if err := app.InitStore(cmd.Context()); err != nil {
				dbCheck.Status = tui.CheckFail
				dbCheck.Message = err.Error()
				dbCheck.Suggestion = "Check storage.path and file permissions"
				add(dbCheck)
				return presenter.RenderDoctor(view)
			}
			defer closeApp(app)

			dbCheck.Status = tui.CheckOK
			dbCheck.Message = cfg.GetDatabasePath()
			add(dbCheck)

			add(checkPolicy(cmd, app))
			add(checkRetention(app))
			add(checkUsers(cmd, app))

			return presenter.RenderDoctor(view)
		},
	}

	return cmd
}

func checkConfig() (*config.Config, tui.DoctorCheck) {
	check := tui.DoctorCheck{Name: "Config file"}

	path := globalFlags.ConfigPath
	if path == "" {
		path = config.ResolvePaths().ConfigFile
	}

	cfg, err := config.Load(globalFlags.ConfigPath)
	switch {
	case err != nil:
		check.Status = tui.CheckFail
		check.Message = err.Error()
		check.Suggestion = "Fix the value or run 'presence config reset'"
		return nil, check
	case fileMissing(path):
		check.Status = tui.CheckWarn
		check.Message = "Config file not found (using defaults)"
		check.Suggestion = "Run 'presence config set' to create"
	default:
		check.Status = tui.CheckOK
		check.Message = path
	}

	if globalFlags.NoColor {
		cfg.Display.Colors = config.ColorNever
	}
	return cfg, check
}

func checkPolicy(cmd *cobra.Command, app *App) tui.DoctorCheck {
	check := tui.DoctorCheck{Name: "Session timeout"}

	minutes, err := app.Store.SessionTimeoutMinutes(cmd.Context())
	limit := app.Config.Presence.LookbackHours * 60
	switch {
	case err != nil:
		check.Status = tui.CheckFail
		check.Message = err.Error()
	case minutes <= 0:
		check.Status = tui.CheckFail
		check.Message = fmt.Sprintf("%v: %d minutes", session.ErrInvalidPolicy, minutes)
		check.Suggestion = "Run 'presence policy set <minutes>'"
	case minutes > limit:
		check.Status = tui.CheckWarn
		check.Message = fmt.Sprintf("%d minutes exceeds the %d minute lookback", minutes, limit)
		check.Suggestion = "Lower the timeout or raise presence.lookback_hours"
	default:
		check.Status = tui.CheckOK
		check.Message = fmt.Sprintf("%d minutes", minutes)
	}
	return check
}

func checkRetention(app *App) tui.DoctorCheck {
	check := tui.DoctorCheck{Name: "Retention"}

	policy := retentionPolicy(app)
	switch {
	case !policy.IsEnabled():
		check.Status = tui.CheckOK
		check.Message = "Disabled (events are kept forever)"
	case float64(policy.RetentionDays*24) < policy.Lookback.Hours():
		check.Status = tui.CheckWarn
		check.Message = fmt.Sprintf("%d days is shorter than the lookback; cleanup keeps %s",
			policy.RetentionDays, policy.Lookback)
	default:
		check.Status = tui.CheckOK
		check.Message = fmt.Sprintf("%d days", policy.RetentionDays)
	}
	return check
}

func checkUsers(cmd *cobra.Command, app *App) tui.DoctorCheck {
	check := tui.DoctorCheck{Name: "Employees"}

	users, err := app.Store.ListUsers(cmd.Context(),
		events.NewUserFilter().WithRole(events.RoleEmployee).WithActiveOnly())
	switch {
	case err != nil:
		check.Status = tui.CheckFail
		check.Message = err.Error()
	case len(users) == 0:
		check.Status = tui.CheckWarn
		check.Message = "No active employees are tracked"
		check.Suggestion = "Run 'presence user add --name <name> --email <email>'"
	default:
		check.Status = tui.CheckOK
		check.Message = fmt.Sprintf("%d active employees", len(users))
	}
	return check
}

func fileMissing(path string) bool {
	_, err := os.Stat(path)
	return os.IsNotExist(err)
}
