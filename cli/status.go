package cli

import (
	"github.com/safedep/presence/internal/version"
	"github.com/safedep/presence/tui"
	"github.com/spf13/cobra"
)

// NewStatusCmd creates the status command.
func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show database, policy and configuration status",
		Long: `Show database, policy and configuration status.

Displays the current status of the tool including:
- Tool version
- Database location, size and event range
- Inactivity timeout in effect
- Reporting calendar and retention settings`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp(app)

			view := &tui.StatusView{
				Version: version.Version,
			}

			info, err := app.Store.Info(ctx)
			if err != nil {
				return ErrDatabase("failed to read database info", err)
			}
			view.Database = tui.DatabaseView{
				Location:    info.Path,
				SizeBytes:   info.SizeBytes,
				SizeHuman:   tui.FormatBytes(info.SizeBytes),
				UserCount:   info.UserCount,
				EventCount:  info.EventCount,
				OldestEvent: info.OldestEvent,
				NewestEvent: info.NewestEvent,
			}

			policy, err := policyView(cmd, app)
			if err != nil {
				return err
			}
			view.Policy = *policy

			view.Config = tui.ConfigStatusView{
				Location:      app.ConfigFile(),
				Timezone:      app.Config.Location().String(),
				WeekStart:     app.Config.Calendar().WeekStart.String(),
				LookbackHours: app.Config.Presence.LookbackHours,
				RetentionDays: app.Config.Storage.RetentionDays,
			}

			// If retention is enabled, count events that would be cleaned up
			if rp := retentionPolicy(app); rp.IsEnabled() {
				cutoff := rp.CutoffAt(nowFunc())
				view.Config.RetentionCutoff = cutoff
				if count, err := app.Store.CountEventsBefore(ctx, cutoff); err == nil {
					view.Config.EventsToClean = count
				}
			}

			return app.Presenter.RenderStatus(view)
		},
	}

	return cmd
}
