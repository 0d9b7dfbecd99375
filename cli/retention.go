package cli

import (
	"github.com/safedep/dry/log"
	"github.com/safedep/presence/core/retention"
	"github.com/safedep/presence/tui"
	"github.com/spf13/cobra"
)

// NewRetentionCmd creates the retention command.
func NewRetentionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retention",
		Short: "Manage data retention",
		Long: `Manage data retention.

Commands for managing the presence event retention policy including
cleaning up old events based on the configured retention period. The
cutoff never removes history the reports still need for session
reconstruction.`,
	}

	cmd.AddCommand(newRetentionCleanupCmd())
	cmd.AddCommand(newRetentionStatusCmd())

	return cmd
}

func retentionPolicy(app *App) *retention.Policy {
	policy := retention.NewPolicy(app.Config.Storage.RetentionDays)
	policy.Lookback = app.Config.Lookback()
	return policy
}

// newRetentionCleanupCmd creates the retention cleanup subcommand.
func newRetentionCleanupCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete events older than retention policy",
		Example: `  presence retention cleanup
  presence retention cleanup --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp(app)

			policy := retentionPolicy(app)
			view := &tui.RetentionView{
				Enabled:       policy.IsEnabled(),
				RetentionDays: policy.RetentionDays,
				DryRun:        dryRun,
			}
			if !policy.IsEnabled() {
				return app.Presenter.RenderRetention(view)
			}

			view.Cutoff = policy.CutoffAt(nowFunc())

			if dryRun {
				count, err := app.Store.CountEventsBefore(cmd.Context(), view.Cutoff)
				if err != nil {
					return ErrDatabase("failed to count events", err)
				}
				view.EventsToClean = count
				return app.Presenter.RenderRetention(view)
			}

			deleted, err := app.Store.DeleteEventsBefore(cmd.Context(), view.Cutoff)
			if err != nil {
				return ErrDatabase("failed to delete events", err)
			}

			log.Infof("retention cleanup deleted %d events before %s", deleted, view.Cutoff)

			view.Deleted = deleted
			view.Cleaned = true
			return app.Presenter.RenderRetention(view)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be deleted without deleting")

	return cmd
}

// newRetentionStatusCmd creates the retention status subcommand.
func newRetentionStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show retention policy status",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp(app)

			policy := retentionPolicy(app)
			view := &tui.RetentionView{
				Enabled:       policy.IsEnabled(),
				RetentionDays: policy.RetentionDays,
			}

			if policy.IsEnabled() {
				view.Cutoff = policy.CutoffAt(nowFunc())
				count, err := app.Store.CountEventsBefore(cmd.Context(), view.Cutoff)
				if err != nil {
					return ErrDatabase("failed to count events", err)
				}
				view.EventsToClean = count
			}

			return app.Presenter.RenderRetention(view)
		},
	}

	return cmd
}
