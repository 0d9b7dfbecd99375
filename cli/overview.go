package cli

import (
	"github.com/safedep/presence/core/report"
	"github.com/spf13/cobra"
)

// NewOverviewCmd creates the overview command.
func NewOverviewCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Show population attendance statistics",
		Long: `Show population attendance statistics.

Reports how many active employees are in the office now, the total and
average hours today, and an hours-per-day chart over the last days.`,
		Example: `  presence overview
  presence overview --days 7 --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 0 {
				return ErrInvalidInput("--days must be positive", nil)
			}

			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp(app)

			if days == 0 {
				days = app.Config.Presence.OverviewDays
			}

			overview, err := withSpinner(app, "Aggregating presence...", func() (*report.Overview, error) {
				return app.Reporter.Overview(cmd.Context(), days)
			})
			if err != nil {
				return reportError("", err)
			}

			return app.Presenter.RenderOverview(overviewToView(overview))
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "chart length in days, 7 to 90 (default from presence.overview_days)")

	return cmd
}
