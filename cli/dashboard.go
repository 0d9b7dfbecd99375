package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/safedep/presence/tui/component/dashboard"
	"github.com/spf13/cobra"
)

type dashboardParams struct {
	days    int
	refresh time.Duration
}

// NewDashboardCmd creates the dashboard command.
func NewDashboardCmd() *cobra.Command {
	var p dashboardParams

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Interactive presence dashboard",
		Long: `Launch a fullscreen TUI dashboard showing office presence.

Displays the population overview, an hours-per-day chart and the employee
roster, refreshing periodically.`,
		Example: `  presence dashboard
  presence dashboard --days 7 --refresh 1m`,
		RunE: func(cmd *cobra.Command, args []string) error {
			chartRange, err := parseChartRange(p.days)
			if err != nil {
				return err
			}

			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp(app)

			opts := dashboard.Options{
				Reporter: app.Reporter,
				Range:    chartRange,
				Refresh:  p.refresh,
			}

			prog := tea.NewProgram(dashboard.New(opts), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = prog.Run()

			return err
		},
	}

	cmd.Flags().IntVar(&p.days, "days", 30, "chart range: 7, 30 or 90")
	cmd.Flags().DurationVar(&p.refresh, "refresh", 30*time.Second, "refresh interval")

	return cmd
}

func parseChartRange(days int) (dashboard.ChartRange, error) {
	switch r := dashboard.ChartRange(days); r {
	case dashboard.RangeWeek, dashboard.RangeMonth, dashboard.RangeQuarter:
		return r, nil
	default:
		return 0, ErrInvalidInput("--days must be 7, 30 or 90", nil)
	}
}
