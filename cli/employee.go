package cli

import (
	"github.com/safedep/presence/core/report"
	"github.com/spf13/cobra"
)

type detailParams struct {
	days int
	from string
	to   string
}

func (p *detailParams) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.days, "days", 0, "days of history (default from presence.detail_days)")
	cmd.Flags().StringVar(&p.from, "from", "", "range start (requires --to)")
	cmd.Flags().StringVar(&p.to, "to", "", "range end (requires --from)")
}

// runDetail resolves the user and computes its detail report.
func runDetail(cmd *cobra.Command, app *App, ref string, p *detailParams) (*report.EmployeeDetail, error) {
	now := nowFunc()
	from, to, err := parseRange(p.from, p.to, now, app.Config.Location())
	if err != nil {
		return nil, err
	}

	if p.days < 0 {
		return nil, ErrInvalidInput("--days must be positive", nil)
	}
	days := p.days
	if days == 0 {
		days = app.Config.Presence.DetailDays
	}

	user, err := resolveUser(cmd.Context(), app.Store, ref)
	if err != nil {
		return nil, err
	}

	detail, err := withSpinner(app, "Reconstructing sessions...", func() (*report.EmployeeDetail, error) {
		return app.Reporter.EmployeeDetail(cmd.Context(), user.ID, report.DetailOptions{
			From: from,
			To:   to,
			Days: days,
			At:   now,
		})
	})
	if err != nil {
		return nil, reportError(ref, err)
	}
	return detail, nil
}

// NewEmployeeCmd creates the employee command.
func NewEmployeeCmd() *cobra.Command {
	var p detailParams

	cmd := &cobra.Command{
		Use:   "employee <user>",
		Short: "Show the attendance detail of one employee",
		Long: `Show the attendance detail of one employee.

Displays the current status, hours today, this week and this month, an
hours-per-day chart, and the reconstructed sessions of the selected range.
Use --verbose to include the raw events.`,
		Example: `  presence employee alice@example.com
  presence employee alice --days 30
  presence employee alice --from 2026-03-01 --to 2026-03-07 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp(app)

			detail, err := runDetail(cmd, app, args[0], &p)
			if err != nil {
				return err
			}

			return app.Presenter.RenderEmployeeDetail(detailToView(detail))
		},
	}

	p.register(cmd)

	return cmd
}
