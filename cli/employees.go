package cli

import (
	"github.com/safedep/presence/core/report"
	"github.com/spf13/cobra"
)

// NewEmployeesCmd creates the employees command.
func NewEmployeesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employees",
		Short: "Show who is in the office",
		Long: `Show who is in the office.

Lists every employee with the current presence status, the last event,
and the hours spent in the office today and this week.`,
		Example: `  presence employees
  presence employees --format csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp(app)

			roster, err := withSpinner(app, "Reconstructing sessions...", func() (*report.Roster, error) {
				return app.Reporter.Roster(cmd.Context())
			})
			if err != nil {
				return reportError("", err)
			}

			return app.Presenter.RenderRoster(rosterToView(roster))
		},
	}

	return cmd
}
