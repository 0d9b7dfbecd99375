package cli

import (
	"github.com/spf13/cobra"
)

// NewSessionsCmd creates the sessions command.
func NewSessionsCmd() *cobra.Command {
	var p detailParams

	cmd := &cobra.Command{
		Use:   "sessions <user>",
		Short: "List reconstructed sessions of a user",
		Long: `List reconstructed sessions of a user.

Sessions are rebuilt from the raw events with the current inactivity
timeout and clipped to the selected range.`,
		Example: `  presence sessions alice
  presence sessions alice --days 7
  presence sessions alice --from "2026-03-02 00:00" --to "2026-03-02 23:59" --format csv`,
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

			view := detailToView(detail)
			return app.Presenter.RenderSessions(&view.SessionsView)
		},
	}

	p.register(cmd)

	return cmd
}
