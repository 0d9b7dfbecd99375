package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/safedep/presence/tui/component/livelog"
	"github.com/spf13/cobra"
)

// NewWatchCmd creates the watch command.
func NewWatchCmd() *cobra.Command {
	var (
		user     string
		since    string
		limit    int
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow presence pings as they arrive",
		Long: `Follow presence pings as they arrive.

Opens a fullscreen live feed of IN_OFFICE and OUT_OF_OFFICE pings from
every tracked user, with the last ping of each person in a sidebar.`,
		Example: `  presence watch
  presence watch --user alice --since 2h`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return ErrInvalidInput("--limit must be positive", nil)
			}

			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp(app)

			loc := app.Config.Location()
			from, err := parseTimeArg(since, nowFunc(), loc)
			if err != nil {
				return ErrInvalidInput("invalid --since", err)
			}

			opts := livelog.Options{
				Store:        app.Store,
				PollInterval: interval,
				InitialLimit: limit,
				Since:        from,
				Location:     loc,
			}

			if user != "" {
				u, err := resolveUser(cmd.Context(), app.Store, user)
				if err != nil {
					return err
				}
				opts.UserFilter = u.Name
			}

			prog := tea.NewProgram(livelog.New(opts), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = prog.Run()

			return err
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "only show pings of this user")
	cmd.Flags().StringVar(&since, "since", "24h", "show pings since (e.g., 2h, 1d, 2026-03-02)")
	cmd.Flags().IntVar(&limit, "limit", 50, "number of past pings to load on start")
	cmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "poll interval")

	return cmd
}
