package cli

import (
	"github.com/safedep/dry/log"
	"github.com/safedep/presence/core/events"
	"github.com/spf13/cobra"
)

// NewRecordCmd creates the record command.
func NewRecordCmd() *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "record <user> <in|out>",
		Short: "Record a presence event",
		Long: `Record a presence event.

Appends an IN_OFFICE or OUT_OF_OFFICE ping for a user. Events are
immutable; sessions are derived from them on every report.`,
		Example: `  presence record alice@example.com in
  presence record alice@example.com out --at "2026-03-04 17:30"
  presence record alice in --at 15m`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := events.ParseStatus(args[1])
			if err != nil {
				return ErrInvalidInput("invalid status", err)
			}

			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp(app)

			now := nowFunc()
			ts := now
			if at != "" {
				ts, err = parseTimeArg(at, now, app.Config.Location())
				if err != nil {
					return ErrInvalidInput("invalid --at", err)
				}
			}

			user, err := resolveUser(cmd.Context(), app.Store, args[0])
			if err != nil {
				return err
			}
			if !user.IsActive {
				log.Infof("recording event for inactive user %s", user.ID)
			}

			event := events.NewEvent(user.ID, status, ts)
			if err := app.Store.SaveEvent(cmd.Context(), event); err != nil {
				return storeError("failed to record event", err)
			}

			return app.Presenter.RenderEvent(eventToView(event, user.Name))
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "event time (RFC3339, date and time, or relative like 15m)")

	return cmd
}
