package cli

import (
	"fmt"
	"strconv"

	"github.com/safedep/dry/log"
	"github.com/safedep/presence/tui"
	"github.com/spf13/cobra"
)

// Policy sources shown by `policy get`.
const (
	policySourceDefault = "default"
	policySourceStored  = "stored"
)

// NewPolicyCmd creates the policy command.
func NewPolicyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "View or change the inactivity timeout",
		Long: `View or change the inactivity timeout.

The timeout is tenant-wide. An IN_OFFICE ping not followed by another ping
within the timeout ends its session at ping + timeout. Changing it
re-derives every past session on the next report.`,
	}

	cmd.AddCommand(newPolicyGetCmd(), newPolicySetCmd())

	return cmd
}

func newPolicyGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the inactivity timeout",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp(app)

			view, err := policyView(cmd, app)
			if err != nil {
				return err
			}
			return app.Presenter.RenderPolicy(view)
		},
	}
}

func newPolicySetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "set <minutes>",
		Short:   "Set the inactivity timeout",
		Example: `  presence policy set 20`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[0])
			if err != nil || minutes <= 0 {
				return ErrInvalidInput(fmt.Sprintf("timeout must be a positive number of minutes, got %q", args[0]), nil)
			}

			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp(app)

			if limit := app.Config.Presence.LookbackHours * 60; minutes > limit {
				return ErrInvalidInput(fmt.Sprintf("timeout must not exceed the %d minute lookback", limit), nil)
			}

			if err := app.Store.SetSessionTimeoutMinutes(cmd.Context(), minutes); err != nil {
				return ErrDatabase("failed to save timeout", err)
			}

			log.Infof("session timeout set to %d minutes", minutes)

			view, err := policyView(cmd, app)
			if err != nil {
				return err
			}
			return app.Presenter.RenderPolicy(view)
		},
	}
}

func policyView(cmd *cobra.Command, app *App) (*tui.PolicyView, error) {
	minutes, err := app.Store.SessionTimeoutMinutes(cmd.Context())
	if err != nil {
		return nil, ErrDatabase("failed to read timeout", err)
	}

	source := policySourceStored
	if minutes == app.Config.Presence.SessionTimeoutMinutes {
		source = policySourceDefault
	}

	return &tui.PolicyView{TimeoutMinutes: minutes, Source: source}, nil
}
