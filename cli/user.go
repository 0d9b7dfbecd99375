package cli

import (
	"fmt"

	"github.com/safedep/dry/log"
	"github.com/safedep/presence/core/events"
	"github.com/spf13/cobra"
)

// NewUserCmd creates the user command.
func NewUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage tracked users",
		Long: `Manage tracked users.

Users are referenced by ID, ID prefix, email or exact name. Removing a
user is a soft delete: its presence events are kept but it no longer
appears in reports.`,
	}

	cmd.AddCommand(
		newUserAddCmd(),
		newUserListCmd(),
		newUserActiveCmd("activate", "Include a user in population reports", true),
		newUserActiveCmd("deactivate", "Exclude a user from population reports", false),
		newUserRemoveCmd(),
	)

	return cmd
}

func newUserAddCmd() *cobra.Command {
	var name, email, role string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a tracked user",
		Example: `  presence user add --name "Alice Smith" --email alice@example.com
  presence user add --name Bob --email bob@example.com --role admin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" || email == "" {
				return ErrInvalidInput("--name and --email are required", nil)
			}

			r, err := events.ParseRole(role)
			if err != nil {
				return ErrInvalidInput("invalid --role", err)
			}

			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp(app)

			user := events.NewUser(name, email, r)
			if err := app.Store.SaveUser(cmd.Context(), user); err != nil {
				return storeError("failed to add user", err)
			}

			log.Infof("added user %s (%s)", user.ID, user.Email)

			return app.Presenter.RenderUsers(usersToView([]*events.User{user}))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "unique email address")
	cmd.Flags().StringVar(&role, "role", "employee", "role: employee, admin")

	return cmd
}

func newUserListCmd() *cobra.Command {
	var (
		all  bool
		role string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked users",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := events.NewUserFilter()
			if all {
				filter = filter.WithDeleted()
			}
			if role != "" {
				r, err := events.ParseRole(role)
				if err != nil {
					return ErrInvalidInput("invalid --role", err)
				}
				filter = filter.WithRole(r)
			}

			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp(app)

			users, err := app.Store.ListUsers(cmd.Context(), filter)
			if err != nil {
				return ErrDatabase("failed to list users", err)
			}

			return app.Presenter.RenderUsers(usersToView(users))
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include removed users")
	cmd.Flags().StringVar(&role, "role", "", "filter by role")

	return cmd
}

func newUserActiveCmd(use, short string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <user>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp(app)

			user, err := resolveUser(cmd.Context(), app.Store, args[0])
			if err != nil {
				return err
			}

			if err := app.Store.SetUserActive(cmd.Context(), user.ID, active); err != nil {
				return storeError("failed to update user", err)
			}

			return app.Presenter.RenderMessage(fmt.Sprintf("User %s %sd.", user.Name, use))
		},
	}
}

func newUserRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <user>",
		Short: "Remove a user, keeping its events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp(app)

			user, err := resolveUser(cmd.Context(), app.Store, args[0])
			if err != nil {
				return err
			}

			if err := app.Store.SoftDeleteUser(cmd.Context(), user.ID, nowFunc()); err != nil {
				return storeError("failed to remove user", err)
			}

			log.Infof("removed user %s", user.ID)

			return app.Presenter.RenderMessage(fmt.Sprintf("User %s removed.", user.Name))
		},
	}
}
