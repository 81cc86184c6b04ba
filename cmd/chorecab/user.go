package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/warp/chore-engine/core"
)

func userCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Seed and inspect accounts",
	}
	cmd.AddCommand(userSeedCmd(a), userListCmd(a))
	return cmd
}

// Accounts are created out of band; there is no in-app registration.
func userSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed [username] [password] [role]",
		Short: "Create an account (KID, PARENT, or TEACHER)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			username := strings.TrimSpace(args[0])
			if username == "" {
				return fmt.Errorf("username is required: %w", core.ErrValidation)
			}
			if err := core.CheckFieldText(username, args[1]); err != nil {
				return err
			}
			role, err := core.ParseRole(args[2])
			if err != nil {
				return err
			}
			if _, err := a.store.UserByUsername(ctx, username); err == nil {
				return fmt.Errorf("user %s already exists: %w", username, core.ErrValidation)
			} else if !core.IsNotFound(err) {
				return err
			}

			user := core.User{Username: username, Password: args[1], Role: role, Level: 1}
			if err := a.store.SaveUser(ctx, user); err != nil {
				return err
			}
			fmt.Printf("created %s account %s\n", role, username)
			return nil
		},
	}
}

func userListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := a.store.Users(cmd.Context())
			if err != nil {
				return err
			}
			if len(users) == 0 {
				fmt.Println("no users")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "USERNAME\tROLE\tLEVEL\tPOINTS\tEXPERIENCE")
			for _, u := range users {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n",
					u.Username, u.Role, u.Level, u.CurrentPoints, u.TotalExperience)
			}
			return w.Flush()
		},
	}
}
