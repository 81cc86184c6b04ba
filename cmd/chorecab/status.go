package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/warp/chore-engine/core"
)

func statusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status [username]",
		Short: "Show a user's level, balance, and school average",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var user core.User
			var err error
			if len(args) == 1 {
				user, err = a.store.UserByUsername(ctx, args[0])
			} else {
				user, err = a.actor(ctx)
			}
			if err != nil {
				return err
			}

			fmt.Printf("%s (%s)\n", user.Username, user.Role)
			fmt.Printf("  level:      %d\n", user.Level)
			fmt.Printf("  points:     %d\n", user.CurrentPoints)
			fmt.Printf("  experience: %d\n", user.TotalExperience)

			if user.Role == core.RoleKid {
				avg, err := a.engine.AverageRating(ctx, user.Username)
				if err != nil {
					return err
				}
				if avg.IsZero() {
					fmt.Println("  rating:     no rated school tasks yet")
				} else {
					fmt.Printf("  rating:     %s stars average\n", avg)
				}

				actionable, err := a.engine.ActionableTasks(ctx, user.Username)
				if err != nil {
					return err
				}
				fmt.Printf("  open tasks: %d\n", len(actionable))
			}
			return nil
		},
	}
}
