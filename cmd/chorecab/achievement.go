package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func achievementCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "achievement",
		Aliases: []string{"badge"},
		Short:   "Author and browse achievements",
	}
	cmd.AddCommand(achievementAddCmd(a), achievementListCmd(a))
	return cmd
}

func achievementAddCmd(a *app) *cobra.Command {
	var (
		description string
		reward      string
	)
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Create an achievement (parents and teachers only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := a.actor(ctx)
			if err != nil {
				return err
			}
			achievement, err := a.engine.CreateAchievement(ctx, actor, args[0], description, reward)
			if err != nil {
				return err
			}
			fmt.Printf("achievement %d created by %s\n", achievement.ID, achievement.CreatorRole)
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "desc", "", "what earns the achievement")
	cmd.Flags().StringVar(&reward, "reward", "", "what the achievement grants")
	return cmd
}

func achievementListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all achievements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			achievements, err := a.engine.Achievements(cmd.Context())
			if err != nil {
				return err
			}
			if len(achievements) == 0 {
				fmt.Println("no achievements")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tDESCRIPTION\tREWARD\tCREATED BY")
			for _, ach := range achievements {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					ach.ID, ach.Title, ach.Description, ach.Reward, ach.CreatorRole)
			}
			return w.Flush()
		},
	}
}
