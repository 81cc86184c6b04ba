package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/warp/chore-engine/core"
)

func wishCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wish",
		Short: "Request and judge rewards bought with points",
	}
	cmd.AddCommand(
		wishAddCmd(a),
		wishListCmd(a),
		wishApproveCmd(a),
		wishRejectCmd(a),
	)
	return cmd
}

func wishAddCmd(a *app) *cobra.Command {
	var cost int
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Request a reward; the cost is reserved from your points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := a.actor(ctx)
			if err != nil {
				return err
			}
			wish, err := a.engine.CreateWish(ctx, actor, args[0], cost)
			if err != nil {
				return err
			}
			fmt.Printf("wish %d created, %d points reserved\n", wish.ID, wish.Cost)
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", 0, "point cost of the reward")
	_ = cmd.MarkFlagRequired("cost")
	return cmd
}

func wishListCmd(a *app) *cobra.Command {
	var (
		owner  string
		status string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List wishes, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			wishes, err := a.store.Wishes(ctx)
			if err != nil {
				return err
			}
			if owner != "" {
				wishes = core.WishesOwnedBy(wishes, owner)
			}
			if status != "" {
				s, err := core.ParseWishStatus(status)
				if err != nil {
					return err
				}
				wishes = core.WishesWithStatus(wishes, s)
			}
			if len(wishes) == 0 {
				fmt.Println("no wishes")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tCOST\tSTATUS\tOWNER")
			for _, wish := range wishes {
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", wish.ID, wish.Title, wish.Cost, wish.Status, wish.Owner)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "filter by owning kid")
	cmd.Flags().StringVar(&status, "status", "", "filter by status (PENDING, APPROVED)")
	return cmd
}

func wishApproveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "approve [id]",
		Short: "Grant a pending wish (the cost was reserved at creation)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := a.actor(ctx)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			wish, err := a.engine.ApproveWish(ctx, actor, id)
			if err != nil {
				return err
			}
			fmt.Printf("wish %d approved for %s\n", wish.ID, wish.Owner)
			return nil
		},
	}
}

func wishRejectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reject [id]",
		Short: "Refuse a pending wish and refund the reserved points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := a.actor(ctx)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.engine.RejectWish(ctx, actor, id); err != nil {
				return err
			}
			fmt.Printf("wish %d rejected and refunded\n", id)
			return nil
		},
	}
}
