package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/warp/chore-engine/core"
)

func taskCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Create, browse, and judge tasks",
	}
	cmd.AddCommand(
		taskAddCmd(a),
		taskListCmd(a),
		taskQueueCmd(a),
		taskCompleteCmd(a),
		taskApproveCmd(a),
		taskRejectCmd(a),
		taskRateCmd(a),
	)
	return cmd
}

func taskAddCmd(a *app) *cobra.Command {
	var (
		description string
		points      int
		assignee    string
		due         string
	)
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Assign a new task to a kid (parents: HOME, teachers: SCHOOL)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := a.actor(ctx)
			if err != nil {
				return err
			}
			dueDate, err := core.ParseDate(due)
			if err != nil {
				return err
			}
			task, err := a.engine.CreateTask(ctx, actor, args[0], description, points, assignee, dueDate)
			if err != nil {
				return err
			}
			fmt.Printf("created %s task %d for %s\n", task.Type, task.ID, task.Assignee)
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "desc", "", "task description")
	cmd.Flags().IntVar(&points, "points", 0, "points awarded on approval (HOME tasks)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "kid the task is assigned to")
	cmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("assignee")
	return cmd
}

func taskListCmd(a *app) *cobra.Command {
	var (
		assignee string
		status   string
		typ      string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tasks, err := a.store.Tasks(ctx)
			if err != nil {
				return err
			}
			if assignee != "" {
				tasks = core.TasksAssignedTo(tasks, assignee)
			}
			if status != "" {
				s, err := core.ParseTaskStatus(status)
				if err != nil {
					return err
				}
				tasks = core.TasksWithStatus(tasks, s)
			}
			if typ != "" {
				tt, err := core.ParseTaskType(typ)
				if err != nil {
					return err
				}
				tasks = core.TasksOfType(tasks, tt)
			}
			printTasks(tasks)
			return nil
		},
	}
	cmd.Flags().StringVar(&assignee, "assignee", "", "filter by assignee")
	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	cmd.Flags().StringVar(&typ, "type", "", "filter by type (HOME, SCHOOL)")
	return cmd
}

func taskQueueCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "queue",
		Short: "Show the tasks waiting for your approval",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			actor, err := a.actor(ctx)
			if err != nil {
				return err
			}
			tasks, err := a.engine.ApprovalQueue(ctx, actor)
			if err != nil {
				return err
			}
			printTasks(tasks)
			return nil
		},
	}
}

func taskCompleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "complete [id]",
		Short: "Mark your assigned task as done",
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
			task, err := a.engine.Complete(ctx, actor, id)
			if err != nil {
				return err
			}
			fmt.Printf("task %d is now %s\n", task.ID, task.Status)
			return nil
		},
	}
}

func taskApproveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "approve [id]",
		Short: "Approve a pending home task and credit its points",
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
			task, err := a.engine.Approve(ctx, actor, id)
			if err != nil {
				return err
			}
			fmt.Printf("task %d approved, %d points credited to %s\n", task.ID, task.Points, task.Assignee)
			return nil
		},
	}
}

func taskRejectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reject [id]",
		Short: "Send a pending task back without points",
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
			task, err := a.engine.Reject(ctx, actor, id)
			if err != nil {
				return err
			}
			fmt.Printf("task %d rejected\n", task.ID)
			return nil
		},
	}
}

func taskRateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rate [id] [stars]",
		Short: "Rate a pending school task 1-5 stars",
		Args:  cobra.ExactArgs(2),
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
			stars, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("stars must be a number: %w", core.ErrValidation)
			}
			task, err := a.engine.Rate(ctx, actor, id, stars)
			if err != nil {
				return err
			}
			fmt.Printf("task %d rated %d stars, %d points credited to %s\n",
				task.ID, stars, core.RatingReward(stars), task.Assignee)
			return nil
		},
	}
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a numeric id: %w", s, core.ErrValidation)
	}
	return id, nil
}

func printTasks(tasks []core.Task) {
	if len(tasks) == 0 {
		fmt.Println("no tasks")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tTYPE\tSTATUS\tPOINTS\tASSIGNEE\tRATING\tDUE")
	for _, t := range tasks {
		rating := "-"
		if t.Rating > 0 {
			rating = strconv.Itoa(t.Rating)
		}
		due := t.DueDate.String()
		if due == "" {
			due = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			t.ID, t.Title, t.Type, t.Status, t.Points, t.Assignee, rating, due)
	}
	_ = w.Flush()
}
