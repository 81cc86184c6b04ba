package economy

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/warp/chore-engine/core"
)

// =============================================================================
// TASK CREATION
// =============================================================================

// CreateTask assigns a new task to a kid. Parents create HOME tasks,
// teachers create SCHOOL tasks; the type follows the creator's role.
func (e *Engine) CreateTask(ctx context.Context, actor core.User, title, description string, points int, assignee string, due core.Date) (core.Task, error) {
	var typ core.TaskType
	switch actor.Role {
	case core.RoleParent:
		typ = core.TypeHome
	case core.RoleTeacher:
		typ = core.TypeSchool
	default:
		return core.Task{}, fmt.Errorf("role %s cannot create tasks: %w", actor.Role, core.ErrNotPermitted)
	}

	if strings.TrimSpace(title) == "" {
		return core.Task{}, fmt.Errorf("title is required: %w", core.ErrValidation)
	}
	if err := core.CheckFieldText(title, description); err != nil {
		return core.Task{}, err
	}
	if points < 0 {
		return core.Task{}, fmt.Errorf("points must not be negative: %w", core.ErrValidation)
	}

	kid, err := e.store.UserByUsername(ctx, assignee)
	if err != nil {
		return core.Task{}, err
	}
	if kid.Role != core.RoleKid {
		return core.Task{}, fmt.Errorf("tasks can only be assigned to kids: %w", core.ErrValidation)
	}

	id, err := e.store.NextTaskID(ctx)
	if err != nil {
		return core.Task{}, err
	}

	task := core.Task{
		ID:          id,
		Title:       title,
		Description: description,
		Points:      points,
		Status:      core.StatusAssigned,
		Type:        typ,
		Assignee:    assignee,
		Creator:     actor.Username,
		DueDate:     due,
	}
	if err := e.store.SaveTask(ctx, task); err != nil {
		return core.Task{}, err
	}

	e.log.Info("task created",
		zap.Int("id", task.ID),
		zap.String("type", string(task.Type)),
		zap.String("assignee", task.Assignee),
		zap.String("creator", task.Creator))
	return task, nil
}

// =============================================================================
// STATE TRANSITIONS
// =============================================================================

// Complete marks an assigned task as done by its assignee, sending it to
// the approval queue. Only ASSIGNED tasks can be completed; a rejected
// task stays rejected until a new task is created.
func (e *Engine) Complete(ctx context.Context, actor core.User, taskID int) (core.Task, error) {
	task, err := e.store.TaskByID(ctx, taskID)
	if err != nil {
		return core.Task{}, err
	}
	if task.Assignee != actor.Username {
		return core.Task{}, fmt.Errorf("task %d is not assigned to %s: %w",
			taskID, actor.Username, core.ErrNotPermitted)
	}
	if task.Status != core.StatusAssigned {
		return core.Task{}, &core.TransitionError{TaskID: taskID, From: task.Status, Attempted: "complete"}
	}

	task.Status = core.StatusPendingApproval
	if err := e.store.SaveTask(ctx, task); err != nil {
		return core.Task{}, err
	}
	return task, nil
}

// Approve finalizes a pending HOME task and credits the assignee with the
// task's point value. Only the creating parent may approve; tasks written
// before the creator field existed are approvable by any parent.
func (e *Engine) Approve(ctx context.Context, actor core.User, taskID int) (core.Task, error) {
	task, err := e.store.TaskByID(ctx, taskID)
	if err != nil {
		return core.Task{}, err
	}
	if task.Type != core.TypeHome || actor.Role != core.RoleParent {
		return core.Task{}, fmt.Errorf("home tasks are approved by parents: %w", core.ErrNotPermitted)
	}
	if task.Creator != "" && task.Creator != actor.Username {
		return core.Task{}, fmt.Errorf("task %d was created by %s: %w",
			taskID, task.Creator, core.ErrNotPermitted)
	}
	if task.Status != core.StatusPendingApproval {
		return core.Task{}, &core.TransitionError{TaskID: taskID, From: task.Status, Attempted: "approve"}
	}

	// Resolve the assignee before touching the task so a missing user
	// record never leaves a finalized task with uncredited points.
	assignee, err := e.store.UserByUsername(ctx, task.Assignee)
	if err != nil {
		return core.Task{}, err
	}

	task.Status = core.StatusCompleted
	if err := e.store.SaveTask(ctx, task); err != nil {
		return core.Task{}, err
	}
	if err := e.credit(ctx, assignee, task.Points); err != nil {
		return core.Task{}, err
	}
	return task, nil
}

// Reject sends a pending task back with no point change. The creating
// parent rejects home tasks, the creating teacher rejects school tasks.
func (e *Engine) Reject(ctx context.Context, actor core.User, taskID int) (core.Task, error) {
	task, err := e.store.TaskByID(ctx, taskID)
	if err != nil {
		return core.Task{}, err
	}
	if err := creatorMayJudge(actor, task); err != nil {
		return core.Task{}, err
	}
	if task.Status != core.StatusPendingApproval {
		return core.Task{}, &core.TransitionError{TaskID: taskID, From: task.Status, Attempted: "reject"}
	}

	task.Status = core.StatusRejected
	if err := e.store.SaveTask(ctx, task); err != nil {
		return core.Task{}, err
	}
	return task, nil
}

// Rate finalizes a pending SCHOOL task with a 1-5 star rating and credits
// the assignee stars*10 points. The reward is rating-driven; the task's
// own point value is not used for school tasks.
func (e *Engine) Rate(ctx context.Context, actor core.User, taskID, stars int) (core.Task, error) {
	task, err := e.store.TaskByID(ctx, taskID)
	if err != nil {
		return core.Task{}, err
	}
	if task.Type != core.TypeSchool || actor.Role != core.RoleTeacher {
		return core.Task{}, fmt.Errorf("school tasks are rated by teachers: %w", core.ErrNotPermitted)
	}
	if task.Creator != "" && task.Creator != actor.Username {
		return core.Task{}, fmt.Errorf("task %d was created by %s: %w",
			taskID, task.Creator, core.ErrNotPermitted)
	}
	if stars < core.MinRating || stars > core.MaxRating {
		return core.Task{}, fmt.Errorf("rating must be %d-%d stars: %w",
			core.MinRating, core.MaxRating, core.ErrValidation)
	}
	if task.Status != core.StatusPendingApproval {
		return core.Task{}, &core.TransitionError{TaskID: taskID, From: task.Status, Attempted: "rate"}
	}

	assignee, err := e.store.UserByUsername(ctx, task.Assignee)
	if err != nil {
		return core.Task{}, err
	}

	task.Rating = stars
	task.Status = core.StatusFinalized
	if err := e.store.SaveTask(ctx, task); err != nil {
		return core.Task{}, err
	}
	if err := e.credit(ctx, assignee, core.RatingReward(stars)); err != nil {
		return core.Task{}, err
	}
	return task, nil
}

func creatorMayJudge(actor core.User, task core.Task) error {
	switch task.Type {
	case core.TypeHome:
		if actor.Role != core.RoleParent {
			return fmt.Errorf("home tasks are judged by parents: %w", core.ErrNotPermitted)
		}
	case core.TypeSchool:
		if actor.Role != core.RoleTeacher {
			return fmt.Errorf("school tasks are judged by teachers: %w", core.ErrNotPermitted)
		}
	}
	if task.Creator != "" && task.Creator != actor.Username {
		return fmt.Errorf("task %d was created by %s: %w", task.ID, task.Creator, core.ErrNotPermitted)
	}
	return nil
}

// credit applies an earned amount to an already-resolved user and
// persists the record. Callers resolve the user before mutating task
// state so both writes succeed together or neither changes state.
func (e *Engine) credit(ctx context.Context, user core.User, amount int) error {
	before := user.Level
	user.Credit(amount)
	if err := e.store.SaveUser(ctx, user); err != nil {
		return err
	}

	e.log.Info("points credited",
		zap.String("user", user.Username),
		zap.Int("amount", amount),
		zap.Int("points", user.CurrentPoints),
		zap.Int("experience", user.TotalExperience))
	if user.Level > before {
		e.log.Info("level up", zap.String("user", user.Username), zap.Int("level", user.Level))
	}
	return nil
}

// =============================================================================
// VISIBILITY
// =============================================================================

// ActionableTasks returns a kid's working list: assigned, waiting, and
// rejected tasks. Completed and finalized tasks are history and excluded.
func (e *Engine) ActionableTasks(ctx context.Context, assignee string) ([]core.Task, error) {
	tasks, err := e.store.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	var out []core.Task
	for _, t := range core.TasksAssignedTo(tasks, assignee) {
		switch t.Status {
		case core.StatusAssigned, core.StatusPendingApproval, core.StatusRejected:
			out = append(out, t)
		}
	}
	return out, nil
}

// ApprovalQueue returns the pending tasks the actor is allowed to judge:
// tasks of the type matching their role whose creator is the actor (or
// legacy tasks with no recorded creator).
func (e *Engine) ApprovalQueue(ctx context.Context, actor core.User) ([]core.Task, error) {
	var typ core.TaskType
	switch actor.Role {
	case core.RoleParent:
		typ = core.TypeHome
	case core.RoleTeacher:
		typ = core.TypeSchool
	default:
		return nil, fmt.Errorf("role %s has no approval queue: %w", actor.Role, core.ErrNotPermitted)
	}

	tasks, err := e.store.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	var out []core.Task
	for _, t := range core.TasksOfType(core.TasksWithStatus(tasks, core.StatusPendingApproval), typ) {
		if t.Creator == "" || t.Creator == actor.Username {
			out = append(out, t)
		}
	}
	return out, nil
}

// TasksByAssignee lists every task for an assignee regardless of status.
func (e *Engine) TasksByAssignee(ctx context.Context, assignee string) ([]core.Task, error) {
	tasks, err := e.store.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	return core.TasksAssignedTo(tasks, assignee), nil
}

// TasksByStatus lists every task in the given status.
func (e *Engine) TasksByStatus(ctx context.Context, status core.TaskStatus) ([]core.Task, error) {
	tasks, err := e.store.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	return core.TasksWithStatus(tasks, status), nil
}

// TasksByType lists every task of the given type.
func (e *Engine) TasksByType(ctx context.Context, typ core.TaskType) ([]core.Task, error) {
	tasks, err := e.store.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	return core.TasksOfType(tasks, typ), nil
}
