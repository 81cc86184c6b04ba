package economy

import (
	"context"
	"fmt"
	"strings"

	"github.com/warp/chore-engine/core"
)

// CreateAchievement records a new badge. Parents and teachers author
// achievements; kids cannot. Achievements are read-only once created.
func (e *Engine) CreateAchievement(ctx context.Context, actor core.User, title, description, reward string) (core.Achievement, error) {
	if actor.Role != core.RoleParent && actor.Role != core.RoleTeacher {
		return core.Achievement{}, fmt.Errorf("role %s cannot create achievements: %w",
			actor.Role, core.ErrNotPermitted)
	}
	if strings.TrimSpace(title) == "" {
		return core.Achievement{}, fmt.Errorf("title is required: %w", core.ErrValidation)
	}
	if err := core.CheckFieldText(title, description, reward); err != nil {
		return core.Achievement{}, err
	}

	id, err := e.store.NextAchievementID(ctx)
	if err != nil {
		return core.Achievement{}, err
	}
	a := core.Achievement{
		ID:          id,
		Title:       title,
		Description: description,
		Reward:      reward,
		CreatorRole: actor.Role,
	}
	if err := e.store.AddAchievement(ctx, a); err != nil {
		return core.Achievement{}, err
	}
	return a, nil
}

// Achievements lists every achievement.
func (e *Engine) Achievements(ctx context.Context) ([]core.Achievement, error) {
	return e.store.Achievements(ctx)
}
