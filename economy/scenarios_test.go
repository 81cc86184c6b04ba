package economy_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/chore-engine/core"
)

// =============================================================================
// END-TO-END SCENARIOS
// =============================================================================
// Full lifecycle walks through the engine against a real flat-file store,
// checking observable balances rather than internals.

func TestScenario_HomeTaskLifecycle(t *testing.T) {
	engine, store := newTestEngine(t)
	kid, parent, _ := seedHousehold(t, store)
	ctx := context.Background()

	task, err := engine.CreateTask(ctx, parent, "Take out trash", "", 20, "kid1", core.Today())
	require.NoError(t, err)

	_, err = engine.Complete(ctx, kid, task.ID)
	require.NoError(t, err)

	done, err := engine.Approve(ctx, parent, task.ID)
	require.NoError(t, err)
	assert.Equal(t, core.StatusCompleted, done.Status)

	pts, exp, level := mustPoints(t, store, "kid1")
	assert.Equal(t, 20, pts)
	assert.Equal(t, 20, exp)
	assert.Equal(t, 1, level)
}

func TestScenario_LevelUpAfterFiveTasks(t *testing.T) {
	engine, store := newTestEngine(t)
	kid, parent, _ := seedHousehold(t, store)
	ctx := context.Background()

	// Five 20-point chores: 100 experience crosses the 50 and 100 marks.
	for i := 0; i < 5; i++ {
		task, err := engine.CreateTask(ctx, parent, "Chore", "", 20, "kid1", core.Date{})
		require.NoError(t, err)
		_, err = engine.Complete(ctx, kid, task.ID)
		require.NoError(t, err)
		_, err = engine.Approve(ctx, parent, task.ID)
		require.NoError(t, err)
	}

	pts, exp, level := mustPoints(t, store, "kid1")
	assert.Equal(t, 100, pts)
	assert.Equal(t, 100, exp)
	assert.Equal(t, 3, level)
}

func TestScenario_SchoolTaskRated(t *testing.T) {
	engine, store := newTestEngine(t)
	kid, _, teacher := seedHousehold(t, store)
	ctx := context.Background()

	task, err := engine.CreateTask(ctx, teacher, "Book report", "Chapter summary", 0, "kid1", core.Date{})
	require.NoError(t, err)
	_, err = engine.Complete(ctx, kid, task.ID)
	require.NoError(t, err)

	rated, err := engine.Rate(ctx, teacher, task.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, core.StatusFinalized, rated.Status)
	assert.Equal(t, 5, rated.Rating)

	pts, exp, level := mustPoints(t, store, "kid1")
	assert.Equal(t, 50, pts)
	assert.Equal(t, 50, exp)
	assert.Equal(t, 2, level)

	avg, err := engine.AverageRating(ctx, "kid1")
	require.NoError(t, err)
	assert.Equal(t, "5", avg.String())
}

func TestScenario_WishReserveAndRefund(t *testing.T) {
	engine, store := newTestEngine(t)
	parent := seedUser(t, store, core.User{Username: "parent1", Password: "pw", Role: core.RoleParent})
	kid := seedUser(t, store, core.User{
		Username: "kid1", Password: "pw", Role: core.RoleKid,
		CurrentPoints: 30, TotalExperience: 30,
	})
	ctx := context.Background()

	wish, err := engine.CreateWish(ctx, kid, "Lego set", 30)
	require.NoError(t, err)

	pts, _, _ := mustPoints(t, store, "kid1")
	require.Equal(t, 0, pts, "full balance reserved")

	// A second wish cannot be funded out of the reservation.
	_, err = engine.CreateWish(ctx, kid, "Another set", 1)
	require.ErrorIs(t, err, core.ErrInsufficientPoints)

	require.NoError(t, engine.RejectWish(ctx, parent, wish.ID))

	pts, exp, _ := mustPoints(t, store, "kid1")
	assert.Equal(t, 30, pts)
	assert.Equal(t, 30, exp)

	wishes, err := store.Wishes(ctx)
	require.NoError(t, err)
	assert.Empty(t, wishes)
}
