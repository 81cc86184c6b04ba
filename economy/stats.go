package economy

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/warp/chore-engine/core"
)

// AverageRating returns the mean star rating over a kid's finalized
// school tasks, rounded to two decimal places. Unrated and non-school
// tasks are excluded; with no rated tasks the average is zero.
//
// Uses decimal arithmetic so 1/3-style divisions don't drift when the
// average feeds further computation.
func (e *Engine) AverageRating(ctx context.Context, assignee string) (decimal.Decimal, error) {
	tasks, err := e.store.Tasks(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	sum := decimal.Zero
	count := int64(0)
	for _, t := range core.TasksAssignedTo(tasks, assignee) {
		if t.Type != core.TypeSchool || t.Status != core.StatusFinalized || t.Rating <= 0 {
			continue
		}
		sum = sum.Add(decimal.NewFromInt(int64(t.Rating)))
		count++
	}
	if count == 0 {
		return decimal.Zero, nil
	}
	return sum.DivRound(decimal.NewFromInt(count), 2), nil
}
