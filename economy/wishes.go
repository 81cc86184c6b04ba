package economy

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/warp/chore-engine/core"
)

// =============================================================================
// WISH FLOW - reservation model
// =============================================================================
// A wish's cost is debited from the owner's spendable points the moment
// the wish is created. Approval consumes the reservation without touching
// the balance again; rejection refunds it and removes the record.

// CreateWish reserves points for a reward request. Fails without mutating
// anything if the kid cannot afford the cost.
func (e *Engine) CreateWish(ctx context.Context, actor core.User, title string, cost int) (core.Wish, error) {
	if actor.Role != core.RoleKid {
		return core.Wish{}, fmt.Errorf("only kids create wishes: %w", core.ErrNotPermitted)
	}
	if strings.TrimSpace(title) == "" {
		return core.Wish{}, fmt.Errorf("title is required: %w", core.ErrValidation)
	}
	if err := core.CheckFieldText(title); err != nil {
		return core.Wish{}, err
	}
	if cost < 0 {
		return core.Wish{}, fmt.Errorf("cost must not be negative: %w", core.ErrValidation)
	}

	// Re-read the owner so a stale session cannot overspend.
	owner, err := e.store.UserByUsername(ctx, actor.Username)
	if err != nil {
		return core.Wish{}, err
	}
	if cost > owner.CurrentPoints {
		return core.Wish{}, &core.InsufficientPointsError{
			Owner: owner.Username, Available: owner.CurrentPoints, Requested: cost,
		}
	}

	owner.CurrentPoints -= cost
	if err := e.store.SaveUser(ctx, owner); err != nil {
		return core.Wish{}, err
	}

	id, err := e.store.NextWishID(ctx)
	if err != nil {
		return core.Wish{}, err
	}
	wish := core.Wish{ID: id, Title: title, Cost: cost, Status: core.WishPending, Owner: owner.Username}
	if err := e.store.AddWish(ctx, wish); err != nil {
		return core.Wish{}, err
	}

	e.log.Info("wish created",
		zap.Int("id", wish.ID),
		zap.String("owner", wish.Owner),
		zap.Int("cost", wish.Cost),
		zap.Int("remaining", owner.CurrentPoints))
	return wish, nil
}

// ApproveWish grants a pending wish. The cost was already reserved at
// creation, so approval changes no balance.
func (e *Engine) ApproveWish(ctx context.Context, actor core.User, wishID int) (core.Wish, error) {
	if actor.Role != core.RoleParent {
		return core.Wish{}, fmt.Errorf("only parents approve wishes: %w", core.ErrNotPermitted)
	}
	wish, err := e.store.WishByID(ctx, wishID)
	if err != nil {
		return core.Wish{}, err
	}
	if wish.Status != core.WishPending {
		return core.Wish{}, fmt.Errorf("wish %d is already %s: %w", wishID, wish.Status, core.ErrValidation)
	}

	wish.Status = core.WishApproved
	if err := e.store.SaveWish(ctx, wish); err != nil {
		return core.Wish{}, err
	}
	e.log.Info("wish approved", zap.Int("id", wish.ID), zap.String("owner", wish.Owner))
	return wish, nil
}

// RejectWish refunds the reserved cost to the owner and removes the wish
// permanently. There is no rejected state on record.
func (e *Engine) RejectWish(ctx context.Context, actor core.User, wishID int) error {
	if actor.Role != core.RoleParent {
		return fmt.Errorf("only parents reject wishes: %w", core.ErrNotPermitted)
	}
	wish, err := e.store.WishByID(ctx, wishID)
	if err != nil {
		return err
	}
	if wish.Status != core.WishPending {
		return fmt.Errorf("wish %d is already %s: %w", wishID, wish.Status, core.ErrValidation)
	}

	owner, err := e.store.UserByUsername(ctx, wish.Owner)
	if err != nil {
		return err
	}
	owner.CurrentPoints += wish.Cost
	if err := e.store.SaveUser(ctx, owner); err != nil {
		return err
	}
	if err := e.store.DeleteWish(ctx, wishID); err != nil {
		return err
	}

	e.log.Info("wish rejected and refunded",
		zap.Int("id", wish.ID),
		zap.String("owner", wish.Owner),
		zap.Int("refund", wish.Cost))
	return nil
}

// WishesByOwner lists a kid's wishes.
func (e *Engine) WishesByOwner(ctx context.Context, owner string) ([]core.Wish, error) {
	wishes, err := e.store.Wishes(ctx)
	if err != nil {
		return nil, err
	}
	return core.WishesOwnedBy(wishes, owner), nil
}

// WishesByStatus lists wishes in the given status; parents use this for
// the pending queue.
func (e *Engine) WishesByStatus(ctx context.Context, status core.WishStatus) ([]core.Wish, error) {
	wishes, err := e.store.Wishes(ctx)
	if err != nil {
		return nil, err
	}
	return core.WishesWithStatus(wishes, status), nil
}
