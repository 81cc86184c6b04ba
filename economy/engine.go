/*
Package economy implements the chore economy: the task approval state
machine, point and experience accrual, wish redemption, and achievements.

PURPOSE:
  All business rules live here, operating on value entities from core and
  persisting through a core.Store. The engine never touches files or SQL
  itself; every mutation is a read-modify-write of the authoritative
  collection through the store.

STATE MACHINE:
  ASSIGNED -> PENDING_APPROVAL -> COMPLETED   (home task, parent approves)
                               -> FINALIZED   (school task, teacher rates)
                               -> REJECTED    (terminal; assign a new task)

REWARDS:
  Approving a home task credits the task's own point value. Rating a
  school task credits stars*10 regardless of the task's point value.
  The asymmetry is inherited behavior and deliberate; see DESIGN.md.
  Both credits grow spendable points and lifetime experience together,
  and the level only ever rises.

SEE ALSO:
  - tasks.go: task lifecycle and visibility filters
  - wishes.go: point reservation and redemption
  - achievements.go, stats.go
*/
package economy

import (
	"go.uber.org/zap"

	"github.com/warp/chore-engine/core"
)

// Engine validates and applies all economy operations.
type Engine struct {
	store core.Store
	log   *zap.Logger
}

// New constructs an Engine. A nil logger disables logging.
func New(store core.Store, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{store: store, log: log}
}
