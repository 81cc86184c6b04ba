/*
Package core provides the domain model for the chore economy engine.

PURPOSE:
  This package contains the entity types and pure domain rules shared by
  every other package: users with a points/experience ledger, tasks with an
  approval state machine, wishes redeemed against spendable points, and
  achievements. It has no persistence logic of its own; the Store interface
  (store.go) is implemented by store/flatfile and store/sqlite.

KEY CONCEPTS IN THIS FILE (types.go):
  - User: identity + role + level + spendable points + lifetime experience
  - Task: a chore (HOME) or assignment (SCHOOL) moving through approval
  - Wish: a reward request reserved against a kid's point balance
  - Achievement: a read-only badge authored by a parent or teacher

DESIGN PRINCIPLES:
  1. Value records: entities are plain structs copied across boundaries,
     never shared mutable graphs. Mutation is read-modify-write through
     the Store.
  2. Two balances: CurrentPoints is spendable and may go down;
     TotalExperience only ever accrues and drives the level.
  3. Exact enums: role/status/type parse by exact name so file records
     round-trip byte for byte.

SEE ALSO:
  - level.go: leveling and reward formulas
  - errors.go: error taxonomy
  - store.go: persistence contract
*/
package core

import (
	"fmt"
	"strings"
)

// =============================================================================
// ROLES
// =============================================================================

type Role string

const (
	RoleKid     Role = "KID"
	RoleParent  Role = "PARENT"
	RoleTeacher Role = "TEACHER"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleKid, RoleParent, RoleTeacher:
		return true
	default:
		return false
	}
}

// ParseRole matches a stored role name exactly (case-sensitive).
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", &DecodeError{Entity: "user", Reason: "unknown role " + s}
	}
	return r, nil
}

// =============================================================================
// USER
// =============================================================================

// User is keyed by Username, which is immutable once created.
// Users are seeded out of band; the engine only ever mutates the
// level/points/experience fields.
type User struct {
	Username        string
	Password        string
	Role            Role
	Level           int
	CurrentPoints   int
	TotalExperience int
}

// =============================================================================
// TASK
// =============================================================================

type TaskStatus string

const (
	StatusAssigned        TaskStatus = "ASSIGNED"
	StatusPendingApproval TaskStatus = "PENDING_APPROVAL"
	StatusCompleted       TaskStatus = "COMPLETED"
	StatusFinalized       TaskStatus = "FINALIZED"
	StatusRejected        TaskStatus = "REJECTED"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusAssigned, StatusPendingApproval, StatusCompleted, StatusFinalized, StatusRejected:
		return true
	default:
		return false
	}
}

func ParseTaskStatus(s string) (TaskStatus, error) {
	st := TaskStatus(s)
	if !st.IsValid() {
		return "", &DecodeError{Entity: "task", Reason: "unknown status " + s}
	}
	return st, nil
}

type TaskType string

const (
	TypeSchool TaskType = "SCHOOL"
	TypeHome   TaskType = "HOME"
)

func (t TaskType) IsValid() bool {
	return t == TypeSchool || t == TypeHome
}

func ParseTaskType(s string) (TaskType, error) {
	tt := TaskType(s)
	if !tt.IsValid() {
		return "", &DecodeError{Entity: "task", Reason: "unknown type " + s}
	}
	return tt, nil
}

// Task is keyed by an integer ID allocated by the Store.
// Creator may be empty for records written before the creator field
// existed; such tasks are approvable by any user of the matching role.
// Rating is 0 (unrated) except on FINALIZED SCHOOL tasks, where it is 1-5.
type Task struct {
	ID          int
	Title       string
	Description string
	Points      int
	Status      TaskStatus
	Type        TaskType
	Assignee    string
	Creator     string
	Rating      int
	DueDate     Date
}

// =============================================================================
// WISH
// =============================================================================

type WishStatus string

const (
	WishPending  WishStatus = "PENDING"
	WishApproved WishStatus = "APPROVED"
)

func (s WishStatus) IsValid() bool {
	return s == WishPending || s == WishApproved
}

func ParseWishStatus(s string) (WishStatus, error) {
	ws := WishStatus(s)
	if !ws.IsValid() {
		return "", &DecodeError{Entity: "wish", Reason: "unknown status " + s}
	}
	return ws, nil
}

// Wish is a reward request. Its cost is reserved against the owner's
// spendable points at creation time: approval consumes the reservation,
// rejection refunds it and removes the record.
type Wish struct {
	ID     int
	Title  string
	Cost   int
	Status WishStatus
	Owner  string
}

// =============================================================================
// ACHIEVEMENT
// =============================================================================

// Achievement is read-only after creation. Kids cannot author them.
type Achievement struct {
	ID          int
	Title       string
	Description string
	Reward      string
	CreatorRole Role
}

// =============================================================================
// FIELD TEXT
// =============================================================================

// FieldDelimiter separates fields within a persisted record line. The
// codec does not escape it, so no stored text value may contain it.
const FieldDelimiter = ";"

// CheckFieldText rejects any value containing the record delimiter.
// Every user-supplied string must pass through this before it is stored;
// a value that slipped through would corrupt its record on the next load.
func CheckFieldText(values ...string) error {
	for _, v := range values {
		if strings.Contains(v, FieldDelimiter) {
			return fmt.Errorf("value %q must not contain %q: %w", v, FieldDelimiter, ErrValidation)
		}
	}
	return nil
}
