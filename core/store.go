/*
store.go - Persistence contract for the four entity collections

PURPOSE:
  Defines the interface between the domain logic and storage. The Store
  owns the authoritative collections for the process lifetime; callers
  receive value copies and write back whole entities.

CONTRACT:
  - Getters return defensive copies; mutating a returned slice or struct
    never affects the store.
  - Save* is an upsert: replace the entity with the same key if present,
    else append; then persist the whole collection.
  - Add* appends without key replacement (wish and achievement creation).
  - Next*ID returns max(existing ids)+1, or 1 for an empty collection.
    Safe within one process only; the store serializes its own access.
  - Reload replaces all in-memory state from backing storage. Callers must
    not assume the in-memory view is live without an explicit Reload;
    the auth gate reloads on login/logout.
  - A missing backing file is an empty collection, not an error. Records
    that fail to decode are skipped with a logged warning.

IMPLEMENTATIONS:
  - store/flatfile: one ;-delimited UTF-8 text file per collection
  - store/sqlite:   embedded database behind the same contract
*/
package core

import "context"

type Store interface {
	// Reload replaces all collections from backing storage.
	Reload(ctx context.Context) error

	// Users
	Users(ctx context.Context) ([]User, error)
	UserByUsername(ctx context.Context, username string) (User, error)
	SaveUser(ctx context.Context, u User) error

	// Tasks
	Tasks(ctx context.Context) ([]Task, error)
	TaskByID(ctx context.Context, id int) (Task, error)
	SaveTask(ctx context.Context, t Task) error
	NextTaskID(ctx context.Context) (int, error)

	// Wishes
	Wishes(ctx context.Context) ([]Wish, error)
	WishByID(ctx context.Context, id int) (Wish, error)
	AddWish(ctx context.Context, w Wish) error
	SaveWish(ctx context.Context, w Wish) error
	DeleteWish(ctx context.Context, id int) error
	NextWishID(ctx context.Context) (int, error)

	// Achievements
	Achievements(ctx context.Context) ([]Achievement, error)
	AddAchievement(ctx context.Context, a Achievement) error
	NextAchievementID(ctx context.Context) (int, error)

	Close() error
}
