/*
Package auth is the thin session gate in front of the chore economy.

Credentials are checked by plain equality against the stored password;
the record format predates this implementation and carries no hashes.
That is an accepted property of a single-user local tool, not an
oversight. Login and logout force a full store reload so every session
starts from a fresh view of the backing files.
*/
package auth

import (
	"context"
	"fmt"

	"github.com/warp/chore-engine/core"
)

// Gate authenticates users against the store.
type Gate struct {
	store core.Store
}

func NewGate(store core.Store) *Gate {
	return &Gate{store: store}
}

// Authenticate reports whether a user with exactly this username exists
// and its stored password equals the supplied one.
func (g *Gate) Authenticate(ctx context.Context, username, password string) bool {
	user, err := g.store.UserByUsername(ctx, username)
	if err != nil {
		return false
	}
	return user.Password == password
}

// Login authenticates and additionally checks that the user's role
// matches the one selected at the login screen. The store is reloaded
// first so the session sees current data.
func (g *Gate) Login(ctx context.Context, username, password string, expected core.Role) (core.User, error) {
	if err := g.store.Reload(ctx); err != nil {
		return core.User{}, err
	}

	user, err := g.store.UserByUsername(ctx, username)
	if err != nil || user.Password != password {
		return core.User{}, fmt.Errorf("login %s: %w", username, core.ErrInvalidCredentials)
	}
	if user.Role != expected {
		return core.User{}, fmt.Errorf("%s is a %s, not a %s: %w",
			username, user.Role, expected, core.ErrRoleMismatch)
	}
	return user, nil
}

// Logout ends a session. The reload guarantees the next caller sees
// whatever the session wrote.
func (g *Gate) Logout(ctx context.Context) error {
	return g.store.Reload(ctx)
}
