/*
main.go - Application entry point

PURPOSE:
  Command-line front end for the chore economy. Every invocation opens
  the store, authenticates the acting user where required, performs one
  operation, and exits. There is no server and no network surface.

STORAGE SELECTION:
  --data   directory of ;-delimited text files (default "data")
  --db     SQLite database path; overrides --data when set
           Use ":memory:" for a throwaway database

ACTING USER:
  --user / --password identify who is performing the command. Role
  checks happen in the engine, so a kid invoking "task approve" gets
  the same refusal the engine gives any kid.

EXAMPLES:
  # Seed a household
  ./chorecab user seed mom secret PARENT
  ./chorecab user seed timmy pw KID

  # A parent assigns a chore, the kid completes it
  ./chorecab --user mom --password secret task add "Dishes" --points 20 --assignee timmy
  ./chorecab --user timmy --password pw task complete 1
  ./chorecab --user mom --password secret task approve 1

SEE ALSO:
  - economy/engine.go: operation semantics
  - store/flatfile/flatfile.go: default backing store
*/
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/warp/chore-engine/auth"
	"github.com/warp/chore-engine/core"
	"github.com/warp/chore-engine/economy"
	"github.com/warp/chore-engine/logging"
	"github.com/warp/chore-engine/store/flatfile"
	"github.com/warp/chore-engine/store/sqlite"
)

func main() {
	a := &app{}

	root := &cobra.Command{
		Use:           "chorecab",
		Short:         "Family chore and reward tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.dataDir, "data", "data", "directory holding the text-file store")
	pf.StringVar(&a.dbPath, "db", "", "SQLite database path (overrides --data)")
	pf.StringVar(&a.username, "user", "", "acting username")
	pf.StringVar(&a.password, "password", "", "acting user's password")
	pf.StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&a.logFile, "log-file", "", "optional rotating log file")

	root.AddCommand(taskCmd(a))
	root.AddCommand(wishCmd(a))
	root.AddCommand(achievementCmd(a))
	root.AddCommand(statusCmd(a))
	root.AddCommand(userCmd(a))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "chorecab:", err)
		os.Exit(1)
	}
}

// app carries the wired dependencies shared by every subcommand.
type app struct {
	dataDir  string
	dbPath   string
	username string
	password string
	logLevel string
	logFile  string

	log    *zap.Logger
	store  core.Store
	engine *economy.Engine
	gate   *auth.Gate
}

func (a *app) open() error {
	a.log = logging.New(logging.Options{Level: a.logLevel, Path: a.logFile})

	var err error
	if a.dbPath != "" {
		a.store, err = sqlite.New(a.dbPath)
	} else {
		a.store, err = flatfile.New(a.dataDir, a.log)
	}
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	if err := a.store.Reload(context.Background()); err != nil {
		return fmt.Errorf("load store: %w", err)
	}

	a.engine = economy.New(a.store, a.log)
	a.gate = auth.NewGate(a.store)
	return nil
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn("closing store", zap.Error(err))
		}
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}

// actor authenticates the --user/--password pair and returns the stored
// user record. Role enforcement is left to the engine.
func (a *app) actor(ctx context.Context) (core.User, error) {
	if a.username == "" {
		return core.User{}, fmt.Errorf("--user is required for this command: %w", core.ErrValidation)
	}
	if !a.gate.Authenticate(ctx, a.username, a.password) {
		return core.User{}, fmt.Errorf("login %s: %w", a.username, core.ErrInvalidCredentials)
	}
	return a.store.UserByUsername(ctx, a.username)
}
