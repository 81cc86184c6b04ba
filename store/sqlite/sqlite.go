/*
Package sqlite provides an embedded-database implementation of core.Store.

PURPOSE:
  The flat file store rewrites a whole collection on every mutation, which
  is fine for a handful of records. This package keeps the exact same
  read/write contract on SQLite for installations that outgrow that: the
  economy engine and auth gate cannot tell the two apart.

KEY TABLES:
  users:        keyed by username
  tasks:        keyed by integer id
  wishes:       keyed by integer id
  achievements: keyed by integer id

CONCURRENCY:
  Uses sync.RWMutex for in-process serialization, mirroring the flat file
  store. SQLite is opened with WAL for better crash recovery.

USAGE:
  store, err := sqlite.New("./data/chores.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - core/store.go: interface definition
  - store/flatfile: the text file implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/chore-engine/core"
)

// Store implements core.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ core.Store = (*Store)(nil)

// New creates a SQLite store at the given path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		username         TEXT PRIMARY KEY,
		password         TEXT NOT NULL,
		role             TEXT NOT NULL,
		level            INTEGER NOT NULL DEFAULT 1,
		current_points   INTEGER NOT NULL DEFAULT 0,
		total_experience INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id          INTEGER PRIMARY KEY,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		points      INTEGER NOT NULL DEFAULT 0,
		status      TEXT NOT NULL,
		type        TEXT NOT NULL,
		assignee    TEXT NOT NULL,
		creator     TEXT NOT NULL DEFAULT '',
		rating      INTEGER NOT NULL DEFAULT 0,
		due_date    TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_assignee ON tasks(assignee);
	CREATE INDEX IF NOT EXISTS idx_tasks_status   ON tasks(status);

	CREATE TABLE IF NOT EXISTS wishes (
		id     INTEGER PRIMARY KEY,
		title  TEXT NOT NULL,
		cost   INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		owner  TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_wishes_owner ON wishes(owner);

	CREATE TABLE IF NOT EXISTS achievements (
		id           INTEGER PRIMARY KEY,
		title        TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		reward       TEXT NOT NULL DEFAULT '',
		creator_role TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Reload is a no-op: the database is always the authoritative view, so
// there is no in-memory state to refresh.
func (s *Store) Reload(_ context.Context) error { return nil }

// =============================================================================
// USERS
// =============================================================================

func (s *Store) Users(ctx context.Context) ([]core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT username, password, role, level, current_points, total_experience
		 FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []core.User
	for rows.Next() {
		var u core.User
		var role string
		if err := rows.Scan(&u.Username, &u.Password, &role, &u.Level,
			&u.CurrentPoints, &u.TotalExperience); err != nil {
			return nil, err
		}
		u.Role = core.Role(role)
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) UserByUsername(ctx context.Context, username string) (core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var u core.User
	var role string
	err := s.db.QueryRowContext(ctx,
		`SELECT username, password, role, level, current_points, total_experience
		 FROM users WHERE username = ?`, username).
		Scan(&u.Username, &u.Password, &role, &u.Level, &u.CurrentPoints, &u.TotalExperience)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, fmt.Errorf("%q: %w", username, core.ErrUserNotFound)
	}
	if err != nil {
		return core.User{}, fmt.Errorf("query user: %w", err)
	}
	u.Role = core.Role(role)
	return u, nil
}

func (s *Store) SaveUser(ctx context.Context, u core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, password, role, level, current_points, total_experience)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(username) DO UPDATE SET
			password = excluded.password,
			role = excluded.role,
			level = excluded.level,
			current_points = excluded.current_points,
			total_experience = excluded.total_experience`,
		u.Username, u.Password, string(u.Role), u.Level, u.CurrentPoints, u.TotalExperience)
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// =============================================================================
// TASKS
// =============================================================================

func (s *Store) Tasks(ctx context.Context) ([]core.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryTasks(ctx, `SELECT id, title, description, points, status, type,
		assignee, creator, rating, due_date FROM tasks ORDER BY id`)
}

func (s *Store) queryTasks(ctx context.Context, query string, args ...any) ([]core.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []core.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (core.Task, error) {
	var t core.Task
	var status, typ, due string
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Points, &status, &typ,
		&t.Assignee, &t.Creator, &t.Rating, &due); err != nil {
		return core.Task{}, err
	}
	t.Status = core.TaskStatus(status)
	t.Type = core.TaskType(typ)
	d, err := core.ParseDate(due)
	if err != nil {
		return core.Task{}, fmt.Errorf("task %d: bad due_date %q: %w", t.ID, due, err)
	}
	t.DueDate = d
	return t, nil
}

func (s *Store) TaskByID(ctx context.Context, id int) (core.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `SELECT id, title, description, points, status, type,
		assignee, creator, rating, due_date FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Task{}, fmt.Errorf("id %d: %w", id, core.ErrTaskNotFound)
	}
	if err != nil {
		return core.Task{}, fmt.Errorf("query task: %w", err)
	}
	return t, nil
}

func (s *Store) SaveTask(ctx context.Context, t core.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, description, points, status, type, assignee, creator, rating, due_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			points = excluded.points,
			status = excluded.status,
			type = excluded.type,
			assignee = excluded.assignee,
			creator = excluded.creator,
			rating = excluded.rating,
			due_date = excluded.due_date`,
		t.ID, t.Title, t.Description, t.Points, string(t.Status), string(t.Type),
		t.Assignee, t.Creator, t.Rating, t.DueDate.String())
	if err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

func (s *Store) NextTaskID(ctx context.Context) (int, error) {
	return s.nextID(ctx, "tasks")
}

// =============================================================================
// WISHES
// =============================================================================

func (s *Store) Wishes(ctx context.Context) ([]core.Wish, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, cost, status, owner FROM wishes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query wishes: %w", err)
	}
	defer rows.Close()

	var wishes []core.Wish
	for rows.Next() {
		var w core.Wish
		var status string
		if err := rows.Scan(&w.ID, &w.Title, &w.Cost, &status, &w.Owner); err != nil {
			return nil, err
		}
		w.Status = core.WishStatus(status)
		wishes = append(wishes, w)
	}
	return wishes, rows.Err()
}

func (s *Store) WishByID(ctx context.Context, id int) (core.Wish, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var w core.Wish
	var status string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, cost, status, owner FROM wishes WHERE id = ?`, id).
		Scan(&w.ID, &w.Title, &w.Cost, &status, &w.Owner)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Wish{}, fmt.Errorf("id %d: %w", id, core.ErrWishNotFound)
	}
	if err != nil {
		return core.Wish{}, fmt.Errorf("query wish: %w", err)
	}
	w.Status = core.WishStatus(status)
	return w, nil
}

func (s *Store) AddWish(ctx context.Context, w core.Wish) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO wishes (id, title, cost, status, owner) VALUES (?, ?, ?, ?, ?)`,
		w.ID, w.Title, w.Cost, string(w.Status), w.Owner)
	if err != nil {
		return fmt.Errorf("add wish: %w", err)
	}
	return nil
}

func (s *Store) SaveWish(ctx context.Context, w core.Wish) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO wishes (id, title, cost, status, owner)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			cost = excluded.cost,
			status = excluded.status,
			owner = excluded.owner`,
		w.ID, w.Title, w.Cost, string(w.Status), w.Owner)
	if err != nil {
		return fmt.Errorf("save wish: %w", err)
	}
	return nil
}

func (s *Store) DeleteWish(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM wishes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete wish: %w", err)
	}
	return nil
}

func (s *Store) NextWishID(ctx context.Context) (int, error) {
	return s.nextID(ctx, "wishes")
}

// =============================================================================
// ACHIEVEMENTS
// =============================================================================

func (s *Store) Achievements(ctx context.Context) ([]core.Achievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, reward, creator_role FROM achievements ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query achievements: %w", err)
	}
	defer rows.Close()

	var achievements []core.Achievement
	for rows.Next() {
		var a core.Achievement
		var role string
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.Reward, &role); err != nil {
			return nil, err
		}
		a.CreatorRole = core.Role(role)
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}

func (s *Store) AddAchievement(ctx context.Context, a core.Achievement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO achievements (id, title, description, reward, creator_role)
		 VALUES (?, ?, ?, ?, ?)`,
		a.ID, a.Title, a.Description, a.Reward, string(a.CreatorRole))
	if err != nil {
		return fmt.Errorf("add achievement: %w", err)
	}
	return nil
}

func (s *Store) NextAchievementID(ctx context.Context) (int, error) {
	return s.nextID(ctx, "achievements")
}

// nextID allocates max(id)+1 within this process. Matches the flat file
// store's allocation rule exactly.
func (s *Store) nextID(ctx context.Context, table string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var next int
	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(id), 0) + 1 FROM "+table).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next id for %s: %w", table, err)
	}
	return next, nil
}
