/*
Package flatfile provides the flat text file implementation of core.Store.

PURPOSE:
  Persists the four entity collections as one ;-delimited UTF-8 text file
  per collection under a data directory:

    data/Users.txt  data/Tasks.txt  data/Wishes.txt  data/Achievements.txt

  The store keeps each collection in memory as the single source of truth
  for the running process and rewrites the whole backing file on every
  mutation. This is a full-collection rewrite, not an append log: a crash
  mid-write can truncate a file. Accepted risk for a local single-user
  tool with small datasets.

LOAD SEMANTICS:
  - A missing file or directory is an empty collection; both are created
    on first use.
  - Blank lines are skipped.
  - A line that fails to decode is skipped with a logged warning and the
    load continues. Parse failures never abort the process.
  - An unreadable file degrades to an empty collection (logged).

CONCURRENCY:
  A sync.RWMutex serializes access so read-modify-write sequences from
  multiple goroutines in one process stay consistent. The backing files
  are NOT locked against other processes; concurrent external writers
  would corrupt a collection.

SEE ALSO:
  - codec.go: record line layouts
  - core/store.go: the contract this implements
  - store/sqlite: same contract on an embedded database
*/
package flatfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/warp/chore-engine/core"
)

const (
	UsersFile        = "Users.txt"
	TasksFile        = "Tasks.txt"
	WishesFile       = "Wishes.txt"
	AchievementsFile = "Achievements.txt"
)

// Store implements core.Store on flat delimited text files.
type Store struct {
	dir string
	log *zap.Logger

	mu           sync.RWMutex
	users        []core.User
	tasks        []core.Task
	wishes       []core.Wish
	achievements []core.Achievement
}

var _ core.Store = (*Store)(nil)

// New opens (creating if necessary) the data directory and backing files,
// then loads all collections. A nil logger disables logging.
func New(dir string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory %s: %w", dir, err)
	}
	s := &Store{dir: dir, log: log}
	for _, name := range []string{UsersFile, TasksFile, WishesFile, AchievementsFile} {
		if err := touch(filepath.Join(dir, name)); err != nil {
			return nil, err
		}
	}
	if err := s.Reload(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// Dir returns the data directory path.
func (s *Store) Dir() string { return s.dir }

// Close is a no-op for the flat file store; every mutation is flushed
// immediately.
func (s *Store) Close() error { return nil }

func touch(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	return f.Close()
}

// =============================================================================
// LOAD
// =============================================================================

// Reload replaces all in-memory collections from the backing files.
func (s *Store) Reload(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = loadRecords(s, UsersFile, DecodeUser)
	s.tasks = loadRecords(s, TasksFile, DecodeTask)
	s.wishes = loadRecords(s, WishesFile, DecodeWish)
	s.achievements = loadRecords(s, AchievementsFile, DecodeAchievement)
	return nil
}

// loadRecords reads one collection file line by line. Blank lines are
// skipped; lines that fail to decode are logged and skipped; an
// unreadable file yields an empty collection.
func loadRecords[T any](s *Store, name string, decode func(string) (T, error)) []T {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Error("read collection failed, treating as empty",
				zap.String("file", path), zap.Error(err))
		}
		return nil
	}

	var out []T
	for _, line := range strings.Split(string(data), "\n") {
		// Trim only line endings: edge whitespace belongs to the
		// first/last field and must survive a round trip.
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := decode(line)
		if err != nil {
			s.log.Warn("skipping malformed record",
				zap.String("file", name), zap.Error(err))
			continue
		}
		out = append(out, rec)
	}
	return out
}

// =============================================================================
// SAVE - full-collection rewrite
// =============================================================================

func (s *Store) writeCollection(name string, lines []string) error {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		s.log.Error("write collection failed", zap.String("file", path), zap.Error(err))
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (s *Store) flushUsersLocked() error {
	lines := make([]string, 0, len(s.users))
	for _, u := range s.users {
		lines = append(lines, EncodeUser(u))
	}
	return s.writeCollection(UsersFile, lines)
}

func (s *Store) flushTasksLocked() error {
	lines := make([]string, 0, len(s.tasks))
	for _, t := range s.tasks {
		lines = append(lines, EncodeTask(t))
	}
	return s.writeCollection(TasksFile, lines)
}

func (s *Store) flushWishesLocked() error {
	lines := make([]string, 0, len(s.wishes))
	for _, w := range s.wishes {
		lines = append(lines, EncodeWish(w))
	}
	return s.writeCollection(WishesFile, lines)
}

func (s *Store) flushAchievementsLocked() error {
	lines := make([]string, 0, len(s.achievements))
	for _, a := range s.achievements {
		lines = append(lines, EncodeAchievement(a))
	}
	return s.writeCollection(AchievementsFile, lines)
}

// =============================================================================
// USERS
// =============================================================================

func (s *Store) Users(_ context.Context) ([]core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.User(nil), s.users...), nil
}

func (s *Store) UserByUsername(_ context.Context, username string) (core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return core.User{}, fmt.Errorf("%q: %w", username, core.ErrUserNotFound)
}

func (s *Store) SaveUser(_ context.Context, u core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].Username == u.Username {
			s.users[i] = u
			return s.flushUsersLocked()
		}
	}
	s.users = append(s.users, u)
	return s.flushUsersLocked()
}

// =============================================================================
// TASKS
// =============================================================================

func (s *Store) Tasks(_ context.Context) ([]core.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Task(nil), s.tasks...), nil
}

func (s *Store) TaskByID(_ context.Context, id int) (core.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return core.Task{}, fmt.Errorf("id %d: %w", id, core.ErrTaskNotFound)
}

func (s *Store) SaveTask(_ context.Context, t core.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == t.ID {
			s.tasks[i] = t
			return s.flushTasksLocked()
		}
	}
	s.tasks = append(s.tasks, t)
	return s.flushTasksLocked()
}

func (s *Store) NextTaskID(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	max := 0
	for _, t := range s.tasks {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1, nil
}

// =============================================================================
// WISHES
// =============================================================================

func (s *Store) Wishes(_ context.Context) ([]core.Wish, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Wish(nil), s.wishes...), nil
}

func (s *Store) WishByID(_ context.Context, id int) (core.Wish, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, w := range s.wishes {
		if w.ID == id {
			return w, nil
		}
	}
	return core.Wish{}, fmt.Errorf("id %d: %w", id, core.ErrWishNotFound)
}

func (s *Store) AddWish(_ context.Context, w core.Wish) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wishes = append(s.wishes, w)
	return s.flushWishesLocked()
}

func (s *Store) SaveWish(_ context.Context, w core.Wish) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.wishes {
		if s.wishes[i].ID == w.ID {
			s.wishes[i] = w
			return s.flushWishesLocked()
		}
	}
	s.wishes = append(s.wishes, w)
	return s.flushWishesLocked()
}

func (s *Store) DeleteWish(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.wishes[:0]
	for _, w := range s.wishes {
		if w.ID != id {
			kept = append(kept, w)
		}
	}
	s.wishes = kept
	return s.flushWishesLocked()
}

func (s *Store) NextWishID(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	max := 0
	for _, w := range s.wishes {
		if w.ID > max {
			max = w.ID
		}
	}
	return max + 1, nil
}

// =============================================================================
// ACHIEVEMENTS
// =============================================================================

func (s *Store) Achievements(_ context.Context) ([]core.Achievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Achievement(nil), s.achievements...), nil
}

func (s *Store) AddAchievement(_ context.Context, a core.Achievement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.achievements = append(s.achievements, a)
	return s.flushAchievementsLocked()
}

func (s *Store) NextAchievementID(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	max := 0
	for _, a := range s.achievements {
		if a.ID > max {
			max = a.ID
		}
	}
	return max + 1, nil
}
