package flatfile_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/warp/chore-engine/core"
	"github.com/warp/chore-engine/store/flatfile"
)

func newTestStore(t *testing.T) *flatfile.Store {
	t.Helper()
	s, err := flatfile.New(filepath.Join(t.TempDir(), "data"), nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func writeFile(t *testing.T, s *flatfile.Store, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(s.Dir(), name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, s *flatfile.Store, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(s.Dir(), name))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// =============================================================================
// FIRST USE / LOAD
// =============================================================================

func TestNew_CreatesDirectoryAndEmptyFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	s, err := flatfile.New(dir, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	for _, name := range []string{"Users.txt", "Tasks.txt", "Wishes.txt", "Achievements.txt"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s should exist: %v", name, err)
		}
	}

	users, err := s.Users(context.Background())
	if err != nil {
		t.Fatalf("users: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("fresh store should be empty, got %d users", len(users))
	}
}

func TestReload_SkipsBlankAndMalformedLines(t *testing.T) {
	// GIVEN: a users file with blank lines and one unparseable record
	// WHEN: reloading
	// THEN: good records load, the bad line is skipped, load does not abort

	s := newTestStore(t)
	writeFile(t, s, flatfile.UsersFile, strings.Join([]string{
		"kid1;pw;KID;1;0;0",
		"",
		"garbage line without fields",
		"parent1;pw;PARENT;1;0;0",
		"   ",
	}, "\n")+"\n")

	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}

	users, _ := s.Users(context.Background())
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].Username != "kid1" || users[1].Username != "parent1" {
		t.Errorf("unexpected users: %+v", users)
	}
}

func TestReload_KeepsFieldEdgeWhitespace(t *testing.T) {
	// GIVEN: records whose first or last field carries edge whitespace
	// WHEN: the store reloads them from disk
	// THEN: the fields survive byte for byte; only line endings are
	//       stripped, not whitespace belonging to a field value

	s := newTestStore(t)
	ctx := context.Background()

	saved := core.User{Username: " kid1", Password: "pw", Role: core.RoleKid, Level: 1}
	if err := s.SaveUser(ctx, saved); err != nil {
		t.Fatal(err)
	}
	writeFile(t, s, flatfile.WishesFile, "1;Lego set;30;PENDING;kid1 \r\n")

	if err := s.Reload(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}

	got, err := s.UserByUsername(ctx, " kid1")
	if err != nil {
		t.Fatalf("leading space lost from username: %v", err)
	}
	if got != saved {
		t.Errorf("user round trip: got %+v, want %+v", got, saved)
	}

	wish, err := s.WishByID(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if wish.Owner != "kid1 " {
		t.Errorf("owner = %q, want trailing space kept and CR stripped", wish.Owner)
	}
}

func TestReload_ReplacesPreviousState(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveUser(ctx, core.User{Username: "kid1", Role: core.RoleKid, Level: 1}); err != nil {
		t.Fatal(err)
	}

	// Overwrite the backing file behind the store's back, then reload.
	writeFile(t, s, flatfile.UsersFile, "other;pw;KID;1;0;0\n")
	if err := s.Reload(ctx); err != nil {
		t.Fatal(err)
	}

	if _, err := s.UserByUsername(ctx, "kid1"); !core.IsNotFound(err) {
		t.Errorf("kid1 should be gone after reload, got %v", err)
	}
	if _, err := s.UserByUsername(ctx, "other"); err != nil {
		t.Errorf("other should be present: %v", err)
	}
}

// =============================================================================
// SAVE / UPSERT / DELETE
// =============================================================================

func TestSaveTask_UpsertsByID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	task := core.Task{ID: 1, Title: "Clean room", Points: 20,
		Status: core.StatusAssigned, Type: core.TypeHome, Assignee: "kid1", Creator: "parent1"}
	if err := s.SaveTask(ctx, task); err != nil {
		t.Fatal(err)
	}

	task.Status = core.StatusPendingApproval
	if err := s.SaveTask(ctx, task); err != nil {
		t.Fatal(err)
	}

	tasks, _ := s.Tasks(ctx)
	if len(tasks) != 1 {
		t.Fatalf("upsert should replace, got %d tasks", len(tasks))
	}
	if tasks[0].Status != core.StatusPendingApproval {
		t.Errorf("status = %s", tasks[0].Status)
	}

	// The backing file holds exactly the one rewritten record.
	content := readFile(t, s, flatfile.TasksFile)
	if strings.Count(content, "\n") != 1 {
		t.Errorf("expected one record line, file:\n%s", content)
	}
	if !strings.HasSuffix(content, "\n") {
		t.Error("records need a trailing newline")
	}
}

func TestDeleteWish_RemovesAndPersists(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_ = s.AddWish(ctx, core.Wish{ID: 1, Title: "Lego", Cost: 30, Status: core.WishPending, Owner: "kid1"})
	_ = s.AddWish(ctx, core.Wish{ID: 2, Title: "Bike", Cost: 90, Status: core.WishPending, Owner: "kid1"})

	if err := s.DeleteWish(ctx, 1); err != nil {
		t.Fatal(err)
	}

	wishes, _ := s.Wishes(ctx)
	if len(wishes) != 1 || wishes[0].ID != 2 {
		t.Errorf("unexpected wishes after delete: %+v", wishes)
	}
	if strings.Contains(readFile(t, s, flatfile.WishesFile), "Lego") {
		t.Error("deleted wish still present in backing file")
	}
}

func TestGetAll_ReturnsDefensiveCopy(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_ = s.SaveUser(ctx, core.User{Username: "kid1", Role: core.RoleKid, Level: 1})

	users, _ := s.Users(ctx)
	users[0].CurrentPoints = 9999

	again, _ := s.Users(ctx)
	if again[0].CurrentPoints != 0 {
		t.Error("mutating a returned slice leaked into the store")
	}
}

// =============================================================================
// ID ALLOCATION
// =============================================================================

func TestNextID_EmptyAndSparse(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if id, _ := s.NextTaskID(ctx); id != 1 {
		t.Errorf("empty collection NextTaskID = %d, want 1", id)
	}

	for _, id := range []int{3, 7, 2} {
		_ = s.SaveTask(ctx, core.Task{ID: id, Title: "t", Status: core.StatusAssigned,
			Type: core.TypeHome, Assignee: "kid1"})
	}
	if id, _ := s.NextTaskID(ctx); id != 8 {
		t.Errorf("NextTaskID over {3,7,2} = %d, want 8", id)
	}

	if id, _ := s.NextWishID(ctx); id != 1 {
		t.Errorf("empty NextWishID = %d, want 1", id)
	}
	if id, _ := s.NextAchievementID(ctx); id != 1 {
		t.Errorf("empty NextAchievementID = %d, want 1", id)
	}
}

// =============================================================================
// LEGACY RECORDS THROUGH THE STORE
// =============================================================================

func TestLoad_LegacyTaskLineRewrittenInCurrentLayout(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	writeFile(t, s, flatfile.TasksFile, "3;Do dishes;After dinner;15;ASSIGNED;HOME;kid1;0;\n")
	if err := s.Reload(ctx); err != nil {
		t.Fatal(err)
	}

	task, err := s.TaskByID(ctx, 3)
	if err != nil {
		t.Fatalf("legacy task should load: %v", err)
	}
	if task.Creator != "" {
		t.Errorf("creator = %q, want empty", task.Creator)
	}

	// Any save rewrites the collection in the 10-field layout.
	if err := s.SaveTask(ctx, task); err != nil {
		t.Fatal(err)
	}
	line := strings.TrimSpace(readFile(t, s, flatfile.TasksFile))
	if got := strings.Count(line, ";"); got != 9 {
		t.Errorf("rewritten line has %d delimiters, want 9: %s", got, line)
	}
}
