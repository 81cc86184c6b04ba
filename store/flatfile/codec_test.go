package flatfile_test

import (
	"errors"
	"testing"
	"time"

	"github.com/warp/chore-engine/core"
	"github.com/warp/chore-engine/store/flatfile"
)

// =============================================================================
// ROUND TRIPS
// =============================================================================

func TestUser_RoundTrip(t *testing.T) {
	u := core.User{
		Username:        "kid1",
		Password:        "secret",
		Role:            core.RoleKid,
		Level:           3,
		CurrentPoints:   40,
		TotalExperience: 120,
	}

	got, err := flatfile.DecodeUser(flatfile.EncodeUser(u))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != u {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, u)
	}
}

func TestTask_RoundTrip_WithDueDate(t *testing.T) {
	task := core.Task{
		ID:          7,
		Title:       "Math homework",
		Description: "Pages 10-12",
		Points:      0,
		Status:      core.StatusFinalized,
		Type:        core.TypeSchool,
		Assignee:    "kid1",
		Creator:     "teacher1",
		Rating:      5,
		DueDate:     core.NewDate(2025, time.June, 1),
	}

	got, err := flatfile.DecodeTask(flatfile.EncodeTask(task))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != task {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, task)
	}
}

func TestTask_RoundTrip_EmptyOptionalFields(t *testing.T) {
	// Empty creator and absent due date must survive the trip.
	task := core.Task{
		ID:       1,
		Title:    "Clean room",
		Points:   20,
		Status:   core.StatusAssigned,
		Type:     core.TypeHome,
		Assignee: "kid1",
	}

	got, err := flatfile.DecodeTask(flatfile.EncodeTask(task))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != task {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, task)
	}
	if !got.DueDate.IsZero() {
		t.Errorf("due date should stay zero, got %s", got.DueDate)
	}
}

func TestWish_RoundTrip(t *testing.T) {
	w := core.Wish{ID: 2, Title: "Lego set", Cost: 30, Status: core.WishPending, Owner: "kid1"}

	got, err := flatfile.DecodeWish(flatfile.EncodeWish(w))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != w {
		t.Errorf("round trip mismatch: got %+v want %+v", got, w)
	}
}

func TestAchievement_RoundTrip(t *testing.T) {
	a := core.Achievement{
		ID:          4,
		Title:       "Bookworm",
		Description: "Read ten books",
		Reward:      "Trip to the zoo",
		CreatorRole: core.RoleTeacher,
	}

	got, err := flatfile.DecodeAchievement(flatfile.EncodeAchievement(a))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != a {
		t.Errorf("round trip mismatch: got %+v want %+v", got, a)
	}
}

// =============================================================================
// LEGACY TASK LAYOUT
// =============================================================================

func TestTask_LegacyNineFieldLayout(t *testing.T) {
	// GIVEN: a task line written before the creator column existed
	// WHEN: decoding
	// THEN: it parses with Creator reconstructed as ""

	line := "3;Do dishes;After dinner;15;ASSIGNED;HOME;kid1;0;2025-03-10"

	got, err := flatfile.DecodeTask(line)
	if err != nil {
		t.Fatalf("decode legacy line: %v", err)
	}
	if got.Creator != "" {
		t.Errorf("legacy creator = %q, want empty", got.Creator)
	}
	if got.ID != 3 || got.Points != 15 || got.Rating != 0 {
		t.Errorf("unexpected fields: %+v", got)
	}
	if got.DueDate.String() != "2025-03-10" {
		t.Errorf("dueDate = %s, want 2025-03-10", got.DueDate)
	}
}

// =============================================================================
// DECODE ERRORS
// =============================================================================

func TestDecode_Errors(t *testing.T) {
	cases := []struct {
		name   string
		decode func(string) error
		line   string
	}{
		{"user: wrong field count", wrapUser, "kid1;pw;KID;1;0"},
		{"user: unknown role", wrapUser, "kid1;pw;WIZARD;1;0;0"},
		{"user: non-integer level", wrapUser, "kid1;pw;KID;one;0;0"},
		{"task: eight fields", wrapTask, "1;a;b;10;ASSIGNED;HOME;kid1;0"},
		{"task: eleven fields", wrapTask, "1;a;b;10;ASSIGNED;HOME;kid1;p;0;;extra"},
		{"task: unknown status", wrapTask, "1;a;b;10;OPEN;HOME;kid1;p;0;"},
		{"task: lowercase status", wrapTask, "1;a;b;10;assigned;HOME;kid1;p;0;"},
		{"task: unknown type", wrapTask, "1;a;b;10;ASSIGNED;WORK;kid1;p;0;"},
		{"task: bad due date", wrapTask, "1;a;b;10;ASSIGNED;HOME;kid1;p;0;tomorrow"},
		{"task: non-integer points", wrapTask, "1;a;b;ten;ASSIGNED;HOME;kid1;p;0;"},
		{"wish: wrong field count", wrapWish, "1;Lego;30;PENDING"},
		{"wish: unknown status", wrapWish, "1;Lego;30;GRANTED;kid1"},
		{"wish: non-integer cost", wrapWish, "1;Lego;lots;PENDING;kid1"},
		{"achievement: wrong field count", wrapAchievement, "1;t;d;r;PARENT;x"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.decode(c.line)
			if err == nil {
				t.Fatalf("expected decode error for %q", c.line)
			}
			if !errors.Is(err, core.ErrDecode) {
				t.Errorf("error should wrap ErrDecode, got %v", err)
			}
			var de *core.DecodeError
			if !errors.As(err, &de) {
				t.Errorf("error should be a *DecodeError, got %T", err)
			}
		})
	}
}

// An achievement authored under the KID role name is a valid Role by the
// enum but invalid by policy; the codec only enforces the enum.
func TestDecodeAchievement_KidRoleParses(t *testing.T) {
	got, err := flatfile.DecodeAchievement("1;t;d;r;KID")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.CreatorRole != core.RoleKid {
		t.Errorf("creatorRole = %s", got.CreatorRole)
	}
}

func wrapUser(line string) error        { _, err := flatfile.DecodeUser(line); return err }
func wrapTask(line string) error        { _, err := flatfile.DecodeTask(line); return err }
func wrapWish(line string) error        { _, err := flatfile.DecodeWish(line); return err }
func wrapAchievement(line string) error { _, err := flatfile.DecodeAchievement(line); return err }
