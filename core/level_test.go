package core_test

import (
	"testing"

	"github.com/warp/chore-engine/core"
)

func TestLevelForExperience_Thresholds(t *testing.T) {
	cases := []struct {
		exp  int
		want int
	}{
		{0, 1},
		{49, 1},
		{50, 2},
		{99, 2},
		{100, 3},
		{149, 3},
		{150, 4},
		{-5, 1},
	}
	for _, c := range cases {
		if got := core.LevelForExperience(c.exp); got != c.want {
			t.Errorf("LevelForExperience(%d) = %d, want %d", c.exp, got, c.want)
		}
	}
}

func TestCredit_RaisesLevelAndBothBalances(t *testing.T) {
	u := core.User{Username: "kid1", Role: core.RoleKid, Level: 1}

	u.Credit(20)
	if u.CurrentPoints != 20 || u.TotalExperience != 20 || u.Level != 1 {
		t.Fatalf("after 20: points=%d exp=%d level=%d", u.CurrentPoints, u.TotalExperience, u.Level)
	}

	u.Credit(40)
	if u.Level != 2 {
		t.Errorf("60 exp should be level 2, got %d", u.Level)
	}
}

func TestCredit_NeverLowersLevel(t *testing.T) {
	// A stored level above the formula's value must survive recomputation.
	u := core.User{Username: "kid1", Role: core.RoleKid, Level: 5, TotalExperience: 10}

	u.Credit(0)
	if u.Level != 5 {
		t.Errorf("level lowered to %d, want 5", u.Level)
	}
}

func TestRatingReward(t *testing.T) {
	if got := core.RatingReward(5); got != 50 {
		t.Errorf("RatingReward(5) = %d, want 50", got)
	}
	if got := core.RatingReward(1); got != 10 {
		t.Errorf("RatingReward(1) = %d, want 10", got)
	}
}
