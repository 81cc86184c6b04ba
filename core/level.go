package core

// =============================================================================
// LEVELING AND REWARD FORMULAS
// =============================================================================

const (
	// ExperiencePerLevel is the experience step between levels:
	// level = totalExperience/50 + 1.
	ExperiencePerLevel = 50

	// PointsPerStar is the reward per rating star on a school task.
	// The reward is rating-driven and independent of the task's own
	// Points field; home-task approval credits Points directly.
	PointsPerStar = 10

	MinRating = 1
	MaxRating = 5
)

// LevelForExperience returns the level implied by a lifetime experience
// total. Levels start at 1.
func LevelForExperience(totalExperience int) int {
	if totalExperience < 0 {
		return 1
	}
	return totalExperience/ExperiencePerLevel + 1
}

// RatingReward returns the points/experience credit for a star rating.
func RatingReward(stars int) int {
	return stars * PointsPerStar
}

// Credit applies an earned amount to a user: spendable points and lifetime
// experience both grow by the same amount, then the level is recomputed.
// The level is only ever raised, never lowered.
func (u *User) Credit(amount int) {
	u.CurrentPoints += amount
	u.TotalExperience += amount
	if lvl := LevelForExperience(u.TotalExperience); lvl > u.Level {
		u.Level = lvl
	}
	if u.Level < 1 {
		u.Level = 1
	}
}
