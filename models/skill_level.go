// models/skill_level.go
package models

// Skill tiers derived from the live points balance. The persisted
// users.skill_level column is a cache hint only.
const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
)

// Tier boundaries: beginner 0-99, intermediate 100-199, advanced 200+.
const (
	intermediateThreshold = 100
	advancedThreshold     = 200
)

// SkillLevelForPoints maps a points balance to its tier name.
func SkillLevelForPoints(points int) string {
	switch {
	case points >= advancedThreshold:
		return SkillAdvanced
	case points >= intermediateThreshold:
		return SkillIntermediate
	default:
		return SkillBeginner
	}
}

// SkillTierIndex returns the 0-based tier index (beginner=0, advanced=2).
func SkillTierIndex(points int) int {
	switch {
	case points >= advancedThreshold:
		return 2
	case points >= intermediateThreshold:
		return 1
	default:
		return 0
	}
}

// SkillProgressFraction maps points to a [0,1] progress-bar fill. Each of
// the two lower tiers owns half the bar, so tier transitions land on
// visually even boundaries instead of one linear 0-200 scale.
func SkillProgressFraction(points int) float64 {
	switch {
	case points >= advancedThreshold:
		return 1.0
	case points >= intermediateThreshold:
		return 0.5 + float64(points-intermediateThreshold)/float64(intermediateThreshold)*0.5
	case points <= 0:
		return 0.0
	default:
		return float64(points) / float64(intermediateThreshold) * 0.5
	}
}
