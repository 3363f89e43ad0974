// models/skill_level_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkillLevelForPoints(t *testing.T) {
	tests := []struct {
		points int
		level  string
	}{
		{0, SkillBeginner},
		{50, SkillBeginner},
		{99, SkillBeginner},
		{100, SkillIntermediate},
		{150, SkillIntermediate},
		{199, SkillIntermediate},
		{200, SkillAdvanced},
		{1000, SkillAdvanced},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.level, SkillLevelForPoints(tt.points), "points=%d", tt.points)
	}
}

func TestSkillTierIndex(t *testing.T) {
	assert.Equal(t, 0, SkillTierIndex(0))
	assert.Equal(t, 0, SkillTierIndex(99))
	assert.Equal(t, 1, SkillTierIndex(100))
	assert.Equal(t, 1, SkillTierIndex(199))
	assert.Equal(t, 2, SkillTierIndex(200))
}

// Each lower tier owns half the progress bar, so the boundaries land at
// exactly 0.5 and 1.0 rather than on a single linear 0-200 scale.
func TestSkillProgressFraction(t *testing.T) {
	assert.InDelta(t, 0.0, SkillProgressFraction(0), 1e-9)
	assert.InDelta(t, 0.25, SkillProgressFraction(50), 1e-9)
	assert.InDelta(t, 0.495, SkillProgressFraction(99), 1e-9)
	assert.InDelta(t, 0.5, SkillProgressFraction(100), 1e-9)
	assert.InDelta(t, 0.75, SkillProgressFraction(150), 1e-9)
	assert.InDelta(t, 0.995, SkillProgressFraction(199), 1e-9)
	assert.InDelta(t, 1.0, SkillProgressFraction(200), 1e-9)
	assert.InDelta(t, 1.0, SkillProgressFraction(5000), 1e-9)
}

func TestSkillProgressFractionNeverNegative(t *testing.T) {
	assert.InDelta(t, 0.0, SkillProgressFraction(-10), 1e-9)
}
