// gamification/progress.go
package gamification

import (
	"errors"
	"math"
	"time"

	"greenmorph/models"
)

// ErrUnsupportedCondition means the catalog contains a condition type the
// evaluator does not know. This is a config/programmer error and should be
// surfaced loudly, never silently skipped.
var ErrUnsupportedCondition = errors.New("unsupported achievement condition type")

// Achievement status values.
const (
	StatusLocked   = "locked"
	StatusAchieved = "achieved"
)

// AchievementView is the derived per-(user, achievement) progress row. It
// is computed fresh on every read and never stored.
type AchievementView struct {
	Achievement        models.Achievement `json:"achievement"`
	Status             string             `json:"status"`
	Progress           int64              `json:"progress"`
	Target             int                `json:"target"`
	ProgressPercentage int                `json:"progress_percentage"`
	EarnedAt           *time.Time         `json:"earned_at,omitempty"`
}

// Qualified reports whether the counter value alone satisfies the
// condition. Distinct from Status, which reflects an actual grant row.
func (v AchievementView) Qualified() bool {
	return v.ProgressPercentage >= 100
}

// EvaluateProgress maps a counter snapshot against the catalog. Pure: no
// database access, no side effects. Status here is counter-derived; callers
// that know the grant rows overlay the real status via applyGrants.
func EvaluateProgress(counters ActivityCounters, catalog []models.Achievement) ([]AchievementView, error) {
	views := make([]AchievementView, 0, len(catalog))
	for _, def := range catalog {
		value, err := counters.counterFor(def.ConditionType)
		if err != nil {
			return nil, err
		}

		target := int64(def.ConditionValue)
		progress := value
		if progress > target {
			// Over-completion is common (40 likes against a 10-like badge);
			// the bar clamps at the target.
			progress = target
		}

		pct := 0
		if target > 0 {
			pct = int(math.Round(100 * float64(progress) / float64(target)))
		}

		status := StatusLocked
		if pct >= 100 {
			status = StatusAchieved
		}

		views = append(views, AchievementView{
			Achievement:        def,
			Status:             status,
			Progress:           progress,
			Target:             def.ConditionValue,
			ProgressPercentage: pct,
		})
	}
	return views, nil
}

// applyGrants overlays actual grant rows onto counter-derived views: a
// granted achievement is achieved with its earned_at; anything without a
// row stays locked even at 100% progress until the grant engine runs.
func applyGrants(views []AchievementView, grants []models.UserAchievement) {
	earned := make(map[uint]time.Time, len(grants))
	for _, g := range grants {
		earned[g.AchievementID] = g.EarnedAt
	}
	for i := range views {
		if at, ok := earned[views[i].Achievement.ID]; ok {
			t := at
			views[i].Status = StatusAchieved
			views[i].EarnedAt = &t
		} else {
			views[i].Status = StatusLocked
			views[i].EarnedAt = nil
		}
	}
}
