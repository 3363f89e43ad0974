// gamification/grant.go
package gamification

import (
	"fmt"
	"log"
	"sort"
	"time"

	"greenmorph/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CheckResult is the outcome of one check-and-grant invocation. NewlyGranted
// holds only achievements this call won the insert for; it is the sole
// source of truth for what to celebrate.
type CheckResult struct {
	NewlyGranted  []models.Achievement `json:"new_achievements"`
	TotalEarned   int                  `json:"total_earned"`
	PointsAwarded int                  `json:"points_awarded"`
	Progress      []AchievementView    `json:"progress"`
}

// CheckAndGrant evaluates a user's counters against the catalog and grants
// every qualifying achievement that has no grant row yet.
//
// The grant is a single conditional insert per (user, achievement): ON
// CONFLICT DO NOTHING against the composite unique index. RowsAffected is
// the only arbiter of "newly granted" — a concurrent call that loses the
// race sees 0 rows and reports nothing. A failed insert for one achievement
// does not stop the others.
func CheckAndGrant(db *gorm.DB, userID uint) (CheckResult, error) {
	res := CheckResult{NewlyGranted: []models.Achievement{}}

	counters, err := GetActivityCounters(db, userID)
	if err != nil {
		return res, err
	}

	var catalog []models.Achievement
	if err := db.Order("id ASC").Find(&catalog).Error; err != nil {
		return res, fmt.Errorf("failed to load achievement catalog: %w", err)
	}

	views, err := EvaluateProgress(counters, catalog)
	if err != nil {
		return res, err
	}

	var grants []models.UserAchievement
	if err := db.Where("user_id = ?", userID).Find(&grants).Error; err != nil {
		return res, fmt.Errorf("failed to load grants: %w", err)
	}
	granted := make(map[uint]bool, len(grants))
	for _, g := range grants {
		granted[g.AchievementID] = true
	}

	now := time.Now().UTC()
	for _, v := range views {
		if !v.Qualified() || granted[v.Achievement.ID] {
			continue
		}

		row := models.UserAchievement{
			UserID:        userID,
			AchievementID: v.Achievement.ID,
			EarnedAt:      now,
		}
		insert := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "achievement_id"}},
			DoNothing: true,
		}).Create(&row)

		if insert.Error != nil {
			// Partial success is fine: keep evaluating the rest.
			log.Printf("grant failed for user=%d achievement=%d: %v",
				userID, v.Achievement.ID, insert.Error)
			continue
		}
		if insert.RowsAffected == 0 {
			// Lost the race to a concurrent invocation; that call reports it.
			continue
		}

		res.NewlyGranted = append(res.NewlyGranted, v.Achievement)
		res.PointsAwarded += v.Achievement.Points
		grants = append(grants, row)
	}

	applyGrants(views, grants)
	res.Progress = views
	res.TotalEarned = len(grants)

	refreshSkillLevel(db, userID)

	return res, nil
}

// UserAchievementList is the read-only achievements page for a user:
// unachieved first (closest to done on top), then the trophy case in the
// order it was earned.
type UserAchievementList struct {
	TotalAchievements int               `json:"total_achievements"`
	EarnedCount       int               `json:"earned_count"`
	Achievements      []AchievementView `json:"achievements"`
}

// UserAchievementViews builds the sorted achievement page for one user.
func UserAchievementViews(db *gorm.DB, userID uint) (UserAchievementList, error) {
	var list UserAchievementList

	counters, err := GetActivityCounters(db, userID)
	if err != nil {
		return list, err
	}

	var catalog []models.Achievement
	if err := db.Order("id ASC").Find(&catalog).Error; err != nil {
		return list, fmt.Errorf("failed to load achievement catalog: %w", err)
	}

	views, err := EvaluateProgress(counters, catalog)
	if err != nil {
		return list, err
	}

	var grants []models.UserAchievement
	if err := db.Where("user_id = ?", userID).Find(&grants).Error; err != nil {
		return list, fmt.Errorf("failed to load grants: %w", err)
	}
	applyGrants(views, grants)

	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i], views[j]
		if (a.Status == StatusAchieved) != (b.Status == StatusAchieved) {
			return a.Status != StatusAchieved
		}
		if a.Status == StatusAchieved {
			return a.EarnedAt.Before(*b.EarnedAt)
		}
		return a.ProgressPercentage > b.ProgressPercentage
	})

	list.TotalAchievements = len(catalog)
	list.EarnedCount = len(grants)
	list.Achievements = views
	return list, nil
}

// refreshSkillLevel syncs the cached users.skill_level column with the
// tier computed from live points. Best effort; readers never depend on it.
func refreshSkillLevel(db *gorm.DB, userID uint) {
	var user models.User
	if err := db.Select("id", "points", "skill_level").First(&user, userID).Error; err != nil {
		return
	}
	level := models.SkillLevelForPoints(user.Points)
	if level == user.SkillLevel {
		return
	}
	if err := db.Model(&models.User{}).Where("id = ?", userID).
		Update("skill_level", level).Error; err != nil {
		log.Printf("skill level refresh failed for user=%d: %v", userID, err)
	}
}
