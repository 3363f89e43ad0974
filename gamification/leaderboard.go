// gamification/leaderboard.go
package gamification

import (
	"errors"
	"fmt"
	"math"

	"greenmorph/models"

	"gorm.io/gorm"
)

// ErrRankNotFound means the user has no points record. Callers treat it as
// rank = total_users, percentile 0 rather than a hard failure.
var ErrRankNotFound = errors.New("user has no rank")

// rankWindow is the snapshot size RankOf scans before falling back to the
// dedicated full-table rank query.
const rankWindow = 100

// LeaderboardEntry is one ranked row, computed fresh per query. Rank is
// 1-based. Ties on points break by user id ascending so repeated queries
// and the rank fallback always agree.
type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	UserID     uint   `json:"user_id"`
	Username   string `json:"username"`
	Points     int    `json:"points"`
	SkillLevel string `json:"skill_level"`
}

// UserRank is a single user's position resolved against the whole
// population, including users outside the snapshot window.
type UserRank struct {
	Rank       int    `json:"rank"`
	TotalUsers int    `json:"total_users"`
	Percentile int    `json:"percentile"`
	Points     int    `json:"points"`
	SkillLevel string `json:"skill_level"`
}

// TopN returns the top limit users by points plus the full population
// count. The count is independent of the window size.
func TopN(db *gorm.DB, limit int) ([]LeaderboardEntry, int64, error) {
	if limit <= 0 {
		limit = 10
	}

	var users []models.User
	if err := db.Where("is_active = ?", true).
		Order("points DESC, id ASC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to query leaderboard: %w", err)
	}

	var total int64
	if err := db.Model(&models.User{}).
		Where("is_active = ?", true).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	entries := make([]LeaderboardEntry, len(users))
	for i, u := range users {
		entries[i] = LeaderboardEntry{
			Rank:       i + 1,
			UserID:     u.ID,
			Username:   u.Username,
			Points:     u.Points,
			SkillLevel: models.SkillLevelForPoints(u.Points),
		}
	}
	return entries, total, nil
}

// RankOf resolves one user's exact rank and percentile. It first scans a
// topN snapshot; a user outside the window gets a dedicated count query
// instead of an ever-growing snapshot.
func RankOf(db *gorm.DB, userID uint) (UserRank, error) {
	var r UserRank

	var total int64
	if err := db.Model(&models.User{}).
		Where("is_active = ?", true).
		Count(&total).Error; err != nil {
		return r, fmt.Errorf("failed to count users: %w", err)
	}
	r.TotalUsers = int(total)

	var user models.User
	if err := db.Where("is_active = ?", true).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r, ErrRankNotFound
		}
		return r, fmt.Errorf("failed to load user: %w", err)
	}

	r.Points = user.Points
	r.SkillLevel = models.SkillLevelForPoints(user.Points)

	entries, _, err := TopN(db, rankWindow)
	if err != nil {
		return r, err
	}
	rank := 0
	for _, e := range entries {
		if e.UserID == userID {
			rank = e.Rank
			break
		}
	}

	if rank == 0 {
		// Outside the snapshot window: same ordering as TopN, expressed as
		// a count of users strictly ahead.
		var ahead int64
		if err := db.Model(&models.User{}).
			Where("is_active = ? AND (points > ? OR (points = ? AND id < ?))",
				true, user.Points, user.Points, user.ID).
			Count(&ahead).Error; err != nil {
			return r, fmt.Errorf("failed to resolve rank: %w", err)
		}
		rank = int(ahead) + 1
	}

	r.Rank = rank
	r.Percentile = percentile(rank, r.TotalUsers)
	return r, nil
}

// percentile is the share of the population ranked strictly below, 0-100.
func percentile(rank, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(total-rank) / float64(total)))
}
