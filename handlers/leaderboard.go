// handlers/leaderboard.go
package handlers

import (
	"errors"
	"log"
	"strconv"
	"time"

	"greenmorph/cache"
	"greenmorph/database"
	"greenmorph/gamification"
	"greenmorph/models"

	"github.com/gofiber/fiber/v2"
)

type leaderboardSnapshot struct {
	Leaderboard []gamification.LeaderboardEntry `json:"leaderboard"`
	TotalUsers  int64                           `json:"total_users"`
	UpdatedAt   time.Time                       `json:"updated_at"`
}

// GetLeaderboard returns the points leaderboard
// GET /api/leaderboard?limit=10
func GetLeaderboard(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	if limit < 1 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}

	var snap leaderboardSnapshot
	if cache.GetLeaderboard(c.Context(), limit, &snap) {
		return c.JSON(fiber.Map{
			"success":     true,
			"leaderboard": snap.Leaderboard,
			"total_users": snap.TotalUsers,
			"updated_at":  snap.UpdatedAt,
			"cached":      true,
		})
	}

	db := database.GetDB()
	entries, total, err := gamification.TopN(db, limit)
	if err != nil {
		log.Printf("leaderboard query failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch leaderboard"})
	}

	snap = leaderboardSnapshot{Leaderboard: entries, TotalUsers: total, UpdatedAt: time.Now().UTC()}
	cache.SetLeaderboard(c.Context(), limit, snap)

	return c.JSON(fiber.Map{
		"success":     true,
		"leaderboard": snap.Leaderboard,
		"total_users": snap.TotalUsers,
		"updated_at":  snap.UpdatedAt,
	})
}

// GetUserRank returns one user's rank and percentile, resolved even when
// the user is outside the default snapshot window
// GET /api/leaderboard/user/:id
func GetUserRank(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	db := database.GetDB()
	rank, err := gamification.RankOf(db, uint(userID))
	if err != nil {
		if errors.Is(err, gamification.ErrRankNotFound) {
			// No points record: bottom of the board, not an error.
			return c.JSON(fiber.Map{
				"success":     true,
				"rank":        rank.TotalUsers,
				"total_users": rank.TotalUsers,
				"percentile":  0,
				"points":      0,
				"skill_level": models.SkillBeginner,
			})
		}
		log.Printf("rank query failed for user=%d: %v", userID, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to resolve rank"})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"rank":        rank.Rank,
		"total_users": rank.TotalUsers,
		"percentile":  rank.Percentile,
		"points":      rank.Points,
		"skill_level": rank.SkillLevel,
	})
}
