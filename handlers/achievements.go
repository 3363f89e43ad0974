// handlers/achievements.go
package handlers

import (
	"errors"
	"log"
	"strconv"

	"greenmorph/database"
	"greenmorph/gamification"
	"greenmorph/middleware"
	"greenmorph/models"

	"github.com/gofiber/fiber/v2"
)

// GetAchievementCatalog returns all achievement definitions
// GET /api/achievements
func GetAchievementCatalog(c *fiber.Ctx) error {
	db := database.GetDB()

	var catalog []models.Achievement
	if err := db.Order("id ASC").Find(&catalog).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch achievements"})
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"achievements": catalog,
		"total":        len(catalog),
	})
}

// GetUserAchievements returns the per-achievement progress page for a user
// GET /api/achievements/user/:id
//
// Ordering: unachieved first, closest to completion on top, then earned
// badges in the order they were won.
func GetUserAchievements(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	db := database.GetDB()
	list, err := gamification.UserAchievementViews(db, uint(userID))
	if err != nil {
		if errors.Is(err, gamification.ErrCountersUnavailable) {
			return c.Status(503).JSON(fiber.Map{"error": "Activity data temporarily unavailable"})
		}
		log.Printf("achievement listing failed for user=%d: %v", userID, err)
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch achievements"})
	}

	return c.JSON(fiber.Map{
		"success":            true,
		"total_achievements": list.TotalAchievements,
		"earned_count":       list.EarnedCount,
		"achievements":       list.Achievements,
	})
}

// CheckAchievements runs check-and-grant for the authenticated user
// POST /api/achievements/check
//
// The response's new_achievements field is the only trigger for celebration
// UI: it contains exactly the achievements this invocation granted. A call
// that grants nothing returns an empty list, never an error, so callers can
// fire it after any counter-moving action without risk of double-announcing.
func CheckAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	result, err := gamification.CheckAndGrant(db, userID)
	if err != nil {
		// Never a blocking error for the caller's primary action: report
		// "nothing new" and log the real cause.
		log.Printf("check-and-grant failed for user=%d: %v", userID, err)
		return c.JSON(fiber.Map{
			"success":          true,
			"new_achievements": []models.Achievement{},
			"total_earned":     0,
			"points_awarded":   0,
		})
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"new_achievements": result.NewlyGranted,
		"total_earned":     result.TotalEarned,
		"points_awarded":   result.PointsAwarded,
		"progress":         result.Progress,
	})
}
