// handlers/users.go
package handlers

import (
	"greenmorph/database"
	"greenmorph/middleware"
	"greenmorph/models"

	"github.com/gofiber/fiber/v2"
)

type UpdateProfileRequest struct {
	Avatar *string `json:"avatar"`
	Bio    *string `json:"bio"`
}

// GetCurrentUser returns the authenticated user's profile. Level and the
// progress fraction are recomputed from live points on every read; the
// stored skill_level column is only a cache hint.
func GetCurrentUser(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"user":           userInfo(user),
		"avatar":         user.Avatar,
		"bio":            user.Bio,
		"tier_index":     models.SkillTierIndex(user.Points),
		"level_progress": models.SkillProgressFraction(user.Points),
	})
}

// UpdateCurrentUser updates avatar/bio of the authenticated user
func UpdateCurrentUser(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}

	if err := db.Save(&user).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    userInfo(user),
		"avatar":  user.Avatar,
		"bio":     user.Bio,
	})
}
